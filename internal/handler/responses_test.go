package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/payment"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrNotFound), http.StatusNotFound, ErrMsgNotFoundError},
		{"max level", domain.ErrMaxLevelReached, http.StatusBadRequest, ErrMsgMaxLevelError},
		{"catalog drift hides detail", fmt.Errorf("%w: ghost L9", domain.ErrInvalidCreatureType), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"bare insufficient", domain.ErrInsufficientResources, http.StatusBadRequest, domain.ErrMsgInsufficientResources},
		{"detailed insufficient", fmt.Errorf("buy: %w", &domain.InsufficientResourcesError{Resource: "dew", Have: 1, Need: 5}), http.StatusBadRequest, "insufficient resources: not enough dew (have 1, need 5)"},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
		{"version conflict", repository.ErrVersionConflict, http.StatusConflict, ErrMsgConflictError},
		{"price mismatch", payment.ErrPriceMismatch, http.StatusBadRequest, ErrMsgBadPaymentError},
		{"bad payload", payment.ErrBadPayload, http.StatusBadRequest, ErrMsgBadPaymentError},
		{"unknown error stays generic", errors.New("pq: connection refused on 10.0.0.5"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
