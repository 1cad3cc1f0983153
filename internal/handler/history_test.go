package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FairyGrove_Go/internal/eventlog"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

func TestHandleGetHistory(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		svc := &eventlog.MockService{}
		svc.On("History", mock.Anything, testPlayerID, 0).Return([]repository.LoggedEvent{{
			ID:        7,
			EventType: "grove.merge.completed",
			PlayerID:  testPlayerID,
			Payload:   json.RawMessage(`{"family":"sprite"}`),
			CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		}}, nil)

		w := httptest.NewRecorder()
		HandleGetHistory(svc).ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/game/history", ""))

		require.Equal(t, http.StatusOK, w.Code)
		var resp HistoryResponse
		decodeBody(t, w, &resp)
		require.Len(t, resp.Events, 1)
		assert.Equal(t, "grove.merge.completed", resp.Events[0].EventType)
		assert.JSONEq(t, `{"family":"sprite"}`, string(resp.Events[0].Payload))
	})

	t.Run("explicit limit", func(t *testing.T) {
		svc := &eventlog.MockService{}
		svc.On("History", mock.Anything, testPlayerID, 5).Return([]repository.LoggedEvent{}, nil)

		w := httptest.NewRecorder()
		HandleGetHistory(svc).ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/game/history?limit=5", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"events":[]}`, w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("bad limit", func(t *testing.T) {
		for _, q := range []string{"abc", "0", "-3"} {
			svc := &eventlog.MockService{}
			w := httptest.NewRecorder()
			HandleGetHistory(svc).ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/game/history?limit="+q, ""))

			assert.Equal(t, http.StatusBadRequest, w.Code, q)
			svc.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		svc := &eventlog.MockService{}
		svc.On("History", mock.Anything, testPlayerID, 0).Return(nil, errors.New("db down"))

		w := httptest.NewRecorder()
		HandleGetHistory(svc).ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/game/history", ""))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
