package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/FairyGrove_Go/internal/eventlog"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

const (
	opHistory = "history"

	// QueryParamLimit caps the number of returned rows
	QueryParamLimit = "limit"
)

// HistoryResponse lists the player's recent game events, newest first
type HistoryResponse struct {
	Events []repository.LoggedEvent `json:"events"`
}

// HandleGetHistory returns the player's recent game events from the audit log
// @Summary Recent game events
// @Tags game
// @Produce json
// @Param limit query int false "Max events (default 50, max 200)"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/history [get]
func HandleGetHistory(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		limit := 0
		if raw := r.URL.Query().Get(QueryParamLimit); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
				return
			}
			limit = n
		}

		events, err := svc.History(r.Context(), playerID, limit)
		if err != nil {
			respondServiceError(w, r, opHistory, err)
			return
		}

		respondJSON(w, http.StatusOK, HistoryResponse{Events: events})
	}
}
