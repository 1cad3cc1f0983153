package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/player"
)

const (
	opQuests     = "quests"
	opClaimQuest = "claim quest"

	// URLParamQuestID names the quest id route parameter
	URLParamQuestID = "questID"
)

// QuestsResponse lists today's quests
type QuestsResponse struct {
	Quests []domain.Quest `json:"quests"`
}

// HandleGetQuests lists the player's daily quests, resetting them if a day passed
// @Summary List daily quests
// @Tags quests
// @Produce json
// @Success 200 {object} QuestsResponse
// @Router /api/v1/quests [get]
func HandleGetQuests(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		quests, err := svc.Quests(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, opQuests, err)
			return
		}

		respondJSON(w, http.StatusOK, QuestsResponse{Quests: quests})
	}
}

// HandleClaimQuest claims a completed quest's reward
// @Summary Claim quest reward
// @Tags quests
// @Produce json
// @Param questID path string true "Quest id"
// @Success 200 {object} player.ClaimOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/quests/{questID}/claim [post]
func HandleClaimQuest(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		questID := chi.URLParam(r, URLParamQuestID)
		if questID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		out, err := svc.ClaimQuest(r.Context(), playerID, questID)
		if err != nil {
			respondServiceError(w, r, opClaimQuest, err)
			return
		}

		respondJSON(w, http.StatusOK, out)
	}
}
