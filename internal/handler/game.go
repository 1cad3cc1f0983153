package handler

import (
	"net/http"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/middleware"
	"github.com/osse101/FairyGrove_Go/internal/player"
)

// Operation names used in logs
const (
	opAuth         = "auth"
	opGetState     = "get state"
	opMerge        = "merge"
	opCollect      = "collect"
	opCollectAll   = "collect all"
	opSync         = "sync"
	opOfflineBonus = "offline bonus"
)

// QueryParamStartParam carries the Mini App start parameter (a referral code)
const QueryParamStartParam = "startParam"

// AuthRequest is the session start request
type AuthRequest struct {
	StartParam string `json:"startParam,omitempty" validate:"omitempty,max=64"`
}

// AuthResponse is the player profile and game state at session start
type AuthResponse struct {
	TelegramID   int64                 `json:"telegramId"`
	Username     string                `json:"username"`
	FirstName    string                `json:"firstName"`
	LanguageCode string                `json:"languageCode"`
	PhotoURL     string                `json:"photoUrl,omitempty"`
	IsNewUser    bool                  `json:"isNewUser"`
	ReferralCode string                `json:"referralCode"`
	OfflineBonus domain.ResourceBundle `json:"offlineBonus"`
	GameState    *domain.GameDocument  `json:"gameState"`
}

// MergeRequest merges the creature fromId into toId
type MergeRequest struct {
	FromID string `json:"fromId" validate:"required,creatureid"`
	ToID   string `json:"toId" validate:"required,creatureid,nefield=FromID"`
}

// CollectRequest collects one creature's production
type CollectRequest struct {
	CreatureID string `json:"creatureId" validate:"required,creatureid"`
}

// OfflineBonusResponse previews the catch-up bonus without applying it
type OfflineBonusResponse struct {
	Bonus domain.ResourceBundle `json:"bonus"`
}

// SyncResponse returns the document after a heartbeat
type SyncResponse struct {
	GameState *domain.GameDocument `json:"gameState"`
}

// HandleAuthTelegram starts a session for the Telegram user
// @Summary Start session
// @Description Creates the player's game on first visit, applies offline catch-up and honours a referral start parameter for new players
// @Tags game
// @Accept json
// @Produce json
// @Param request body AuthRequest false "Start parameter"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/telegram [post]
func HandleAuthTelegram(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.PlayerFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, ErrMsgUnauthenticated)
			return
		}

		var req AuthRequest
		if r.ContentLength != 0 {
			if err := DecodeAndValidateRequest(r, w, &req, opAuth); err != nil {
				return
			}
		}

		state, err := svc.GetState(r.Context(), user.PlayerID(), req.StartParam)
		if err != nil {
			respondServiceError(w, r, opAuth, err)
			return
		}

		respondJSON(w, http.StatusOK, AuthResponse{
			TelegramID:   user.ID,
			Username:     user.Username,
			FirstName:    user.FirstName,
			LanguageCode: user.Language(),
			PhotoURL:     user.PhotoURL,
			IsNewUser:    state.IsNew,
			ReferralCode: state.Game.ReferralCode,
			OfflineBonus: state.OfflineBonus,
			GameState:    state.Game,
		})
	}
}

// HandleGetState returns the player's game, creating it on first visit
// @Summary Get game state
// @Tags game
// @Produce json
// @Param startParam query string false "Referral code from the Mini App start parameter"
// @Success 200 {object} player.State
// @Router /api/v1/game/state [get]
func HandleGetState(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		startParam := GetOptionalQueryParam(r, QueryParamStartParam, "")
		state, err := svc.GetState(r.Context(), playerID, startParam)
		if err != nil {
			respondServiceError(w, r, opGetState, err)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}

// HandleMerge merges two identical creatures into the next level
// @Summary Merge creatures
// @Tags game
// @Accept json
// @Produce json
// @Param request body MergeRequest true "Creature ids"
// @Success 200 {object} player.MergeOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/game/merge [post]
func HandleMerge(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, lang, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		var req MergeRequest
		if err := DecodeAndValidateRequest(r, w, &req, opMerge); err != nil {
			return
		}

		out, err := svc.Merge(r.Context(), playerID, req.FromID, req.ToID, lang)
		if err != nil {
			respondServiceError(w, r, opMerge, err)
			return
		}

		respondJSON(w, http.StatusOK, out)
	}
}

// HandleCollect collects one creature's accumulated production
// @Summary Collect creature
// @Tags game
// @Accept json
// @Produce json
// @Param request body CollectRequest true "Creature id"
// @Success 200 {object} player.CollectOutcome
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/game/collect [post]
func HandleCollect(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		var req CollectRequest
		if err := DecodeAndValidateRequest(r, w, &req, opCollect); err != nil {
			return
		}

		out, err := svc.Collect(r.Context(), playerID, req.CreatureID)
		if err != nil {
			respondServiceError(w, r, opCollect, err)
			return
		}

		respondJSON(w, http.StatusOK, out)
	}
}

// HandleCollectAll collects every creature on the grid
// @Summary Collect all creatures
// @Tags game
// @Produce json
// @Success 200 {object} player.CollectAllOutcome
// @Router /api/v1/game/collect-all [post]
func HandleCollectAll(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		out, err := svc.CollectAll(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, opCollectAll, err)
			return
		}

		respondJSON(w, http.StatusOK, out)
	}
}

// HandleSync records a heartbeat so offline time is measured from now
// @Summary Sync heartbeat
// @Tags game
// @Produce json
// @Success 200 {object} SyncResponse
// @Router /api/v1/game/sync [post]
func HandleSync(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		doc, err := svc.Sync(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, opSync, err)
			return
		}

		respondJSON(w, http.StatusOK, SyncResponse{GameState: doc})
	}
}

// HandleOfflineBonus previews the offline catch-up bonus
// @Summary Preview offline bonus
// @Tags game
// @Produce json
// @Success 200 {object} OfflineBonusResponse
// @Router /api/v1/game/offline-bonus [get]
func HandleOfflineBonus(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		bonus, err := svc.OfflineBonus(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, opOfflineBonus, err)
			return
		}

		respondJSON(w, http.StatusOK, OfflineBonusResponse{Bonus: bonus})
	}
}
