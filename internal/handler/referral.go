package handler

import (
	"net/http"

	"github.com/osse101/FairyGrove_Go/internal/player"
)

const opReferral = "apply referral"

// ApplyReferralRequest redeems another player's referral code
type ApplyReferralRequest struct {
	Code string `json:"code" validate:"required,refcode"`
}

// HandleApplyReferral rewards the player and the code's owner
// @Summary Apply referral code
// @Tags referral
// @Accept json
// @Produce json
// @Param request body ApplyReferralRequest true "Referral code"
// @Success 200 {object} player.ReferralOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/referral/apply [post]
func HandleApplyReferral(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		var req ApplyReferralRequest
		if err := DecodeAndValidateRequest(r, w, &req, opReferral); err != nil {
			return
		}

		out, err := svc.ApplyReferral(r.Context(), playerID, req.Code)
		if err != nil {
			respondServiceError(w, r, opReferral, err)
			return
		}

		respondJSON(w, http.StatusOK, out)
	}
}
