package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/osse101/FairyGrove_Go/internal/logger"
	"github.com/osse101/FairyGrove_Go/internal/payment"
)

const (
	opCreateInvoice = "create invoice"
	opVerifyPayment = "verify payment"
)

// CreateInvoiceRequest asks for a Stars invoice link
type CreateInvoiceRequest struct {
	ItemID string `json:"itemId" validate:"required,catalogid"`
}

// CreateInvoiceResponse carries the link passed to Telegram.WebApp.openInvoice
type CreateInvoiceResponse struct {
	InvoiceURL string `json:"invoiceUrl"`
}

// VerifyPaymentRequest asks whether a charge was applied
type VerifyPaymentRequest struct {
	ChargeID string `json:"chargeId" validate:"required,max=128"`
}

// VerifyPaymentResponse reports whether the charge was applied
type VerifyPaymentResponse struct {
	Applied bool `json:"applied"`
}

// HandleCreateInvoice creates a Stars invoice for a premium item or subscription
// @Summary Create Stars invoice
// @Tags payments
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Item id"
// @Success 200 {object} CreateInvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/payments/invoice [post]
func HandleCreateInvoice(svc payment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		var req CreateInvoiceRequest
		if err := DecodeAndValidateRequest(r, w, &req, opCreateInvoice); err != nil {
			return
		}

		link, err := svc.CreateInvoice(r.Context(), playerID, req.ItemID)
		if err != nil {
			respondServiceError(w, r, opCreateInvoice, err)
			return
		}

		respondJSON(w, http.StatusOK, CreateInvoiceResponse{InvoiceURL: link})
	}
}

// HandleVerifyPayment reports whether the webhook has applied a charge.
// Purchases are only applied from the webhook.
// @Summary Verify payment
// @Tags payments
// @Accept json
// @Produce json
// @Param request body VerifyPaymentRequest true "Charge id"
// @Success 200 {object} VerifyPaymentResponse
// @Router /api/v1/payments/verify [post]
func HandleVerifyPayment(svc payment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		var req VerifyPaymentRequest
		if err := DecodeAndValidateRequest(r, w, &req, opVerifyPayment); err != nil {
			return
		}

		applied, err := svc.IsApplied(r.Context(), playerID, req.ChargeID)
		if err != nil {
			respondServiceError(w, r, opVerifyPayment, err)
			return
		}

		respondJSON(w, http.StatusOK, VerifyPaymentResponse{Applied: applied})
	}
}

// HandlePaymentWebhook receives Telegram bot updates. When secret is set the
// X-Telegram-Bot-Api-Secret-Token header must match it.
// @Summary Telegram payment webhook
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} OKResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/payments/webhook [post]
func HandlePaymentWebhook(svc payment.Service, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if secret != "" {
			got := r.Header.Get(payment.SecretTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				log.Warn(LogMsgWebhookRejected, "remote_addr", r.RemoteAddr)
				respondError(w, http.StatusForbidden, ErrMsgWebhookForbidden)
				return
			}
		}

		var update payment.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Warn(LogMsgDecodeFailed, "action", "webhook", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		// a non-2xx answer makes Telegram redeliver the update
		if err := svc.HandleUpdate(r.Context(), update); err != nil {
			log.Error(LogMsgWebhookFailed, "update_id", update.UpdateID, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgWebhookFailed)
			return
		}

		respondJSON(w, http.StatusOK, OKResponse{OK: true})
	}
}
