package payment

import (
	"encoding/json"
	"fmt"
)

// Confirmation is a completed Stars payment ready to be applied to a player
type Confirmation struct {
	PlayerID string
	ItemID   string
	ChargeID string
	Amount   int64
}

// InvoicePayload is the opaque payload attached to every invoice we create.
// UserID accepts both JSON numbers and strings.
type InvoicePayload struct {
	ItemID string      `json:"item_id"`
	UserID json.Number `json:"user_id"`
}

// ParseInvoicePayload decodes an invoice_payload string
func ParseInvoicePayload(raw string) (InvoicePayload, error) {
	var p InvoicePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return InvoicePayload{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if p.ItemID == "" {
		return InvoicePayload{}, fmt.Errorf("%w: missing item_id", ErrBadPayload)
	}
	return p, nil
}

// Update is the subset of a Telegram Bot API update the payment flow reads
type Update struct {
	UpdateID         int64             `json:"update_id"`
	Message          *Message          `json:"message,omitempty"`
	PreCheckoutQuery *PreCheckoutQuery `json:"pre_checkout_query,omitempty"`
}

// User is a Telegram user reference
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Message carries a successful payment service message
type Message struct {
	MessageID         int64              `json:"message_id"`
	From              *User              `json:"from,omitempty"`
	SuccessfulPayment *SuccessfulPayment `json:"successful_payment,omitempty"`
}

// SuccessfulPayment is sent after the user paid
type SuccessfulPayment struct {
	Currency                string `json:"currency"`
	TotalAmount             int64  `json:"total_amount"`
	InvoicePayload          string `json:"invoice_payload"`
	TelegramPaymentChargeID string `json:"telegram_payment_charge_id"`
	ProviderPaymentChargeID string `json:"provider_payment_charge_id"`
}

// PreCheckoutQuery asks the bot to confirm an order before charging
type PreCheckoutQuery struct {
	ID             string `json:"id"`
	From           User   `json:"from"`
	Currency       string `json:"currency"`
	TotalAmount    int64  `json:"total_amount"`
	InvoicePayload string `json:"invoice_payload"`
}

// LabeledPrice is one invoice line
type LabeledPrice struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Invoice describes a Stars invoice link request
type Invoice struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Payload     string         `json:"payload"`
	Currency    string         `json:"currency"`
	Prices      []LabeledPrice `json:"prices"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}
