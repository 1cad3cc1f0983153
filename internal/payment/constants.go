package payment

import "time"

// Telegram Bot API
const (
	DefaultAPIBaseURL = "https://api.telegram.org"

	methodCreateInvoiceLink      = "createInvoiceLink"
	methodAnswerPreCheckoutQuery = "answerPreCheckoutQuery"

	DefaultBotTimeout = 10 * time.Second

	// SecretTokenHeader carries the secret registered with setWebhook
	SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
)

// Invoice field limits imposed by Telegram
const (
	maxTitleLength       = 32
	maxDescriptionLength = 255
)

// Log messages
const (
	LogMsgPreCheckoutAnswered = "Answered pre-checkout query"
	LogMsgPaymentReceived     = "Successful payment received"
	LogMsgPaymentDuplicate    = "Payment already applied"
	LogMsgPaymentIgnored      = "Ignoring payment update"
	LogMsgInvoiceCreated      = "Invoice link created"
)

// Error messages
const (
	ErrMsgPaymentsDisabled = "payments not configured"
	ErrMsgBotAPI           = "telegram bot api error"
	ErrMsgBadPayload       = "malformed invoice payload"
	ErrMsgPriceMismatch    = "price does not match the catalog"
	ErrMsgWrongCurrency    = "unsupported currency"
)

// Rejection reason shown by Telegram when a pre-checkout query is refused
const preCheckoutRejection = "This item is no longer available. Please try again."
