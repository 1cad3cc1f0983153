package payment

import "errors"

var (
	// ErrPaymentsDisabled is returned when no bot token is configured
	ErrPaymentsDisabled = errors.New(ErrMsgPaymentsDisabled)
	// ErrBadPayload marks invoice payloads that cannot be decoded
	ErrBadPayload = errors.New(ErrMsgBadPayload)
	// ErrPriceMismatch marks a charge whose amount differs from the price table
	ErrPriceMismatch = errors.New(ErrMsgPriceMismatch)
)
