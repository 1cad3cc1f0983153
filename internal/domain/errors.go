package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgNotFound = "not found"

	// Merge errors
	ErrMsgInvalidMerge    = "creatures must be the same type and level to merge"
	ErrMsgMaxLevelReached = "already at max level"

	// Catalog errors
	ErrMsgInvalidCreatureType = "invalid creature type"

	// Shop errors
	ErrMsgUnknownItem           = "unknown item"
	ErrMsgWrongPaymentChannel   = "use payment flow for stars items"
	ErrMsgInsufficientResources = "insufficient resources"
	ErrMsgNoFreeSlot            = "no free slot"

	// Quest errors
	ErrMsgNotCompleted   = "quest not yet completed"
	ErrMsgAlreadyClaimed = "already claimed"

	// Social errors
	ErrMsgAlreadyReferred    = "already used a referral code"
	ErrMsgSelfReferral       = "cannot use your own referral code"
	ErrMsgInvalidReferral    = "invalid referral code"
	ErrMsgInvalidPlayerInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound = errors.New(ErrMsgNotFound)

	ErrInvalidMerge    = errors.New(ErrMsgInvalidMerge)
	ErrMaxLevelReached = errors.New(ErrMsgMaxLevelReached)

	ErrInvalidCreatureType = errors.New(ErrMsgInvalidCreatureType)

	ErrUnknownItem           = errors.New(ErrMsgUnknownItem)
	ErrWrongPaymentChannel   = errors.New(ErrMsgWrongPaymentChannel)
	ErrInsufficientResources = errors.New(ErrMsgInsufficientResources)
	ErrNoFreeSlot            = errors.New(ErrMsgNoFreeSlot)

	ErrNotCompleted   = errors.New(ErrMsgNotCompleted)
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)

	ErrAlreadyReferred = errors.New(ErrMsgAlreadyReferred)
	ErrSelfReferral    = errors.New(ErrMsgSelfReferral)
	ErrInvalidReferral = errors.New(ErrMsgInvalidReferral)

	ErrInvalidInput = errors.New(ErrMsgInvalidPlayerInput)
)

// InsufficientResourcesError names the first cost component the player cannot cover.
type InsufficientResourcesError struct {
	Resource string
	Have     int64
	Need     int64
}

func (e *InsufficientResourcesError) Error() string {
	return fmt.Sprintf("%s: not enough %s (have %d, need %d)", ErrMsgInsufficientResources, e.Resource, e.Have, e.Need)
}

// Unwrap lets errors.Is match ErrInsufficientResources
func (e *InsufficientResourcesError) Unwrap() error {
	return ErrInsufficientResources
}
