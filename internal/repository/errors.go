package repository

import "errors"

// Persistence errors. Missing rows are reported with domain.ErrNotFound.
var (
	// ErrVersionConflict means the document changed since it was loaded
	ErrVersionConflict = errors.New("game document version conflict")

	// ErrAlreadyExists means a player document already exists for the id
	ErrAlreadyExists = errors.New("player already exists")

	// ErrReferralCodeTaken means another player already owns the referral code
	ErrReferralCodeTaken = errors.New("referral code already taken")

	// ErrDuplicatePurchase means the payment charge was already recorded
	ErrDuplicatePurchase = errors.New("purchase already recorded")
)
