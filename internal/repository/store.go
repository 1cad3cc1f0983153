package repository

import "context"

// Store is the full persistence surface used by the services
type Store interface {
	GameStore
	Referral
	Purchase
	EventLog

	Ping(ctx context.Context) error
	Close() error
}
