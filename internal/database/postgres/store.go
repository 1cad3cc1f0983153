// Package postgres implements repository.Store on PostgreSQL with pgx.
// Each player's game document is one JSONB row guarded by a version column.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

// Store implements repository.Store for PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an open pool. Close releases the pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LoadGame reads and decodes a player's document
func (s *Store) LoadGame(ctx context.Context, playerID string) (*repository.GameRecord, error) {
	var (
		data    []byte
		version int64
		updated time.Time
	)
	err := s.db.QueryRow(ctx, queryLoadGame, playerID).Scan(&data, &version, &updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: player %s", domain.ErrNotFound, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	var doc domain.GameDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", playerID, err)
	}
	return &repository.GameRecord{PlayerID: playerID, Doc: &doc, Version: version, UpdatedAt: updated}, nil
}

// CreateGame inserts version 1 of a player's document
func (s *Store) CreateGame(ctx context.Context, playerID string, doc *domain.GameDocument) (*repository.GameRecord, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode game %s: %w", playerID, err)
	}

	var updated time.Time
	err = s.db.QueryRow(ctx, queryCreateGame, playerID, data, doc.ReferralCode).Scan(&updated)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == ConstraintPlayersReferralCode {
				return nil, fmt.Errorf("%w: %s", repository.ErrReferralCodeTaken, doc.ReferralCode)
			}
			return nil, fmt.Errorf("%w: %s", repository.ErrAlreadyExists, playerID)
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return &repository.GameRecord{PlayerID: playerID, Doc: doc.Clone(), Version: 1, UpdatedAt: updated}, nil
}

// SaveGame writes doc if the stored version still equals expectedVersion
func (s *Store) SaveGame(ctx context.Context, playerID string, doc *domain.GameDocument, expectedVersion int64) (int64, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("encode game %s: %w", playerID, err)
	}

	var version int64
	err = s.db.QueryRow(ctx, querySaveGame, playerID, data, doc.ReferralCode, expectedVersion).Scan(&version)
	switch {
	case err == nil:
		return version, nil
	case errors.Is(err, pgx.ErrNoRows):
		return 0, s.saveMiss(ctx, playerID, expectedVersion)
	default:
		if constraint, ok := uniqueViolation(err); ok && constraint == ConstraintPlayersReferralCode {
			return 0, fmt.Errorf("%w: %s", repository.ErrReferralCodeTaken, doc.ReferralCode)
		}
		return 0, fmt.Errorf("failed to save game: %w", err)
	}
}

// saveMiss tells a missing player apart from a stale version
func (s *Store) saveMiss(ctx context.Context, playerID string, expectedVersion int64) error {
	var exists bool
	if err := s.db.QueryRow(ctx, queryPlayerExists, playerID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player %s", domain.ErrNotFound, playerID)
	}
	return fmt.Errorf("%w: player %s, expected version %d", repository.ErrVersionConflict, playerID, expectedVersion)
}

// FindPlayerByReferralCode resolves a referral code to its owner
func (s *Store) FindPlayerByReferralCode(ctx context.Context, code string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, queryFindByReferralCode, code).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: referral code %s", domain.ErrNotFound, code)
	}
	if err != nil {
		return "", fmt.Errorf("failed to find referral code: %w", err)
	}
	return id, nil
}

// GetReferrer returns who referred the player
func (s *Store) GetReferrer(ctx context.Context, referredID string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, queryGetReferrer, referredID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: no referrer for %s", domain.ErrNotFound, referredID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get referrer: %w", err)
	}
	return id, nil
}

// RecordReferral links referred to referrer once
func (s *Store) RecordReferral(ctx context.Context, referral domain.Referral) error {
	if referral.ReferrerID == referral.ReferredID {
		return domain.ErrSelfReferral
	}

	_, err := s.db.Exec(ctx, queryRecordReferral, referral.ReferredID, referral.ReferrerID, referral.CreatedAt)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrAlreadyReferred, referral.ReferredID)
		case PgErrorCodeForeignKeyViolation:
			return fmt.Errorf("%w: referral player", domain.ErrNotFound)
		case PgErrorCodeCheckViolation:
			return domain.ErrSelfReferral
		}
	}
	return fmt.Errorf("failed to record referral: %w", err)
}

// CountReferrals counts players referred by referrerID
func (s *Store) CountReferrals(ctx context.Context, referrerID string) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, queryCountReferrals, referrerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count referrals: %w", err)
	}
	return n, nil
}

// RecordPurchase appends to the ledger; a repeated charge id is ErrDuplicatePurchase
func (s *Store) RecordPurchase(ctx context.Context, p domain.Purchase) error {
	_, err := s.db.Exec(ctx, queryRecordPurchase,
		p.PurchaseID, p.PlayerID, p.ItemID, p.Amount, p.Currency, p.ChargeID, p.CreatedAt)
	if err == nil {
		return nil
	}
	if constraint, ok := uniqueViolation(err); ok && constraint == ConstraintPurchasesChargeIDKey {
		return fmt.Errorf("%w: %s", repository.ErrDuplicatePurchase, p.ChargeID)
	}
	return fmt.Errorf("failed to record purchase: %w", err)
}

// ListPurchases returns a player's purchases, oldest first
func (s *Store) ListPurchases(ctx context.Context, playerID string) ([]domain.Purchase, error) {
	rows, err := s.db.Query(ctx, queryListPurchases, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Purchase, error) {
		var p domain.Purchase
		err := row.Scan(&p.PurchaseID, &p.PlayerID, &p.ItemID, &p.Amount, &p.Currency, &p.ChargeID, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan purchases: %w", err)
	}
	return out, nil
}

// Ping checks connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases the pool
func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
