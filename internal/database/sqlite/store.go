// Package sqlite implements repository.Store on modernc.org/sqlite for single-node
// and local deployments. Timestamps are stored as unix milliseconds.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

const (
	queryLoadGame = `SELECT document, version, updated_at FROM players WHERE player_id = ?`

	queryCreateGame = `
		INSERT INTO players (player_id, document, version, referral_code, created_at, updated_at)
		VALUES (?, ?, 1, NULLIF(?, ''), ?, ?)`

	querySaveGame = `
		UPDATE players
		SET document = ?, version = version + 1, referral_code = NULLIF(?, ''), updated_at = ?
		WHERE player_id = ? AND version = ?`

	queryPlayerExists       = `SELECT EXISTS (SELECT 1 FROM players WHERE player_id = ?)`
	queryFindByReferralCode = `SELECT player_id FROM players WHERE referral_code = ?`
	queryGetReferrer        = `SELECT referrer_id FROM referrals WHERE referred_id = ?`
	queryRecordReferral     = `INSERT INTO referrals (referred_id, referrer_id, created_at) VALUES (?, ?, ?)`
	queryCountReferrals     = `SELECT COUNT(*) FROM referrals WHERE referrer_id = ?`

	queryRecordPurchase = `
		INSERT INTO purchases (purchase_id, player_id, item_id, amount, currency, charge_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	queryListPurchases = `
		SELECT purchase_id, player_id, item_id, amount, currency, charge_id, created_at
		FROM purchases
		WHERE player_id = ?
		ORDER BY created_at, purchase_id`
)

// Columns named in constraint failure messages
const (
	columnPlayerID     = "players.player_id"
	columnReferralCode = "players.referral_code"
	columnReferredID   = "referrals.referred_id"
	columnChargeID     = "purchases.charge_id"
)

// Store implements repository.Store for SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an open, migrated database. Close closes it.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// LoadGame reads and decodes a player's document
func (s *Store) LoadGame(ctx context.Context, playerID string) (*repository.GameRecord, error) {
	var (
		data    string
		version int64
		updated int64
	)
	err := s.db.QueryRowContext(ctx, queryLoadGame, playerID).Scan(&data, &version, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: player %s", domain.ErrNotFound, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	var doc domain.GameDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", playerID, err)
	}
	return &repository.GameRecord{
		PlayerID:  playerID,
		Doc:       &doc,
		Version:   version,
		UpdatedAt: domain.MillisToTime(updated),
	}, nil
}

// CreateGame inserts version 1 of a player's document
func (s *Store) CreateGame(ctx context.Context, playerID string, doc *domain.GameDocument) (*repository.GameRecord, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode game %s: %w", playerID, err)
	}

	now := s.now().UnixMilli()
	_, err = s.db.ExecContext(ctx, queryCreateGame, playerID, string(data), doc.ReferralCode, now, now)
	if err != nil {
		switch {
		case isUniqueViolation(err, columnReferralCode):
			return nil, fmt.Errorf("%w: %s", repository.ErrReferralCodeTaken, doc.ReferralCode)
		case isUniqueViolation(err, columnPlayerID):
			return nil, fmt.Errorf("%w: %s", repository.ErrAlreadyExists, playerID)
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return &repository.GameRecord{PlayerID: playerID, Doc: doc.Clone(), Version: 1, UpdatedAt: domain.MillisToTime(now)}, nil
}

// SaveGame writes doc if the stored version still equals expectedVersion
func (s *Store) SaveGame(ctx context.Context, playerID string, doc *domain.GameDocument, expectedVersion int64) (int64, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("encode game %s: %w", playerID, err)
	}

	res, err := s.db.ExecContext(ctx, querySaveGame, string(data), doc.ReferralCode, s.now().UnixMilli(), playerID, expectedVersion)
	if err != nil {
		if isUniqueViolation(err, columnReferralCode) {
			return 0, fmt.Errorf("%w: %s", repository.ErrReferralCodeTaken, doc.ReferralCode)
		}
		return 0, fmt.Errorf("failed to save game: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to save game: %w", err)
	}
	if n == 0 {
		return 0, s.saveMiss(ctx, playerID, expectedVersion)
	}
	return expectedVersion + 1, nil
}

func (s *Store) saveMiss(ctx context.Context, playerID string, expectedVersion int64) error {
	var exists bool
	if err := s.db.QueryRowContext(ctx, queryPlayerExists, playerID).Scan(&exists); err != nil {
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
	err := s.db.QueryRowContext(ctx, queryFindByReferralCode, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
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
	err := s.db.QueryRowContext(ctx, queryGetReferrer, referredID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
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

	_, err := s.db.ExecContext(ctx, queryRecordReferral, referral.ReferredID, referral.ReferrerID, referral.CreatedAt.UnixMilli())
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, columnReferredID):
		return fmt.Errorf("%w: %s", domain.ErrAlreadyReferred, referral.ReferredID)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: referral player", domain.ErrNotFound)
	default:
		return fmt.Errorf("failed to record referral: %w", err)
	}
}

// CountReferrals counts players referred by referrerID
func (s *Store) CountReferrals(ctx context.Context, referrerID string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, queryCountReferrals, referrerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count referrals: %w", err)
	}
	return n, nil
}

// RecordPurchase appends to the ledger; a repeated charge id is ErrDuplicatePurchase
func (s *Store) RecordPurchase(ctx context.Context, p domain.Purchase) error {
	_, err := s.db.ExecContext(ctx, queryRecordPurchase,
		p.PurchaseID, p.PlayerID, p.ItemID, p.Amount, p.Currency, p.ChargeID, p.CreatedAt.UnixMilli())
	if err == nil {
		return nil
	}
	if isUniqueViolation(err, columnChargeID) {
		return fmt.Errorf("%w: %s", repository.ErrDuplicatePurchase, p.ChargeID)
	}
	return fmt.Errorf("failed to record purchase: %w", err)
}

// ListPurchases returns a player's purchases, oldest first
func (s *Store) ListPurchases(ctx context.Context, playerID string) ([]domain.Purchase, error) {
	rows, err := s.db.QueryContext(ctx, queryListPurchases, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Purchase, 0)
	for rows.Next() {
		var (
			p       domain.Purchase
			created int64
		)
		if err := rows.Scan(&p.PurchaseID, &p.PlayerID, &p.ItemID, &p.Amount, &p.Currency, &p.ChargeID, &created); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		p.CreatedAt = domain.MillisToTime(created)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return out, nil
}

// Ping checks the database handle
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error, column string) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return strings.Contains(err.Error(), column)
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
}
