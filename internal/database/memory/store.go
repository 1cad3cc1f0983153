// Package memory is an in-process repository.Store for local development and tests.
// Documents are stored as JSON so callers never share memory with the store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

type gameRow struct {
	document  []byte
	version   int64
	code      string
	updatedAt time.Time
}

// Store implements repository.Store in memory
type Store struct {
	mu        sync.RWMutex
	games     map[string]*gameRow
	codes     map[string]string
	referrals map[string]domain.Referral
	purchases map[string]domain.Purchase
	now       func() time.Time

	events      []repository.LoggedEvent
	nextEventID int64
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		games:     make(map[string]*gameRow),
		codes:     make(map[string]string),
		referrals: make(map[string]domain.Referral),
		purchases: make(map[string]domain.Purchase),
		now:       time.Now,
	}
}

// LoadGame returns a decoded copy of the stored document
func (s *Store) LoadGame(ctx context.Context, playerID string) (*repository.GameRecord, error) {
	s.mu.RLock()
	row, ok := s.games[playerID]
	if !ok {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%w: player %s", domain.ErrNotFound, playerID)
	}
	data, version, updated := row.document, row.version, row.updatedAt
	s.mu.RUnlock()

	var doc domain.GameDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", playerID, err)
	}
	return &repository.GameRecord{PlayerID: playerID, Doc: &doc, Version: version, UpdatedAt: updated}, nil
}

// CreateGame stores the first version of a player's document
func (s *Store) CreateGame(ctx context.Context, playerID string, doc *domain.GameDocument) (*repository.GameRecord, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode game %s: %w", playerID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[playerID]; exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrAlreadyExists, playerID)
	}
	if err := s.claimCode(playerID, "", doc.ReferralCode); err != nil {
		return nil, err
	}

	now := s.now()
	s.games[playerID] = &gameRow{document: data, version: 1, code: doc.ReferralCode, updatedAt: now}
	return &repository.GameRecord{PlayerID: playerID, Doc: doc.Clone(), Version: 1, UpdatedAt: now}, nil
}

// SaveGame replaces the document if expectedVersion is current
func (s *Store) SaveGame(ctx context.Context, playerID string, doc *domain.GameDocument, expectedVersion int64) (int64, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("encode game %s: %w", playerID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.games[playerID]
	if !ok {
		return 0, fmt.Errorf("%w: player %s", domain.ErrNotFound, playerID)
	}
	if row.version != expectedVersion {
		return 0, fmt.Errorf("%w: player %s at version %d, expected %d", repository.ErrVersionConflict, playerID, row.version, expectedVersion)
	}
	if err := s.claimCode(playerID, row.code, doc.ReferralCode); err != nil {
		return 0, err
	}

	row.document = data
	row.version++
	row.code = doc.ReferralCode
	row.updatedAt = s.now()
	return row.version, nil
}

// claimCode moves the referral-code index from old to code. Callers hold mu.
func (s *Store) claimCode(playerID, old, code string) error {
	if code == old {
		return nil
	}
	if code != "" {
		if owner, taken := s.codes[code]; taken && owner != playerID {
			return fmt.Errorf("%w: %s", repository.ErrReferralCodeTaken, code)
		}
		s.codes[code] = playerID
	}
	if old != "" {
		delete(s.codes, old)
	}
	return nil
}

// FindPlayerByReferralCode resolves a referral code to its owner
func (s *Store) FindPlayerByReferralCode(ctx context.Context, code string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.codes[code]
	if !ok {
		return "", fmt.Errorf("%w: referral code %s", domain.ErrNotFound, code)
	}
	return id, nil
}

// GetReferrer returns who referred the player
func (s *Store) GetReferrer(ctx context.Context, referredID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.referrals[referredID]
	if !ok {
		return "", fmt.Errorf("%w: no referrer for %s", domain.ErrNotFound, referredID)
	}
	return ref.ReferrerID, nil
}

// RecordReferral links referred to referrer once
func (s *Store) RecordReferral(ctx context.Context, referral domain.Referral) error {
	if referral.ReferrerID == referral.ReferredID {
		return domain.ErrSelfReferral
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.referrals[referral.ReferredID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyReferred, referral.ReferredID)
	}
	s.referrals[referral.ReferredID] = referral
	return nil
}

// CountReferrals counts players referred by referrerID
func (s *Store) CountReferrals(ctx context.Context, referrerID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, ref := range s.referrals {
		if ref.ReferrerID == referrerID {
			n++
		}
	}
	return n, nil
}

// RecordPurchase appends to the ledger, rejecting repeated charge ids
func (s *Store) RecordPurchase(ctx context.Context, purchase domain.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.purchases[purchase.ChargeID]; exists {
		return fmt.Errorf("%w: %s", repository.ErrDuplicatePurchase, purchase.ChargeID)
	}
	s.purchases[purchase.ChargeID] = purchase
	return nil
}

// ListPurchases returns a player's purchases, oldest first
func (s *Store) ListPurchases(ctx context.Context, playerID string) ([]domain.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Purchase, 0)
	for _, p := range s.purchases {
		if p.PlayerID == playerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}
