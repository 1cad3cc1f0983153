// Package storetest is the shared contract suite every repository.Store implementation runs.
package storetest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

// Factory returns an empty, migrated store. Cleanup is registered on t.
type Factory func(t *testing.T) repository.Store

// NewDocument returns a small valid document owning the given referral code
func NewDocument(referralCode string) *domain.GameDocument {
	doc := &domain.GameDocument{
		SchemaVersion: domain.CurrentSchemaVersion,
		UnlockedSlots: domain.DefaultUnlockedSlots,
		Resources:     domain.ResourceBundle{Leaves: 10},
		Level:         1,
		LastOnline:    1_700_000_000_000,
		ReferralCode:  referralCode,
		Subscription:  domain.SubscriptionNone,
		DiscoveredCreatures: []domain.Discovery{
			{Family: domain.FamilyFairyCat, Level: 1, DiscoveredAt: 1_700_000_000_000},
		},
		Buildings:   []domain.Building{},
		DailyQuests: []domain.Quest{},
	}
	doc.Grid[0] = &domain.Creature{ID: "c_test_1", Family: domain.FamilyFairyCat, Level: 1, LastCollected: 1_700_000_000_000}
	return doc
}

// Run executes the contract suite
func Run(t *testing.T, newStore Factory) {
	t.Run("GameRoundTrip", func(t *testing.T) { testGameRoundTrip(t, newStore(t)) })
	t.Run("CreateTwice", func(t *testing.T) { testCreateTwice(t, newStore(t)) })
	t.Run("ReferralCodeUnique", func(t *testing.T) { testReferralCodeUnique(t, newStore(t)) })
	t.Run("OptimisticSave", func(t *testing.T) { testOptimisticSave(t, newStore(t)) })
	t.Run("ConcurrentSaveOneWinner", func(t *testing.T) { testConcurrentSave(t, newStore(t)) })
	t.Run("FindByReferralCode", func(t *testing.T) { testFindByReferralCode(t, newStore(t)) })
	t.Run("Referrals", func(t *testing.T) { testReferrals(t, newStore(t)) })
	t.Run("Purchases", func(t *testing.T) { testPurchases(t, newStore(t)) })
	t.Run("EventLog", func(t *testing.T) { testEventLog(t, newStore(t)) })
	t.Run("Ping", func(t *testing.T) { assert.NoError(t, newStore(t).Ping(context.Background())) })
}

func testGameRoundTrip(t *testing.T, s repository.Store) {
	ctx := context.Background()

	_, err := s.LoadGame(ctx, "p1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	doc := NewDocument("CODE0001")
	doc.Extra = map[string]json.RawMessage{"referredBy": json.RawMessage(`"p9"`)}

	created, err := s.CreateGame(ctx, "p1", doc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	loaded, err := s.LoadGame(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", loaded.PlayerID)
	assert.Equal(t, int64(1), loaded.Version)
	assert.Equal(t, doc.Resources, loaded.Doc.Resources)
	assert.Equal(t, "CODE0001", loaded.Doc.ReferralCode)
	require.NotNil(t, loaded.Doc.Grid[0])
	assert.Equal(t, "c_test_1", loaded.Doc.Grid[0].ID)
	assert.Nil(t, loaded.Doc.Grid[1])
	assert.JSONEq(t, `"p9"`, string(loaded.Doc.Extra["referredBy"]))
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func testCreateTwice(t *testing.T, s repository.Store) {
	ctx := context.Background()

	_, err := s.CreateGame(ctx, "p1", NewDocument("CODE0001"))
	require.NoError(t, err)

	_, err = s.CreateGame(ctx, "p1", NewDocument("CODE0002"))
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func testReferralCodeUnique(t *testing.T, s repository.Store) {
	ctx := context.Background()

	_, err := s.CreateGame(ctx, "p1", NewDocument("SAMECODE"))
	require.NoError(t, err)

	_, err = s.CreateGame(ctx, "p2", NewDocument("SAMECODE"))
	assert.ErrorIs(t, err, repository.ErrReferralCodeTaken)

	_, err = s.LoadGame(ctx, "p2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testOptimisticSave(t *testing.T, s repository.Store) {
	ctx := context.Background()

	_, err := s.SaveGame(ctx, "ghost", NewDocument("GHOST001"), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	rec, err := s.CreateGame(ctx, "p1", NewDocument("CODE0001"))
	require.NoError(t, err)

	next := rec.Doc.Clone()
	next.Resources.Leaves = 99
	v, err := s.SaveGame(ctx, "p1", next, rec.Version)
	require.NoError(t, err)
	assert.Equal(t, rec.Version+1, v)

	stale := rec.Doc.Clone()
	stale.Resources.Leaves = 1
	_, err = s.SaveGame(ctx, "p1", stale, rec.Version)
	require.ErrorIs(t, err, repository.ErrVersionConflict)

	loaded, err := s.LoadGame(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(99), loaded.Doc.Resources.Leaves)
	assert.Equal(t, v, loaded.Version)
}

func testConcurrentSave(t *testing.T, s repository.Store) {
	ctx := context.Background()

	rec, err := s.CreateGame(ctx, "p1", NewDocument("CODE0001"))
	require.NoError(t, err)

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := rec.Doc.Clone()
			doc.Resources.Leaves = int64(100 + i)
			_, err := s.SaveGame(ctx, "p1", doc, rec.Version)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, repository.ErrVersionConflict):
				conflicts++
			default:
				t.Errorf("unexpected save error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, writers-1, conflicts)
}

func testFindByReferralCode(t *testing.T, s repository.Store) {
	ctx := context.Background()

	rec, err := s.CreateGame(ctx, "p1", NewDocument("FINDME01"))
	require.NoError(t, err)

	id, err := s.FindPlayerByReferralCode(ctx, "FINDME01")
	require.NoError(t, err)
	assert.Equal(t, "p1", id)

	_, err = s.FindPlayerByReferralCode(ctx, "NOPE0000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	next := rec.Doc.Clone()
	next.ReferralCode = "MOVED001"
	_, err = s.SaveGame(ctx, "p1", next, rec.Version)
	require.NoError(t, err)

	id, err = s.FindPlayerByReferralCode(ctx, "MOVED001")
	require.NoError(t, err)
	assert.Equal(t, "p1", id)
}

func testReferrals(t *testing.T, s repository.Store) {
	ctx := context.Background()
	for i, id := range []string{"alice", "bob", "carol"} {
		_, err := s.CreateGame(ctx, id, NewDocument(fmt.Sprintf("CODE000%d", i)))
		require.NoError(t, err)
	}

	_, err := s.GetReferrer(ctx, "bob")
	require.ErrorIs(t, err, domain.ErrNotFound)

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, s.RecordReferral(ctx, domain.Referral{ReferrerID: "alice", ReferredID: "bob", CreatedAt: now}))
	require.NoError(t, s.RecordReferral(ctx, domain.Referral{ReferrerID: "alice", ReferredID: "carol", CreatedAt: now}))

	referrer, err := s.GetReferrer(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", referrer)

	err = s.RecordReferral(ctx, domain.Referral{ReferrerID: "carol", ReferredID: "bob", CreatedAt: now})
	assert.ErrorIs(t, err, domain.ErrAlreadyReferred)

	err = s.RecordReferral(ctx, domain.Referral{ReferrerID: "alice", ReferredID: "alice", CreatedAt: now})
	assert.ErrorIs(t, err, domain.ErrSelfReferral)

	count, err := s.CountReferrals(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func testPurchases(t *testing.T, s repository.Store) {
	ctx := context.Background()
	_, err := s.CreateGame(ctx, "p1", NewDocument("CODE0001"))
	require.NoError(t, err)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := domain.Purchase{
		PurchaseID: uuid.NewString(), PlayerID: "p1", ItemID: "extra_slots_5",
		Amount: 50, Currency: "XTR", ChargeID: "charge-1", CreatedAt: base,
	}
	second := domain.Purchase{
		PurchaseID: uuid.NewString(), PlayerID: "p1", ItemID: "no_ads",
		Amount: 75, Currency: "XTR", ChargeID: "charge-2", CreatedAt: base.Add(time.Minute),
	}

	require.NoError(t, s.RecordPurchase(ctx, second))
	require.NoError(t, s.RecordPurchase(ctx, first))

	dup := first
	dup.PurchaseID = uuid.NewString()
	assert.ErrorIs(t, s.RecordPurchase(ctx, dup), repository.ErrDuplicatePurchase)

	list, err := s.ListPurchases(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "charge-1", list[0].ChargeID)
	assert.Equal(t, "charge-2", list[1].ChargeID)
	assert.Equal(t, int64(75), list[1].Amount)
	assert.True(t, list[0].CreatedAt.Equal(base))

	empty, err := s.ListPurchases(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testEventLog(t *testing.T, s repository.Store) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, typ := range []string{"grove.merge.completed", "grove.resources.collected", "grove.quest.claimed"} {
		require.NoError(t, s.LogEvent(ctx, repository.LoggedEvent{
			EventType: typ,
			PlayerID:  "p1",
			Payload:   json.RawMessage(fmt.Sprintf(`{"n":%d}`, i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.LogEvent(ctx, repository.LoggedEvent{
		EventType: "grove.merge.completed", PlayerID: "p2", Payload: json.RawMessage(`{}`), CreatedAt: base,
	}))

	recent, err := s.EventsByPlayer(ctx, "p1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "grove.quest.claimed", recent[0].EventType)
	assert.Equal(t, "grove.resources.collected", recent[1].EventType)
	assert.JSONEq(t, `{"n":2}`, string(recent[0].Payload))
	assert.True(t, recent[0].CreatedAt.Equal(base.Add(2*time.Hour)))
	assert.NotZero(t, recent[0].ID)

	deleted, err := s.CleanupOldEvents(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	left, err := s.EventsByPlayer(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "grove.quest.claimed", left[0].EventType)

	none, err := s.EventsByPlayer(ctx, "p2", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
