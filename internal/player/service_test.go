package player

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/database/memory"
	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/engine"
	"github.com/osse101/FairyGrove_Go/internal/event"
	"github.com/osse101/FairyGrove_Go/internal/idgen"
	"github.com/osse101/FairyGrove_Go/internal/payment"
	"github.com/osse101/FairyGrove_Go/internal/repository"
	"github.com/osse101/FairyGrove_Go/internal/scenario"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type stubNamer struct{}

func (stubNamer) Generate(ctx context.Context, family string, level int, lang string) string {
	return "Testname"
}

func (stubNamer) NameFor(ctx context.Context, creatureID, family string, level int, lang string) string {
	return "Testname"
}

type eventLog struct {
	mu     sync.Mutex
	events []event.Event
}

func (l *eventLog) handle(ctx context.Context, evt event.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
	return nil
}

func (l *eventLog) ofType(t event.Type) []event.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []event.Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// scriptedCodes returns the given referral codes in order, then falls back to random ones
type scriptedCodes struct {
	idgen.Generator
	mu    sync.Mutex
	codes []string
}

func (s *scriptedCodes) ReferralCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.codes) == 0 {
		return s.Generator.ReferralCode()
	}
	code := s.codes[0]
	s.codes = s.codes[1:]
	return code
}

// conflictStore fails the first failures saves with a version conflict
type conflictStore struct {
	repository.Store
	failures atomic.Int32
	saves    atomic.Int32
}

func (c *conflictStore) SaveGame(ctx context.Context, playerID string, doc *domain.GameDocument, expectedVersion int64) (int64, error) {
	c.saves.Add(1)
	if c.failures.Add(-1) >= 0 {
		return 0, repository.ErrVersionConflict
	}
	return c.Store.SaveGame(ctx, playerID, doc, expectedVersion)
}

type fixture struct {
	svc    Service
	store  *memory.Store
	clock  *scenario.SimulatedClock
	engine *engine.Engine
	events *eventLog
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		store:  memory.NewStore(),
		clock:  scenario.NewSimulatedClock(t0),
		engine: engine.New(catalog.Default(), idgen.NewSeeded(7)),
		events: &eventLog{},
	}
	bus := event.NewMemoryBus()
	for _, typ := range event.AllTypes {
		bus.Subscribe(typ, f.events.handle)
	}
	opts = append([]Option{WithClock(f.clock)}, opts...)
	f.svc = NewService(f.store, f.engine, bus, stubNamer{}, opts...)
	return f
}

// edit applies fn to the stored document outside the service
func (f *fixture) edit(t *testing.T, playerID string, fn func(doc *domain.GameDocument)) {
	t.Helper()
	rec, err := f.store.LoadGame(context.Background(), playerID)
	require.NoError(t, err)
	fn(rec.Doc)
	_, err = f.store.SaveGame(context.Background(), playerID, rec.Doc, rec.Version)
	require.NoError(t, err)
}

func (f *fixture) version(t *testing.T, playerID string) int64 {
	t.Helper()
	rec, err := f.store.LoadGame(context.Background(), playerID)
	require.NoError(t, err)
	return rec.Version
}

func TestGetState_CreatesGameOnFirstVisit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	state, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	assert.True(t, state.IsNew)
	assert.Equal(t, 3, state.Game.OccupiedSlots())
	assert.Equal(t, int64(10), state.Game.Resources.Leaves)
	assert.Len(t, state.Game.ReferralCode, 8)
	assert.True(t, state.OfflineBonus.IsZero())

	again, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	assert.False(t, again.IsNew)
	assert.Equal(t, state.Game.ReferralCode, again.Game.ReferralCode)
}

func TestGetState_ReferralCodeCollision(t *testing.T) {
	ids := &scriptedCodes{Generator: idgen.NewSeeded(1), codes: []string{"TAKEN001", "TAKEN001", "FRESH001"}}
	f := newFixture(t, WithIDs(ids))
	ctx := context.Background()

	first, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, "TAKEN001", first.Game.ReferralCode)

	second, err := f.svc.GetState(ctx, "bob", "")
	require.NoError(t, err)
	assert.Equal(t, "FRESH001", second.Game.ReferralCode)
}

func TestGetState_OfflineCatchup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)
	expected := f.engine.OfflineBonus(first.Game, f.clock.Now())
	require.False(t, expected.IsZero())

	state, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, expected, state.OfflineBonus)
	assert.Equal(t, expected, state.Game.CatchupBonus)
	assert.Equal(t, first.Game.Resources.Add(expected), state.Game.Resources)
	assert.Equal(t, f.clock.Now().UnixMilli(), state.Game.LastOnline)
	assert.Len(t, f.events.ofType(event.OfflineBonusGranted), 1)
}

func TestOfflineBonus_PreviewDoesNotCredit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	v := f.version(t, "alice")

	f.clock.Advance(time.Hour)
	bonus, err := f.svc.OfflineBonus(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, bonus.IsZero())
	assert.Equal(t, v, f.version(t, "alice"))
}

func TestMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	from, to := state.Game.Grid[0], state.Game.Grid[1]
	require.Equal(t, domain.FamilyFairyCat, from.Family)

	out, err := f.svc.Merge(ctx, "alice", from.ID, to.ID, "en")
	require.NoError(t, err)

	assert.Equal(t, 2, out.NewLevel)
	assert.Equal(t, int64(20), out.XPGained)
	assert.Equal(t, domain.FamilyFairyCat, out.Family)
	assert.Equal(t, "Testname", out.Name)
	assert.Nil(t, out.Game.Grid[0])
	assert.Equal(t, out.NewCreatureID, out.Game.Grid[1].ID)
	assert.Equal(t, int64(1), out.Game.TotalMerges)

	merges := f.events.ofType(event.MergeCompleted)
	require.Len(t, merges, 1)
	assert.Equal(t, event.MergePayloadV1{Family: domain.FamilyFairyCat, NewLevel: 2, XPGained: 20}, merges[0].Payload)
}

func TestMerge_RejectedLeavesDocumentUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	v := f.version(t, "alice")

	_, err = f.svc.Merge(ctx, "alice", state.Game.Grid[0].ID, state.Game.Grid[2].ID, "en")
	assert.ErrorIs(t, err, domain.ErrInvalidMerge)

	_, err = f.svc.Merge(ctx, "alice", "ghost", state.Game.Grid[2].ID, "en")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, v, f.version(t, "alice"))
	assert.Empty(t, f.events.ofType(event.MergeCompleted))
}

func TestCollect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	id := state.Game.Grid[2].ID

	f.clock.Advance(10 * time.Minute)
	out, err := f.svc.Collect(ctx, "alice", id)
	require.NoError(t, err)
	assert.Positive(t, out.Earned.Leaves)
	assert.Equal(t, state.Game.Resources.Add(out.Earned), out.Game.Resources)

	again, err := f.svc.Collect(ctx, "alice", id)
	require.NoError(t, err)
	assert.True(t, again.Earned.IsZero())
	assert.Len(t, f.events.ofType(event.ResourcesCollected), 1)
}

func TestCollect_CatalogDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	f.edit(t, "alice", func(doc *domain.GameDocument) {
		doc.Grid[5] = &domain.Creature{ID: "c_moth", Family: "moon_moth", Level: 1, LastCollected: t0.UnixMilli()}
	})

	f.clock.Advance(time.Hour)
	_, err = f.svc.Collect(ctx, "alice", "c_moth")
	assert.ErrorIs(t, err, domain.ErrInvalidCreatureType)

	all, err := f.svc.CollectAll(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"c_moth"}, all.Skipped)
	assert.Equal(t, 3, all.Collected)
	assert.Positive(t, all.Earned.Leaves)

	drift := f.events.ofType(event.CatalogDrift)
	require.Len(t, drift, 2)
	assert.Equal(t, event.CatalogDriftPayloadV1{CreatureIDs: []string{"c_moth"}}, drift[1].Payload)
}

func TestBuy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)

	out, err := f.svc.Buy(ctx, "alice", "buy_mushroom_1")
	require.NoError(t, err)
	assert.NotEmpty(t, out.NewCreatureID)
	assert.Equal(t, int64(0), out.Game.Resources.Leaves)
	assert.Equal(t, out.NewCreatureID, out.Game.Grid[3].ID)

	_, err = f.svc.Buy(ctx, "alice", "buy_mushroom_1")
	var short *domain.InsufficientResourcesError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, domain.ResourceLeaves, short.Resource)

	_, err = f.svc.Buy(ctx, "alice", "no_ads")
	assert.ErrorIs(t, err, domain.ErrWrongPaymentChannel)

	purchases := f.events.ofType(event.ShopPurchased)
	require.Len(t, purchases, 1)
	assert.Equal(t, event.PurchasePayloadV1{ItemID: "buy_mushroom_1", Cost: domain.ResourceBundle{Leaves: 10}}, purchases[0].Payload)
}

func TestClaimQuest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)

	var questID string
	f.edit(t, "alice", func(doc *domain.GameDocument) {
		q := &doc.DailyQuests[0]
		q.CurrentAmount = q.TargetAmount
		q.Completed = true
		q.RewardLeaves = 25
		q.RewardDew = 0
		q.RewardBerries = 0
		questID = q.ID
	})

	out, err := f.svc.ClaimQuest(ctx, "alice", questID)
	require.NoError(t, err)
	assert.Equal(t, domain.ResourceBundle{Leaves: 25}, out.Reward)
	assert.Equal(t, int64(35), out.Game.Resources.Leaves)

	_, err = f.svc.ClaimQuest(ctx, "alice", questID)
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)

	_, err = f.svc.ClaimQuest(ctx, "alice", "q_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Len(t, f.events.ofType(event.QuestClaimed), 1)
}

func TestQuests_LazyDailyReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.svc.Quests(ctx, "alice")
	require.NoError(t, err)

	f.clock.Advance(23 * time.Hour)
	same, err := f.svc.Quests(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before, same)

	f.clock.Advance(2 * time.Hour)
	after, err := f.svc.Quests(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, after)
	assert.NotEqual(t, before[0].ID, after[0].ID)

	rec, err := f.store.LoadGame(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now().UnixMilli(), rec.Doc.QuestLastReset)
}

func TestSync(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	doc, err := f.svc.Sync(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now().UnixMilli(), doc.LastOnline)
}

func TestApplyPremium(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := payment.Confirmation{PlayerID: "42", ItemID: "extra_slots_5", ChargeID: "ch_1", Amount: 50}

	applied, err := f.svc.ApplyPremium(ctx, c)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = f.svc.ApplyPremium(ctx, c)
	require.NoError(t, err)
	assert.False(t, applied)

	rec, err := f.store.LoadGame(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUnlockedSlots+5, rec.Doc.UnlockedSlots)

	purchases, err := f.store.ListPurchases(ctx, "42")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, domain.CurrencyStars, purchases[0].Currency)
	assert.Len(t, f.events.ofType(event.PremiumPurchased), 1)
}

func TestApplyPremium_UnknownItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ApplyPremium(context.Background(), payment.Confirmation{PlayerID: "42", ItemID: "buy_fox_1", ChargeID: "ch_x"})
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestSubscription_ActivatesAndExpiresOnLoad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	applied, err := f.svc.ApplyPremium(ctx, payment.Confirmation{PlayerID: "42", ItemID: domain.SubscriptionEnchanted, ChargeID: "ch_sub", Amount: 500})
	require.NoError(t, err)
	require.True(t, applied)

	state, err := f.svc.GetState(ctx, "42", "")
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionEnchanted, state.Game.Subscription)
	assert.True(t, state.Game.NoAds)

	f.clock.Advance(domain.SubscriptionDuration + time.Hour)
	doc, err := f.svc.Sync(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionNone, doc.Subscription)
	assert.True(t, doc.NoAds)

	assert.Len(t, f.events.ofType(event.SubscriptionActivated), 1)
	expired := f.events.ofType(event.SubscriptionExpired)
	require.Len(t, expired, 1)
	assert.Equal(t, domain.SubscriptionEnchanted, expired[0].Payload.(event.SubscriptionPayloadV1).Tier)
}

func TestApplyReferral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	_, err = f.svc.GetState(ctx, "bob", "")
	require.NoError(t, err)

	out, err := f.svc.ApplyReferral(ctx, "bob", " "+alice.Game.ReferralCode+" ")
	require.NoError(t, err)
	assert.Equal(t, "alice", out.ReferrerID)
	assert.Equal(t, domain.FamilyFairyCat, out.Reward.Family)
	assert.Equal(t, 4, out.Game.OccupiedSlots())
	assert.JSONEq(t, `"alice"`, string(out.Game.Extra[ExtraReferredBy]))

	referrer, err := f.store.LoadGame(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), referrer.Doc.ReferralCount)
	assert.Equal(t, 4, referrer.Doc.OccupiedSlots())

	_, err = f.svc.ApplyReferral(ctx, "bob", alice.Game.ReferralCode)
	assert.ErrorIs(t, err, domain.ErrAlreadyReferred)

	_, err = f.svc.ApplyReferral(ctx, "alice", alice.Game.ReferralCode)
	assert.ErrorIs(t, err, domain.ErrSelfReferral)

	_, err = f.svc.ApplyReferral(ctx, "carol", "NOPE0000")
	assert.ErrorIs(t, err, domain.ErrInvalidReferral)

	assert.Len(t, f.events.ofType(event.ReferralApplied), 1)
}

func TestGetState_StartParamReferral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)

	bob, err := f.svc.GetState(ctx, "bob", alice.Game.ReferralCode)
	require.NoError(t, err)
	assert.True(t, bob.IsNew)
	assert.Equal(t, 4, bob.Game.OccupiedSlots())

	again, err := f.svc.GetState(ctx, "bob", alice.Game.ReferralCode)
	require.NoError(t, err)
	assert.Equal(t, 4, again.Game.OccupiedSlots())

	carol, err := f.svc.GetState(ctx, "carol", "BADCODE1")
	require.NoError(t, err)
	assert.Equal(t, 3, carol.Game.OccupiedSlots())
}

func TestMutate_RetriesVersionConflicts(t *testing.T) {
	store := &conflictStore{Store: memory.NewStore()}
	eng := engine.New(catalog.Default(), idgen.NewSeeded(3))
	clock := scenario.NewSimulatedClock(t0)
	svc := NewService(store, eng, event.NewMemoryBus(), stubNamer{}, WithClock(clock), WithMaxSaveRetries(3))
	ctx := context.Background()

	_, err := svc.GetState(ctx, "alice", "")
	require.NoError(t, err)

	store.failures.Store(2)
	store.saves.Store(0)
	clock.Advance(time.Minute)
	doc, err := svc.Sync(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().UnixMilli(), doc.LastOnline)
	assert.Equal(t, int32(3), store.saves.Load())

	store.failures.Store(3)
	clock.Advance(time.Minute)
	_, err = svc.Sync(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
}

// newConflictFixture wires the service over a store whose saves can be made to fail
func newConflictFixture(t *testing.T) (*fixture, *conflictStore) {
	t.Helper()
	f := newFixture(t)
	store := &conflictStore{Store: f.store}
	bus := event.NewMemoryBus()
	for _, typ := range event.AllTypes {
		bus.Subscribe(typ, f.events.handle)
	}
	f.svc = NewService(store, f.engine, bus, stubNamer{}, WithClock(f.clock), WithMaxSaveRetries(3))
	return f, store
}

func TestApplyPremium_RedeliveryAfterFailedApply(t *testing.T) {
	f, store := newConflictFixture(t)
	ctx := context.Background()
	c := payment.Confirmation{PlayerID: "42", ItemID: "extra_slots_5", ChargeID: "ch_retry", Amount: 50}
	_, err := f.svc.GetState(ctx, "42", "")
	require.NoError(t, err)

	store.failures.Store(3)
	applied, err := f.svc.ApplyPremium(ctx, c)
	require.ErrorIs(t, err, repository.ErrVersionConflict)
	assert.False(t, applied)

	purchases, err := f.store.ListPurchases(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, purchases, "nothing recorded for an unapplied charge")

	applied, err = f.svc.ApplyPremium(ctx, c)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = f.svc.ApplyPremium(ctx, c)
	require.NoError(t, err)
	assert.False(t, applied)

	rec, err := f.store.LoadGame(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUnlockedSlots+5, rec.Doc.UnlockedSlots)
	assert.JSONEq(t, `["ch_retry"]`, string(rec.Doc.Extra[ExtraAppliedCharges]))

	purchases, err = f.store.ListPurchases(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, purchases, 1)
	assert.Len(t, f.events.ofType(event.PremiumPurchased), 1)
}

func TestApplyPremium_RecordsMissingPurchaseOnRedelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := payment.Confirmation{PlayerID: "42", ItemID: domain.ItemNoAds, ChargeID: "ch_marked", Amount: 100}
	_, err := f.svc.GetState(ctx, "42", "")
	require.NoError(t, err)
	f.edit(t, "42", func(doc *domain.GameDocument) {
		require.NoError(t, setExtra(doc, ExtraAppliedCharges, []string{"ch_marked"}))
	})

	applied, err := f.svc.ApplyPremium(ctx, c)
	require.NoError(t, err)
	assert.False(t, applied)

	purchases, err := f.store.ListPurchases(ctx, "42")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "ch_marked", purchases[0].ChargeID)
}

func TestApplyReferral_RetryAfterFailedSave(t *testing.T) {
	f, store := newConflictFixture(t)
	ctx := context.Background()
	alice, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	bob, err := f.svc.GetState(ctx, "bob", "")
	require.NoError(t, err)
	require.Equal(t, 3, bob.Game.OccupiedSlots())

	store.failures.Store(3)
	_, err = f.svc.ApplyReferral(ctx, "bob", alice.Game.ReferralCode)
	require.ErrorIs(t, err, repository.ErrVersionConflict)

	n, err := f.store.CountReferrals(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, n)

	out, err := f.svc.ApplyReferral(ctx, "bob", alice.Game.ReferralCode)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Game.OccupiedSlots())

	n, err = f.store.CountReferrals(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	referrer, err := f.store.LoadGame(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), referrer.Doc.ReferralCount)

	_, err = f.svc.ApplyReferral(ctx, "bob", alice.Game.ReferralCode)
	assert.ErrorIs(t, err, domain.ErrAlreadyReferred)
	assert.Len(t, f.events.ofType(event.ReferralApplied), 1)
}

func TestGetState_OfflineWindowPaidOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	state, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	require.False(t, state.OfflineBonus.IsZero())

	out, err := f.svc.CollectAll(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, out.Earned.IsZero(), "collect after catch-up pays nothing for the same hour")
	assert.Equal(t, first.Game.Resources.Add(state.OfflineBonus), out.Game.Resources)
}

func TestConcurrentOperationsSerialise(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.GetState(ctx, "alice", "")
	require.NoError(t, err)
	v := f.version(t, "alice")

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Sync(ctx, "alice"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	assert.Equal(t, v+workers, f.version(t, "alice"))
}

func TestGetState_StoreErrorsPropagate(t *testing.T) {
	f := newFixture(t)
	broken := &failingStore{Store: f.store, err: errors.New("disk on fire")}
	svc := NewService(broken, f.engine, event.NewMemoryBus(), stubNamer{}, WithClock(f.clock))

	_, err := svc.GetState(context.Background(), "alice", "")
	assert.ErrorContains(t, err, "disk on fire")
}

type failingStore struct {
	repository.Store
	err error
}

func (s *failingStore) LoadGame(ctx context.Context, playerID string) (*repository.GameRecord, error) {
	return nil, s.err
}
