// Package player runs game operations for one player at a time: load the
// document, apply lazy upkeep, call the engine, save with optimistic
// versioning and publish the resulting events.
package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FairyGrove_Go/internal/concurrency"
	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/engine"
	"github.com/osse101/FairyGrove_Go/internal/event"
	"github.com/osse101/FairyGrove_Go/internal/idgen"
	"github.com/osse101/FairyGrove_Go/internal/logger"
	"github.com/osse101/FairyGrove_Go/internal/metrics"
	"github.com/osse101/FairyGrove_Go/internal/naming"
	"github.com/osse101/FairyGrove_Go/internal/payment"
	"github.com/osse101/FairyGrove_Go/internal/repository"
	"github.com/osse101/FairyGrove_Go/internal/social"
)

// Service defines player game operations
type Service interface {
	// GetState loads or creates the player's game and applies offline catch-up.
	// startParam is a referral code honoured only when the game is new.
	GetState(ctx context.Context, playerID, startParam string) (*State, error)
	OfflineBonus(ctx context.Context, playerID string) (domain.ResourceBundle, error)
	Merge(ctx context.Context, playerID, fromID, toID, lang string) (*MergeOutcome, error)
	Collect(ctx context.Context, playerID, creatureID string) (*CollectOutcome, error)
	CollectAll(ctx context.Context, playerID string) (*CollectAllOutcome, error)
	Buy(ctx context.Context, playerID, itemID string) (*BuyOutcome, error)
	Quests(ctx context.Context, playerID string) ([]domain.Quest, error)
	ClaimQuest(ctx context.Context, playerID, questID string) (*ClaimOutcome, error)
	Sync(ctx context.Context, playerID string) (*domain.GameDocument, error)
	ApplyReferral(ctx context.Context, playerID, code string) (*ReferralOutcome, error)
	ApplyPremium(ctx context.Context, c payment.Confirmation) (bool, error)
}

// Option configures the service
type Option func(*service)

// WithClock replaces the wall clock
func WithClock(c Clock) Option {
	return func(s *service) { s.clock = c }
}

// WithMaxSaveRetries bounds attempts per operation when saves conflict
func WithMaxSaveRetries(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithIDs replaces the referral code source
func WithIDs(ids idgen.Generator) Option {
	return func(s *service) { s.ids = ids }
}

type service struct {
	store      repository.Store
	engine     *engine.Engine
	rewards    *social.Rewards
	bus        event.Bus
	namer      naming.Generator
	locks      *concurrency.LockManager
	ids        idgen.Generator
	clock      Clock
	maxRetries int
}

var _ payment.Fulfiller = (*service)(nil)

// NewService creates a player service
func NewService(store repository.Store, eng *engine.Engine, bus event.Bus, namer naming.Generator, opts ...Option) Service {
	s := &service{
		store:      store,
		engine:     eng,
		rewards:    social.NewRewards(eng),
		bus:        bus,
		namer:      namer,
		locks:      concurrency.NewLockManager(),
		ids:        idgen.New(),
		clock:      systemClock{},
		maxRetries: DefaultMaxSaveRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// txn is one attempt of a load-apply-save cycle
type txn struct {
	playerID string
	doc      *domain.GameDocument
	now      time.Time
	events   []event.Event
}

func (t *txn) emit(typ event.Type, payload interface{}) {
	t.events = append(t.events, event.New(typ, t.playerID, payload, t.now))
}

// mutate runs fn against the player's current document under the player lock and
// saves the result if fn or upkeep produced a new document. fn may run more than
// once when saves conflict, so it must only touch tx and its own result variables.
func (s *service) mutate(ctx context.Context, playerID, op string, fn func(tx *txn) error) (*domain.GameDocument, bool, error) {
	start := time.Now()
	defer func() {
		metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	var (
		saved   *domain.GameDocument
		events  []event.Event
		created bool
	)
	err := s.locks.WithLock(playerID, func() error {
		for attempt := 1; ; attempt++ {
			rec, isNew, err := s.loadOrCreate(ctx, playerID)
			if err != nil {
				return err
			}

			tx := &txn{playerID: playerID, doc: rec.Doc, now: s.clock.Now()}
			s.upkeep(ctx, tx)
			if err := fn(tx); err != nil {
				return err
			}

			if tx.doc != rec.Doc {
				_, err := s.store.SaveGame(ctx, playerID, tx.doc, rec.Version)
				if errors.Is(err, repository.ErrVersionConflict) {
					metrics.SaveConflicts.WithLabelValues(op).Inc()
					if attempt < s.maxRetries {
						logger.FromContext(ctx).Warn(LogMsgSaveConflict, "player_id", playerID, "operation", op, "attempt", attempt)
						continue
					}
					return fmt.Errorf("%w: %s after %d attempts", err, ErrMsgRetriesExhausted, attempt)
				}
				if err != nil {
					return err
				}
			}

			saved, events, created = tx.doc, tx.events, isNew
			return nil
		}
	})
	if err != nil {
		return nil, false, err
	}

	s.publish(ctx, events)
	return saved, created, nil
}

// upkeep applies the lazy per-load transitions: subscription expiry and daily quest reset
func (s *service) upkeep(ctx context.Context, tx *txn) {
	if out, expired := engine.ExpireSubscription(tx.doc, tx.now); expired {
		logger.FromContext(ctx).Info(LogMsgSubscriptionExpire, "player_id", tx.playerID, "tier", tx.doc.Subscription)
		tx.emit(event.SubscriptionExpired, event.SubscriptionPayloadV1{
			Tier:    tx.doc.Subscription,
			Expires: domain.MillisToTime(tx.doc.SubscriptionExpires),
		})
		tx.doc = out
	}
	if out, refreshed := s.engine.Quests().RefreshIfNeeded(tx.doc, tx.now); refreshed {
		tx.doc = out
	}
}

func (s *service) loadOrCreate(ctx context.Context, playerID string) (*repository.GameRecord, bool, error) {
	rec, err := s.store.LoadGame(ctx, playerID)
	if err == nil {
		return rec, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	for i := 0; i < referralCodeAttempts; i++ {
		doc := s.engine.NewGame(s.clock.Now())
		doc.ReferralCode = s.ids.ReferralCode()

		rec, err := s.store.CreateGame(ctx, playerID, doc)
		switch {
		case err == nil:
			logger.FromContext(ctx).Info(LogMsgPlayerCreated, "player_id", playerID)
			return rec, true, nil
		case errors.Is(err, repository.ErrReferralCodeTaken):
			continue
		case errors.Is(err, repository.ErrAlreadyExists):
			rec, err := s.store.LoadGame(ctx, playerID)
			return rec, false, err
		default:
			return nil, false, err
		}
	}
	return nil, false, errors.New(ErrMsgCodeExhausted)
}

func (s *service) publish(ctx context.Context, events []event.Event) {
	for _, evt := range events {
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
		}
	}
}

// reportDrift records creatures whose (family, level) the catalog no longer knows
func (s *service) reportDrift(ctx context.Context, playerID string, creatureIDs []string) {
	logger.FromContext(ctx).Error(LogMsgCatalogDrift, "catalog_drift", true, "player_id", playerID, "creature_ids", creatureIDs)
	s.publish(ctx, []event.Event{event.New(event.CatalogDrift, playerID, event.CatalogDriftPayloadV1{CreatureIDs: creatureIDs}, s.clock.Now())})
}

func (s *service) GetState(ctx context.Context, playerID, startParam string) (*State, error) {
	var bonus domain.ResourceBundle
	doc, created, err := s.mutate(ctx, playerID, OpGetState, func(tx *txn) error {
		tx.doc, bonus = s.engine.ApplyOfflineBonus(tx.doc, tx.now)
		if !bonus.IsZero() {
			tx.emit(event.OfflineBonusGranted, event.ResourcesPayloadV1{Earned: bonus, Source: SourceOffline})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created && startParam != "" {
		out, err := s.ApplyReferral(ctx, playerID, startParam)
		if err != nil {
			logger.FromContext(ctx).Info(LogMsgStartParamRejected, "player_id", playerID, "code", startParam, "error", err)
		} else {
			doc = out.Game
		}
	}

	return &State{Game: doc, IsNew: created, OfflineBonus: bonus}, nil
}

func (s *service) OfflineBonus(ctx context.Context, playerID string) (domain.ResourceBundle, error) {
	var bonus domain.ResourceBundle
	_, _, err := s.mutate(ctx, playerID, OpOfflineBonus, func(tx *txn) error {
		bonus = s.engine.OfflineBonus(tx.doc, tx.now)
		return nil
	})
	return bonus, err
}

func (s *service) Merge(ctx context.Context, playerID, fromID, toID, lang string) (*MergeOutcome, error) {
	var (
		result engine.MergeResult
		family string
	)
	doc, _, err := s.mutate(ctx, playerID, OpMerge, func(tx *txn) error {
		if _, c := tx.doc.FindCreature(fromID); c != nil {
			family = c.Family
		}
		out, res, err := s.engine.Merge(tx.doc, fromID, toID, tx.now)
		if err != nil {
			return err
		}
		tx.doc = engine.Touch(out, tx.now)
		result = res
		tx.emit(event.MergeCompleted, event.MergePayloadV1{Family: family, NewLevel: res.NewLevel, XPGained: res.XPGained})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// naming runs after the save and outside the player lock
	name := s.namer.NameFor(ctx, result.NewCreatureID, family, result.NewLevel, lang)
	return &MergeOutcome{MergeResult: result, Family: family, Name: name, Game: doc}, nil
}

func (s *service) Collect(ctx context.Context, playerID, creatureID string) (*CollectOutcome, error) {
	var earned domain.ResourceBundle
	doc, _, err := s.mutate(ctx, playerID, OpCollect, func(tx *txn) error {
		out, got, err := s.engine.Collect(tx.doc, creatureID, tx.now)
		if err != nil {
			return err
		}
		tx.doc = engine.Touch(out, tx.now)
		earned = got
		if !got.IsZero() {
			tx.emit(event.ResourcesCollected, event.ResourcesPayloadV1{Earned: got, Source: SourceCollect})
		}
		return nil
	})
	if errors.Is(err, domain.ErrInvalidCreatureType) {
		s.reportDrift(ctx, playerID, []string{creatureID})
	}
	if err != nil {
		return nil, err
	}
	return &CollectOutcome{Earned: earned, Game: doc}, nil
}

func (s *service) CollectAll(ctx context.Context, playerID string) (*CollectAllOutcome, error) {
	var result engine.CollectAllResult
	doc, _, err := s.mutate(ctx, playerID, OpCollectAll, func(tx *txn) error {
		out, res, err := s.engine.CollectAll(tx.doc, tx.now)
		if err != nil {
			return err
		}
		tx.doc = engine.Touch(out, tx.now)
		result = res
		if !res.Earned.IsZero() {
			tx.emit(event.ResourcesCollected, event.ResourcesPayloadV1{Earned: res.Earned, Source: SourceCollectAll})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(result.Drifted) > 0 {
		s.reportDrift(ctx, playerID, result.Drifted)
	}
	return &CollectAllOutcome{Earned: result.Earned, Collected: result.Collected, Skipped: result.Drifted, Game: doc}, nil
}

func (s *service) Buy(ctx context.Context, playerID, itemID string) (*BuyOutcome, error) {
	var result engine.BuyResult
	doc, _, err := s.mutate(ctx, playerID, OpBuy, func(tx *txn) error {
		out, res, err := s.engine.Buy(tx.doc, itemID, tx.now)
		if err != nil {
			return err
		}
		tx.doc = engine.Touch(out, tx.now)
		result = res
		item, _ := s.engine.Catalog().ShopItem(itemID)
		tx.emit(event.ShopPurchased, event.PurchasePayloadV1{ItemID: itemID, Cost: item.Cost})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BuyOutcome{BuyResult: result, Game: doc}, nil
}

func (s *service) Quests(ctx context.Context, playerID string) ([]domain.Quest, error) {
	doc, _, err := s.mutate(ctx, playerID, OpQuests, func(tx *txn) error { return nil })
	if err != nil {
		return nil, err
	}
	return doc.DailyQuests, nil
}

func (s *service) ClaimQuest(ctx context.Context, playerID, questID string) (*ClaimOutcome, error) {
	var reward domain.ResourceBundle
	doc, _, err := s.mutate(ctx, playerID, OpClaimQuest, func(tx *txn) error {
		var kind string
		if idx := tx.doc.FindQuest(questID); idx >= 0 {
			kind = tx.doc.DailyQuests[idx].Type
		}
		out, got, err := s.engine.Quests().Claim(tx.doc, questID, tx.now)
		if err != nil {
			return err
		}
		tx.doc = engine.Touch(out, tx.now)
		reward = got
		tx.emit(event.QuestClaimed, event.QuestPayloadV1{QuestID: questID, Kind: kind, Reward: got})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ClaimOutcome{QuestID: questID, Reward: reward, Game: doc}, nil
}

func (s *service) Sync(ctx context.Context, playerID string) (*domain.GameDocument, error) {
	doc, _, err := s.mutate(ctx, playerID, OpSync, func(tx *txn) error {
		tx.doc = engine.Touch(tx.doc, tx.now)
		return nil
	})
	return doc, err
}

// ApplyReferral rewards playerID for using code and rewards the code's owner.
// The referredBy marker in the player's document rejects repeats; it is saved
// together with the reward, and the referral row is written after that save so a
// failed save leaves nothing behind to block a retry.
func (s *service) ApplyReferral(ctx context.Context, playerID, code string) (*ReferralOutcome, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	referrerID, err := s.store.FindPlayerByReferralCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidReferral, code)
	}
	if err != nil {
		return nil, err
	}
	if referrerID == playerID {
		return nil, domain.ErrSelfReferral
	}

	var (
		reward     social.Reward
		referredBy string
		repeat     bool
	)
	doc, _, err := s.mutate(ctx, playerID, OpReferral, func(tx *txn) error {
		repeat = false
		if prev, ok := extraString(tx.doc, ExtraReferredBy); ok {
			referredBy, repeat = prev, true
			return nil
		}
		out, r := s.rewards.GrantReferralReward(tx.doc, tx.now)
		if err := setExtra(out, ExtraReferredBy, referrerID); err != nil {
			return err
		}
		tx.doc = out
		reward, referredBy = r, referrerID
		tx.emit(event.ReferralApplied, event.ReferralPayloadV1{ReferrerID: referrerID})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// a repeat still writes the row in case the first call failed after its save
	err = s.store.RecordReferral(ctx, domain.Referral{ReferrerID: referredBy, ReferredID: playerID, CreatedAt: s.clock.Now()})
	if err != nil && !errors.Is(err, domain.ErrAlreadyReferred) {
		return nil, err
	}
	if repeat {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyReferred, playerID)
	}

	_, _, err = s.mutate(ctx, referrerID, OpReferral, func(tx *txn) error {
		tx.doc, _ = s.rewards.GrantReferrerReward(tx.doc, tx.now)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgReferrerRewardFailed, "referrer_id", referrerID, "referred_id", playerID, "error", err)
	}

	logger.FromContext(ctx).Info(LogMsgReferralApplied, "player_id", playerID, "referrer_id", referrerID)
	return &ReferralOutcome{ReferrerID: referrerID, Reward: reward, Game: doc}, nil
}

// ApplyPremium applies a confirmed Stars payment once per charge id. The charge
// id is marked in the document in the same save that applies the item; the
// purchase row follows the save, so a redelivery after a failed apply retries it.
func (s *service) ApplyPremium(ctx context.Context, c payment.Confirmation) (bool, error) {
	log := logger.FromContext(ctx)

	if _, ok := s.engine.Catalog().StarsPrice(c.ItemID); !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrUnknownItem, c.ItemID)
	}

	var applied bool
	_, _, err := s.mutate(ctx, c.PlayerID, OpPremium, func(tx *txn) error {
		applied = false
		charges, err := appliedCharges(tx.doc)
		if err != nil {
			return err
		}
		if slices.Contains(charges, c.ChargeID) {
			return nil
		}

		var out *domain.GameDocument
		if domain.IsSubscriptionTier(c.ItemID) {
			out, err = s.engine.ApplySubscription(tx.doc, c.ItemID, tx.now)
			if err != nil {
				return err
			}
			tx.emit(event.SubscriptionActivated, event.SubscriptionPayloadV1{
				Tier:    c.ItemID,
				Expires: domain.MillisToTime(out.SubscriptionExpires),
			})
		} else {
			out = s.engine.ApplyPremiumPurchase(tx.doc, c.ItemID)
			tx.emit(event.PremiumPurchased, event.PurchasePayloadV1{ItemID: c.ItemID, Stars: c.Amount})
		}
		if out == tx.doc {
			out = tx.doc.Clone()
		}
		if err := setExtra(out, ExtraAppliedCharges, append(charges, c.ChargeID)); err != nil {
			return err
		}
		tx.doc = out
		applied = true
		return nil
	})
	if err != nil {
		log.Error(LogMsgPremiumUnapplied, "player_id", c.PlayerID, "charge_id", c.ChargeID, "error", err)
		return false, err
	}

	err = s.store.RecordPurchase(ctx, domain.Purchase{
		PurchaseID: uuid.NewString(),
		PlayerID:   c.PlayerID,
		ItemID:     c.ItemID,
		Amount:     c.Amount,
		Currency:   domain.CurrencyStars,
		ChargeID:   c.ChargeID,
		CreatedAt:  s.clock.Now(),
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicatePurchase) {
		log.Error(LogMsgPurchaseUnrecorded, "player_id", c.PlayerID, "charge_id", c.ChargeID, "error", err)
		return applied, err
	}

	if applied {
		log.Info(LogMsgPremiumApplied, "player_id", c.PlayerID, "item_id", c.ItemID, "charge_id", c.ChargeID)
	}
	return applied, nil
}

// appliedCharges decodes the charge ids already applied to doc
func appliedCharges(doc *domain.GameDocument) ([]string, error) {
	raw, ok := doc.Extra[ExtraAppliedCharges]
	if !ok {
		return nil, nil
	}
	var charges []string
	if err := json.Unmarshal(raw, &charges); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ExtraAppliedCharges, err)
	}
	return charges, nil
}

func extraString(doc *domain.GameDocument, key string) (string, bool) {
	raw, ok := doc.Extra[key]
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil || v == "" {
		return "", false
	}
	return v, true
}

func setExtra(doc *domain.GameDocument, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if doc.Extra == nil {
		doc.Extra = make(map[string]json.RawMessage)
	}
	doc.Extra[key] = raw
	return nil
}
