package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string         `json:"version"`
	Type     Type           `json:"type"`
	PlayerID string         `json:"player_id"`
	Payload  interface{}    `json:"payload"`
	Metadata map[string]any `json:"metadata,omitempty"`
	At       time.Time      `json:"at"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Game event types
const (
	MergeCompleted        Type = "grove.merge.completed"
	ResourcesCollected    Type = "grove.resources.collected"
	OfflineBonusGranted   Type = "grove.offline_bonus.granted"
	ShopPurchased         Type = "grove.shop.purchased"
	PremiumPurchased      Type = "grove.premium.purchased"
	SubscriptionActivated Type = "grove.subscription.activated"
	SubscriptionExpired   Type = "grove.subscription.expired"
	QuestClaimed          Type = "grove.quest.claimed"
	ReferralApplied       Type = "grove.referral.applied"
	CatalogDrift          Type = "grove.catalog.drift"
)

// AllTypes lists every game event type
var AllTypes = []Type{
	MergeCompleted,
	ResourcesCollected,
	OfflineBonusGranted,
	ShopPurchased,
	PremiumPurchased,
	SubscriptionActivated,
	SubscriptionExpired,
	QuestClaimed,
	ReferralApplied,
	CatalogDrift,
}

// MergePayloadV1 is published after a successful merge
type MergePayloadV1 struct {
	Family   string `json:"family"`
	NewLevel int    `json:"new_level"`
	XPGained int64  `json:"xp_gained"`
}

// ResourcesPayloadV1 carries earned resources
type ResourcesPayloadV1 struct {
	Earned domain.ResourceBundle `json:"earned"`
	Source string                `json:"source"`
}

// PurchasePayloadV1 is published after a shop or premium purchase
type PurchasePayloadV1 struct {
	ItemID string                `json:"item_id"`
	Cost   domain.ResourceBundle `json:"cost,omitempty"`
	Stars  int64                 `json:"stars,omitempty"`
}

// SubscriptionPayloadV1 is published when a tier starts or lapses
type SubscriptionPayloadV1 struct {
	Tier    string    `json:"tier"`
	Expires time.Time `json:"expires"`
}

// QuestPayloadV1 is published after a quest reward is claimed
type QuestPayloadV1 struct {
	QuestID string                `json:"quest_id"`
	Kind    string                `json:"kind"`
	Reward  domain.ResourceBundle `json:"reward"`
}

// ReferralPayloadV1 is published once per referral, for the referred player
type ReferralPayloadV1 struct {
	ReferrerID string `json:"referrer_id"`
}

// CatalogDriftPayloadV1 names creatures whose definition is missing from the catalog
type CatalogDriftPayloadV1 struct {
	CreatureIDs []string `json:"creature_ids"`
}

// New builds an event stamped with the current schema version
func New(t Type, playerID string, payload interface{}, at time.Time) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		PlayerID: playerID,
		Payload:  payload,
		At:       at,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errors.Join(errs...))
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// DecodePayload returns the payload as T. In-process publishes carry T directly;
// payloads read back from the dead-letter file arrive as maps and are re-decoded
// through JSON.
func DecodePayload[T any](payload interface{}) (T, error) {
	if v, ok := payload.(T); ok {
		return v, nil
	}
	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}
