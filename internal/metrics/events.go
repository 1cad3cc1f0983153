package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/event"
	"github.com/osse101/FairyGrove_Go/internal/logger"
)

// EventMetricsCollector subscribes to game events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all game events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range event.AllTypes {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent updates metrics for one event. Malformed payloads are logged and skipped.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := e.record(evt); err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) record(evt event.Event) error {
	switch evt.Type {
	case event.MergeCompleted:
		p, err := event.DecodePayload[event.MergePayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		Merges.WithLabelValues(p.Family, strconv.Itoa(p.NewLevel)).Inc()

	case event.ResourcesCollected, event.OfflineBonusGranted:
		p, err := event.DecodePayload[event.ResourcesPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		Collects.WithLabelValues(p.Source).Inc()
		recordResources(p.Earned, p.Source)

	case event.ShopPurchased:
		p, err := event.DecodePayload[event.PurchasePayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		ShopPurchases.WithLabelValues(p.ItemID).Inc()

	case event.PremiumPurchased:
		p, err := event.DecodePayload[event.PurchasePayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		PremiumPurchases.WithLabelValues(p.ItemID).Inc()

	case event.SubscriptionActivated, event.SubscriptionExpired:
		p, err := event.DecodePayload[event.SubscriptionPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		action := ActionActivated
		if evt.Type == event.SubscriptionExpired {
			action = ActionExpired
		}
		SubscriptionChanges.WithLabelValues(p.Tier, action).Inc()

	case event.QuestClaimed:
		p, err := event.DecodePayload[event.QuestPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		QuestClaims.WithLabelValues(p.Kind).Inc()
		recordResources(p.Reward, string(event.QuestClaimed))

	case event.ReferralApplied:
		ReferralRewards.Inc()

	case event.CatalogDrift:
		p, err := event.DecodePayload[event.CatalogDriftPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		CatalogDrift.Add(float64(len(p.CreatureIDs)))
	}
	return nil
}

func recordResources(b domain.ResourceBundle, source string) {
	for _, res := range domain.ResourceOrder {
		if v := b.Get(res); v > 0 {
			ResourcesEarned.WithLabelValues(res, source).Add(float64(v))
		}
	}
}
