package engine

import (
	"fmt"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// Buy purchases a soft-currency shop item.
// Items priced in Stars are rejected with ErrWrongPaymentChannel.
func (e *Engine) Buy(doc *domain.GameDocument, itemID string, now time.Time) (*domain.GameDocument, BuyResult, error) {
	item, ok := e.catalog.ShopItem(itemID)
	if !ok {
		return nil, BuyResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownItem, itemID)
	}
	if item.IsPremium() {
		return nil, BuyResult{}, fmt.Errorf("%w: %s", domain.ErrWrongPaymentChannel, itemID)
	}
	if short, lacking := doc.Resources.Shortfall(item.Cost); lacking {
		return nil, BuyResult{}, &domain.InsufficientResourcesError{
			Resource: short,
			Have:     doc.Resources.Get(short),
			Need:     item.Cost.Get(short),
		}
	}

	switch item.Category {
	case domain.CategoryCreature:
		out := doc.Clone()
		id, err := e.PlaceNewCreature(out, item.CreatureFamily, item.CreatureLevel, now)
		if err != nil {
			return nil, BuyResult{}, err
		}
		out.Resources = out.Resources.Sub(item.Cost)
		return out, BuyResult{NewCreatureID: id, Message: MsgCreatureAdded}, nil

	case domain.CategoryBooster:
		out := doc.Clone()
		out.Resources = out.Resources.Sub(item.Cost)
		return out, BuyResult{Message: MsgBoosterApplied}, nil

	default:
		return nil, BuyResult{}, fmt.Errorf("%w: %s has category %s", domain.ErrUnknownItem, itemID, item.Category)
	}
}
