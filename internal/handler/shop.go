package handler

import (
	"net/http"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/player"
)

const opBuy = "buy"

// ShopItemView is a shop item as listed to clients
type ShopItemView struct {
	ID             string                 `json:"id"`
	Category       string                 `json:"category"`
	Cost           *domain.ResourceBundle `json:"cost,omitempty"`
	CostStars      int64                  `json:"costStars,omitempty"`
	CreatureFamily string                 `json:"creatureType,omitempty"`
	CreatureLevel  int                    `json:"creatureLevel,omitempty"`
	Effect         string                 `json:"effect,omitempty"`
	Slots          int                    `json:"slots,omitempty"`
}

// SubscriptionView is a subscription tier as listed to clients
type SubscriptionView struct {
	Tier           string  `json:"tier"`
	Multiplier     float64 `json:"multiplier"`
	DailyCreatures int     `json:"dailyCreatures"`
	ExtraSlots     int     `json:"extraSlots"`
	NoAds          bool    `json:"noAds"`
	PriceStars     int64   `json:"priceStars"`
}

// ShopResponse lists everything purchasable
type ShopResponse struct {
	Items         []ShopItemView     `json:"items"`
	Subscriptions []SubscriptionView `json:"subscriptions"`
}

// BuyRequest buys a soft-currency shop item
type BuyRequest struct {
	ItemID string `json:"itemId" validate:"required,catalogid"`
}

// HandleGetShopItems lists shop items and subscription tiers
// @Summary List shop items
// @Tags shop
// @Produce json
// @Success 200 {object} ShopResponse
// @Router /api/v1/shop/items [get]
func HandleGetShopItems(cat *catalog.Catalog) http.HandlerFunc {
	resp := ShopResponse{}
	for _, item := range cat.ShopItems() {
		view := ShopItemView{
			ID:             item.ID,
			Category:       item.Category,
			CostStars:      item.CostStars,
			CreatureFamily: item.CreatureFamily,
			CreatureLevel:  item.CreatureLevel,
			Effect:         item.Effect,
			Slots:          item.Slots,
		}
		if !item.IsPremium() {
			cost := item.Cost
			view.Cost = &cost
		}
		resp.Items = append(resp.Items, view)
	}
	for _, s := range cat.Subscriptions() {
		resp.Subscriptions = append(resp.Subscriptions, SubscriptionView(s))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleBuy buys a soft-currency item
// @Summary Buy shop item
// @Tags shop
// @Accept json
// @Produce json
// @Param request body BuyRequest true "Item id"
// @Success 200 {object} player.BuyOutcome
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/shop/buy [post]
func HandleBuy(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _, ok := requirePlayer(w, r)
		if !ok {
			return
		}

		var req BuyRequest
		if err := DecodeAndValidateRequest(r, w, &req, opBuy); err != nil {
			return
		}

		out, err := svc.Buy(r.Context(), playerID, req.ItemID)
		if err != nil {
			respondServiceError(w, r, opBuy, err)
			return
		}

		respondJSON(w, http.StatusOK, out)
	}
}
