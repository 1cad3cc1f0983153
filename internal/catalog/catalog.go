// Package catalog holds the static game tables: creature definitions, shop items,
// subscription benefits, building modifiers and quest templates.
// A Catalog is read-only after construction and safe for concurrent use.
package catalog

import (
	"fmt"
	"sort"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// CreatureDefinition describes one (family, level) pair
type CreatureDefinition struct {
	Family          string
	Level           int
	NameEN          string
	NameRU          string
	Production      domain.ResourceBundle
	IntervalSeconds int64
	UnlockCost      domain.ResourceBundle
}

// Name returns the localized display name
func (d CreatureDefinition) Name(lang string) string {
	if isRussian(lang) && d.NameRU != "" {
		return d.NameRU
	}
	return d.NameEN
}

// Family groups the level definitions of one species, ordered by level
type Family struct {
	ID     string
	Levels []CreatureDefinition
}

// ShopItem is a purchasable item. Exactly one of Cost / CostStars is meaningful.
type ShopItem struct {
	ID             string
	Category       string
	Cost           domain.ResourceBundle
	CostStars      int64
	CreatureFamily string
	CreatureLevel  int
	Effect         string
	Slots          int
}

// IsPremium reports whether the item is paid in Stars
func (i ShopItem) IsPremium() bool {
	return i.CostStars > 0
}

// SubscriptionBenefit is what a paid tier grants
type SubscriptionBenefit struct {
	Tier           string
	Multiplier     float64
	DailyCreatures int
	ExtraSlots     int
	NoAds          bool
	PriceStars     int64
}

// BuildingDefinition is a sequential production modifier applied at collect time.
// Multipliers are applied first (truncating), then Bonus is added.
type BuildingDefinition struct {
	ID          string
	Multipliers map[string]float64
	Bonus       domain.ResourceBundle
}

// Catalog is the lookup facade over the static tables
type Catalog struct {
	families      map[string]Family
	familyOrder   []string
	shopItems     map[string]ShopItem
	shopOrder     []string
	subscriptions map[string]SubscriptionBenefit
	subOrder      []string
	buildings     map[string]BuildingDefinition
	questPool     []domain.QuestTemplate
}

// New builds a catalog from explicit tables. Tests use it to pin small fixtures.
func New(families []Family, items []ShopItem, subs []SubscriptionBenefit, buildings []BuildingDefinition, quests []domain.QuestTemplate) (*Catalog, error) {
	c := &Catalog{
		families:      make(map[string]Family, len(families)),
		shopItems:     make(map[string]ShopItem, len(items)),
		subscriptions: make(map[string]SubscriptionBenefit, len(subs)),
		buildings:     make(map[string]BuildingDefinition, len(buildings)),
		questPool:     append([]domain.QuestTemplate(nil), quests...),
	}

	for _, f := range families {
		if _, dup := c.families[f.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateFmt, "family", f.ID)
		}
		levels := append([]CreatureDefinition(nil), f.Levels...)
		sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })
		for _, lvl := range levels {
			if lvl.IntervalSeconds <= 0 {
				return nil, fmt.Errorf(ErrMsgInvalidIntervalFmt, f.ID, lvl.Level)
			}
		}
		c.families[f.ID] = Family{ID: f.ID, Levels: levels}
		c.familyOrder = append(c.familyOrder, f.ID)
	}

	for _, item := range items {
		if _, dup := c.shopItems[item.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateFmt, "shop item", item.ID)
		}
		if item.Category == domain.CategoryCreature {
			if _, err := c.Creature(item.CreatureFamily, item.CreatureLevel); err != nil {
				return nil, fmt.Errorf("shop item %s: %w", item.ID, err)
			}
		}
		c.shopItems[item.ID] = item
		c.shopOrder = append(c.shopOrder, item.ID)
	}

	for _, s := range subs {
		if _, dup := c.subscriptions[s.Tier]; !dup {
			c.subOrder = append(c.subOrder, s.Tier)
		}
		c.subscriptions[s.Tier] = s
	}
	for _, b := range buildings {
		c.buildings[b.ID] = b
	}
	return c, nil
}

// Creature looks up a definition; a miss wraps domain.ErrInvalidCreatureType
func (c *Catalog) Creature(family string, level int) (CreatureDefinition, error) {
	f, ok := c.families[family]
	if ok {
		for _, lvl := range f.Levels {
			if lvl.Level == level {
				return lvl, nil
			}
		}
	}
	return CreatureDefinition{}, fmt.Errorf("%w: %s L%d", domain.ErrInvalidCreatureType, family, level)
}

// Families returns all families in declaration order
func (c *Catalog) Families() []Family {
	out := make([]Family, 0, len(c.familyOrder))
	for _, id := range c.familyOrder {
		out = append(out, c.families[id])
	}
	return out
}

// ShopItem looks up an item by id
func (c *Catalog) ShopItem(id string) (ShopItem, bool) {
	item, ok := c.shopItems[id]
	return item, ok
}

// ShopItems returns all items in declaration order
func (c *Catalog) ShopItems() []ShopItem {
	out := make([]ShopItem, 0, len(c.shopOrder))
	for _, id := range c.shopOrder {
		out = append(out, c.shopItems[id])
	}
	return out
}

// Subscription looks up a tier's benefits
func (c *Catalog) Subscription(tier string) (SubscriptionBenefit, bool) {
	s, ok := c.subscriptions[tier]
	return s, ok
}

// Subscriptions returns all tiers in declaration order
func (c *Catalog) Subscriptions() []SubscriptionBenefit {
	out := make([]SubscriptionBenefit, 0, len(c.subOrder))
	for _, tier := range c.subOrder {
		out = append(out, c.subscriptions[tier])
	}
	return out
}

// SubscriptionMultiplier returns the production multiplier, 1.0 for none/unknown
func (c *Catalog) SubscriptionMultiplier(tier string) float64 {
	if s, ok := c.subscriptions[tier]; ok {
		return s.Multiplier
	}
	return 1.0
}

// StarsPrice returns the Stars price of a premium shop item or subscription tier
func (c *Catalog) StarsPrice(id string) (int64, bool) {
	if item, ok := c.shopItems[id]; ok && item.IsPremium() {
		return item.CostStars, true
	}
	if s, ok := c.subscriptions[id]; ok && s.PriceStars > 0 {
		return s.PriceStars, true
	}
	return 0, false
}

// Building looks up a building modifier
func (c *Catalog) Building(defID string) (BuildingDefinition, bool) {
	b, ok := c.buildings[defID]
	return b, ok
}

// QuestTemplates returns a copy of the quest pool
func (c *Catalog) QuestTemplates() []domain.QuestTemplate {
	return append([]domain.QuestTemplate(nil), c.questPool...)
}

func isRussian(lang string) bool {
	return len(lang) >= 2 && (lang[:2] == "ru" || lang[:2] == "RU")
}
