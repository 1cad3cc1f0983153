package catalog

import (
	"sync"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

type res = domain.ResourceBundle

var defaultFamilies = []Family{
	{ID: domain.FamilyFairyCat, Levels: []CreatureDefinition{
		{Level: 1, NameEN: "Fluffy Kit", NameRU: "Пушистый Котёнок", Production: res{Leaves: 1}, IntervalSeconds: 30},
		{Level: 2, NameEN: "Star Kitten", NameRU: "Звёздный Котик", Production: res{Leaves: 3}, IntervalSeconds: 30},
		{Level: 3, NameEN: "Cosmic Cat", NameRU: "Космический Кот", Production: res{Leaves: 8, Dew: 1}, IntervalSeconds: 30},
		{Level: 4, NameEN: "Celestial Feline", NameRU: "Небесная Кошка", Production: res{Leaves: 20, Dew: 3}, IntervalSeconds: 30},
		{Level: 5, NameEN: "Divine Whisker", NameRU: "Божественный Мурр", Production: res{Leaves: 50, Dew: 8, Berries: 1}, IntervalSeconds: 30},
	}},
	{ID: domain.FamilyBabyDragon, Levels: []CreatureDefinition{
		{Level: 1, NameEN: "Ember Hatchling", NameRU: "Огненный Дракончик", Production: res{Dew: 1}, IntervalSeconds: 40, UnlockCost: res{Leaves: 30}},
		{Level: 2, NameEN: "Cuddle Drake", NameRU: "Обнимашка-Дракон", Production: res{Dew: 3}, IntervalSeconds: 40},
		{Level: 3, NameEN: "Azure Dragon", NameRU: "Лазурный Дракон", Production: res{Leaves: 2, Dew: 7}, IntervalSeconds: 40},
		{Level: 4, NameEN: "Storm Wyrm", NameRU: "Грозовой Вирм", Production: res{Leaves: 5, Dew: 18}, IntervalSeconds: 40},
		{Level: 5, NameEN: "Eternal Dragon", NameRU: "Вечный Дракон", Production: res{Leaves: 10, Dew: 45, Berries: 2}, IntervalSeconds: 40},
	}},
	{ID: domain.FamilyMiniUnicorn, Levels: []CreatureDefinition{
		{Level: 1, NameEN: "Sparkle Foal", NameRU: "Искристый Жеребёнок", Production: res{Leaves: 2}, IntervalSeconds: 35, UnlockCost: res{Leaves: 20}},
		{Level: 2, NameEN: "Rainbow Pony", NameRU: "Радужный Пони", Production: res{Leaves: 5, Dew: 1}, IntervalSeconds: 35},
		{Level: 3, NameEN: "Crystal Unicorn", NameRU: "Хрустальный Единорог", Production: res{Leaves: 12, Dew: 2}, IntervalSeconds: 35},
		{Level: 4, NameEN: "Star Unicorn", NameRU: "Звёздный Единорог", Production: res{Leaves: 30, Dew: 5}, IntervalSeconds: 35},
		{Level: 5, NameEN: "Prismatic Alicorn", NameRU: "Призматический Аликорн", Production: res{Leaves: 70, Dew: 12, Berries: 2}, IntervalSeconds: 35},
	}},
	{ID: domain.FamilyForestFox, Levels: []CreatureDefinition{
		{Level: 1, NameEN: "Dewdrop Fox", NameRU: "Росяная Лисичка", Production: res{Leaves: 1, Dew: 1}, IntervalSeconds: 45, UnlockCost: res{Leaves: 50, Dew: 5}},
		{Level: 2, NameEN: "Glow Fox", NameRU: "Светящаяся Лиса", Production: res{Leaves: 3, Dew: 3}, IntervalSeconds: 45},
		{Level: 3, NameEN: "Aurora Fox", NameRU: "Полярная Лиса", Production: res{Leaves: 7, Dew: 7}, IntervalSeconds: 45},
		{Level: 4, NameEN: "Celestial Vixen", NameRU: "Небесная Лисица", Production: res{Leaves: 15, Dew: 15, Berries: 1}, IntervalSeconds: 45},
		{Level: 5, NameEN: "Divine Fox Spirit", NameRU: "Дух Лисы", Production: res{Leaves: 35, Dew: 35, Berries: 3}, IntervalSeconds: 45},
	}},
	{ID: domain.FamilyMushroomSprite, Levels: []CreatureDefinition{
		{Level: 1, NameEN: "Spore Sprite", NameRU: "Споровый Эльф", Production: res{Leaves: 3}, IntervalSeconds: 25, UnlockCost: res{Leaves: 10}},
		{Level: 2, NameEN: "Bloom Sprite", NameRU: "Цветочный Эльф", Production: res{Leaves: 8}, IntervalSeconds: 25},
		{Level: 3, NameEN: "Forest Guardian", NameRU: "Лесной Страж", Production: res{Leaves: 20, Dew: 2}, IntervalSeconds: 25},
		{Level: 4, NameEN: "Ancient Keeper", NameRU: "Древний Хранитель", Production: res{Leaves: 50, Dew: 5}, IntervalSeconds: 25},
		{Level: 5, NameEN: "Elder Spirit", NameRU: "Дух Старейшины", Production: res{Leaves: 120, Dew: 10, Berries: 2}, IntervalSeconds: 25},
	}},
}

var defaultShopItems = []ShopItem{
	{ID: "buy_fairy_cat_1", Category: domain.CategoryCreature, CreatureFamily: domain.FamilyFairyCat, CreatureLevel: 1},
	{ID: "buy_mushroom_1", Category: domain.CategoryCreature, Cost: res{Leaves: 10}, CreatureFamily: domain.FamilyMushroomSprite, CreatureLevel: 1},
	{ID: "buy_unicorn_1", Category: domain.CategoryCreature, Cost: res{Leaves: 20}, CreatureFamily: domain.FamilyMiniUnicorn, CreatureLevel: 1},
	{ID: "buy_dragon_1", Category: domain.CategoryCreature, Cost: res{Leaves: 30}, CreatureFamily: domain.FamilyBabyDragon, CreatureLevel: 1},
	{ID: "buy_fox_1", Category: domain.CategoryCreature, Cost: res{Leaves: 50, Dew: 5}, CreatureFamily: domain.FamilyForestFox, CreatureLevel: 1},
	{ID: "boost_2x_60", Category: domain.CategoryBooster, Cost: res{Dew: 50}, Effect: "2x_production_60min"},
	{ID: "extra_slots_5", Category: domain.CategorySlot, CostStars: 50, Slots: 5},
	{ID: domain.ItemNoAds, Category: domain.CategoryCosmetic, CostStars: 75},
	{ID: "cosmetic_pack_moon", Category: domain.CategoryCosmetic, CostStars: 100},
}

var defaultSubscriptions = []SubscriptionBenefit{
	{Tier: domain.SubscriptionSprout, Multiplier: 1.2, DailyCreatures: 1, PriceStars: 150},
	{Tier: domain.SubscriptionGrove, Multiplier: 1.5, DailyCreatures: 2, ExtraSlots: 5, PriceStars: 300},
	{Tier: domain.SubscriptionEnchanted, Multiplier: 2.0, DailyCreatures: 5, ExtraSlots: 10, NoAds: true, PriceStars: 500},
}

var defaultBuildings = []BuildingDefinition{
	{ID: BuildingCozyCottage, Multipliers: map[string]float64{domain.ResourceLeaves: 1.10}},
	{ID: BuildingCrystalTower, Multipliers: map[string]float64{domain.ResourceDew: 1.15}},
	{ID: BuildingMushroomHut, Bonus: res{Leaves: 1, Dew: 1}},
}

var defaultQuestPool = []domain.QuestTemplate{
	{Type: domain.QuestTypeMerge, TargetAmount: 3, RewardLeaves: 50, RewardDew: 5},
	{Type: domain.QuestTypeMerge, TargetAmount: 5, RewardLeaves: 80, RewardDew: 8},
	{Type: domain.QuestTypeMerge, TargetAmount: 10, RewardLeaves: 150, RewardDew: 15, RewardBerries: 1},
	{Type: domain.QuestTypeCollect, TargetAmount: 100, RewardLeaves: 100, RewardDew: 10, TargetResource: domain.ResourceLeaves},
	{Type: domain.QuestTypeCollect, TargetAmount: 50, RewardDew: 50, TargetResource: domain.ResourceDew},
	{Type: domain.QuestTypeCollectType, TargetAmount: 30, RewardLeaves: 120, RewardDew: 12, TargetResource: domain.ResourceLeaves, TargetFamily: domain.FamilyFairyCat},
	{Type: domain.QuestTypeCollectType, TargetAmount: 20, RewardDew: 30, TargetResource: domain.ResourceDew, TargetFamily: domain.FamilyBabyDragon},
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the compiled-in game catalog
func Default() *Catalog {
	defaultOnce.Do(func() {
		families := make([]Family, len(defaultFamilies))
		for i, f := range defaultFamilies {
			levels := make([]CreatureDefinition, len(f.Levels))
			for j, lvl := range f.Levels {
				lvl.Family = f.ID
				levels[j] = lvl
			}
			families[i] = Family{ID: f.ID, Levels: levels}
		}

		c, err := New(families, defaultShopItems, defaultSubscriptions, defaultBuildings, defaultQuestPool)
		if err != nil {
			panic("catalog: invalid built-in tables: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
