package naming

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fallbackNames holds five names per family and level
var fallbackNames = map[string]map[int][]string{
	"fairy_cat": {
		1: {"Mochi", "Pixie", "Starling", "Fluffpaw", "Dewwhisker"},
		2: {"Sparklepurr", "Moonbeam", "Glimmerkit", "Twinkle", "Stardust"},
		3: {"Astralis", "Lumikki", "Celestine", "Nebulina", "Cosmica"},
		4: {"Seraphim", "Aurorawhisker", "Ethereal", "Solatrix", "Luminary"},
		5: {"Divinus", "Omnipurr", "Starweaver", "Eternawhisk", "Prismatica"},
	},
	"baby_dragon": {
		1: {"Cindersnap", "Emberpuff", "Smoky", "Flicker", "Ashling"},
		2: {"Cuddleflame", "Warmwing", "Hugscale", "Snugdrake", "Cozyfire"},
		3: {"Sapphirewing", "Azurion", "Crystalbreath", "Lapis", "Cobaltus"},
		4: {"Thunderclaw", "Stormrider", "Voltscale", "Tempestus", "Galewing"},
		5: {"Aeternicus", "Celestidrak", "Omnifire", "Eternalis", "Primordius"},
	},
	"mini_unicorn": {
		1: {"Twinkletrot", "Stardancer", "Glimmerhoof", "Sparkle", "Rosydust"},
		2: {"Rainbowmane", "Prismhoof", "Chromagleam", "Iridessa", "Spectria"},
		3: {"Crystallia", "Diamondhorn", "Gemspark", "Luminara", "Brilliance"},
		4: {"Solarhorn", "Astralis", "Cosmicshine", "Stellaris", "Zenith"},
		5: {"Prismachron", "Eternicorn", "Alicoria", "Omnilux", "Prismatica"},
	},
	"forest_fox": {
		1: {"Dewdancer", "Morningmist", "Fernpaw", "Leafwhisk", "Dewberry"},
		2: {"Glowpelt", "Shimmersnout", "Lumifox", "Radiara", "Lightfoot"},
		3: {"Borealis", "Polarstream", "Auroraflame", "Northglow", "Solstice"},
		4: {"Starlance", "Celestipaw", "Aetherix", "Novafox", "Lunarkin"},
		5: {"Spiritweave", "Divinum", "Omnifox", "Astralkin", "Eternapaw"},
	},
	"mushroom_sprite": {
		1: {"Puffcap", "Sporeling", "Mossy", "Fungina", "Bloomspore"},
		2: {"Blossomcap", "Petalshroom", "Florasprite", "Dewbloom", "Lilyspore"},
		3: {"Sylvanus", "Verdantkeeper", "Forestsoul", "Mossguard", "Terralis"},
		4: {"Eldergrove", "Ancientcap", "Timelessoak", "Primeval", "Ageless"},
		5: {"Ethergrove", "Primordialis", "Spiritmoss", "Eternawood", "Omniverde"},
	},
}

// FallbackName picks a predefined name using pick(n) ∈ [0, n). Families or
// levels without a list get "Mystery <Family> Lv<n>".
func FallbackName(family string, level int, pick func(n int) int) string {
	names := fallbackNames[family][level]
	if len(names) == 0 {
		return MysteryName(family, level)
	}
	return names[pick(len(names))]
}

// MysteryName formats the placeholder for creatures without a name list
func MysteryName(family string, level int) string {
	return fmt.Sprintf("Mystery %s Lv%d", cases.Title(language.English).String(strings.ReplaceAll(family, "_", " ")), level)
}

// describeFamily turns "baby_dragon" into "baby dragon" for prompts
func describeFamily(family string) string {
	return strings.ReplaceAll(family, "_", " ")
}

func levelAdjective(level int) string {
	idx := min(max(level-1, 0), len(levelAdjectives)-1)
	return levelAdjectives[idx]
}
