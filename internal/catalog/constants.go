package catalog

// Building definition ids
const (
	BuildingCozyCottage  = "cozy_cottage"
	BuildingCrystalTower = "crystal_tower"
	BuildingMushroomHut  = "mushroom_hut"
)

// Catalog construction error formats
const (
	ErrMsgDuplicateFmt       = "duplicate %s id %q"
	ErrMsgInvalidIntervalFmt = "creature %s L%d has a non-positive interval"
)
