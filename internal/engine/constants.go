package engine

// Progression curve
const (
	XPPerMergeLevel = 10
	xpBase          = 100.0
	xpGrowth        = 1.4
)

// Purchase result messages
const (
	MsgCreatureAdded  = "Creature added!"
	MsgBoosterApplied = "Booster applied!"
)
