package engine

import "math"

// XPRequiredFor returns the experience needed to reach level from level-1,
// 100 x 1.4^(level-1) truncated to an integer.
func XPRequiredFor(level int) int64 {
	return int64(xpBase * math.Pow(xpGrowth, float64(level-1)))
}

// normalizeLevel rolls surplus experience into level-ups until it is below the next threshold
func normalizeLevel(level int, xp int64) (int, int64) {
	for xp >= XPRequiredFor(level+1) {
		xp -= XPRequiredFor(level + 1)
		level++
	}
	return level, xp
}
