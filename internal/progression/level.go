// Package progression holds the pure rules governing how a fan's point balance
// evolves: tier classification, point accrual, the daily quiz gate, and
// sweepstakes enrollment. Nothing here performs I/O; callers own persistence.
package progression

import "fanzone-service/internal/domain"

// Tier thresholds. Lower bounds are inclusive; ranges are contiguous from zero.
const (
	VeteranThreshold   = 100
	LegendaryThreshold = 300
)

// LevelFromPoints maps a point total to its tier label. Negative totals are
// treated as zero so a corrupt balance can never produce an unknown tier.
func LevelFromPoints(points int) domain.Level {
	switch {
	case points >= LegendaryThreshold:
		return domain.LevelLegendary
	case points >= VeteranThreshold:
		return domain.LevelVeteran
	default:
		return domain.LevelBeginner
	}
}

// LevelRank orders tiers for comparisons (promotion detection, monotonicity).
func LevelRank(level domain.Level) int {
	switch level {
	case domain.LevelLegendary:
		return 2
	case domain.LevelVeteran:
		return 1
	default:
		return 0
	}
}
