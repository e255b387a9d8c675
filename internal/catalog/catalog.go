// Package catalog derives redemption and unlock views from a fan's point
// total. Content (prizes, cards) is owned by the store; only the rules live
// here.
package catalog

import (
	"sort"

	"fanzone-service/internal/domain"
)

// PrizeEligibility reports, for every prize, whether the balance covers it and
// how many points are missing otherwise. Prizes are ordered cheapest first.
func PrizeEligibility(prizes []domain.Prize, points int) []domain.PrizeEligibility {
	out := make([]domain.PrizeEligibility, 0, len(prizes))
	for _, prize := range prizes {
		missing := prize.RequiredPoints - points
		if missing < 0 {
			missing = 0
		}
		out = append(out, domain.PrizeEligibility{
			Prize:         prize,
			Redeemable:    points >= prize.RequiredPoints,
			PointsMissing: missing,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Prize.RequiredPoints != out[j].Prize.RequiredPoints {
			return out[i].Prize.RequiredPoints < out[j].Prize.RequiredPoints
		}
		return out[i].Prize.Name < out[j].Prize.Name
	})
	return out
}

// CardAccess reports which collectible cards the point total unlocks.
func CardAccess(cards []domain.Card, points int) []domain.CardAccess {
	out := make([]domain.CardAccess, 0, len(cards))
	for _, card := range cards {
		out = append(out, domain.CardAccess{
			Card:     card,
			Unlocked: points >= card.PointsToUnlock,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Card.PointsToUnlock != out[j].Card.PointsToUnlock {
			return out[i].Card.PointsToUnlock < out[j].Card.PointsToUnlock
		}
		return out[i].Card.Name < out[j].Card.Name
	})
	return out
}

// UnlockedByRarity counts unlocked cards per rarity, for collection progress.
func UnlockedByRarity(access []domain.CardAccess) map[domain.Rarity]int {
	counts := make(map[domain.Rarity]int)
	for _, a := range access {
		if a.Unlocked {
			counts[a.Card.Rarity]++
		}
	}
	return counts
}
