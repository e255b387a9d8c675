package progression

import (
	"testing"

	"fanzone-service/internal/domain"
)

func TestLevelFromPointsBoundaries(t *testing.T) {
	cases := []struct {
		points int
		want   domain.Level
	}{
		{-50, domain.LevelBeginner},
		{0, domain.LevelBeginner},
		{99, domain.LevelBeginner},
		{100, domain.LevelVeteran},
		{299, domain.LevelVeteran},
		{300, domain.LevelLegendary},
		{1000, domain.LevelLegendary},
	}
	for _, tc := range cases {
		if got := LevelFromPoints(tc.points); got != tc.want {
			t.Errorf("LevelFromPoints(%d) = %q, want %q", tc.points, got, tc.want)
		}
	}
}

func TestLevelRankIsMonotonic(t *testing.T) {
	prev := LevelRank(LevelFromPoints(0))
	for points := 1; points <= 400; points++ {
		rank := LevelRank(LevelFromPoints(points))
		if rank < prev {
			t.Fatalf("tier rank decreased at %d points", points)
		}
		prev = rank
	}
}
