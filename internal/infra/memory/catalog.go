package memory

import (
	"context"

	"fanzone-service/internal/domain"
)

// StaticCatalog serves prize and card content from fixed slices.
type StaticCatalog struct {
	prizes []domain.Prize
	cards  []domain.Card
}

func NewStaticCatalog(prizes []domain.Prize, cards []domain.Card) *StaticCatalog {
	return &StaticCatalog{prizes: prizes, cards: cards}
}

func (c *StaticCatalog) ListPrizes(_ context.Context) ([]domain.Prize, error) {
	return append([]domain.Prize(nil), c.prizes...), nil
}

func (c *StaticCatalog) ListCards(_ context.Context) ([]domain.Card, error) {
	return append([]domain.Card(nil), c.cards...), nil
}
