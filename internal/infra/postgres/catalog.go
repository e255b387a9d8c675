package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"fanzone-service/internal/domain"
)

// Catalog loads prize and card content stored as JSONB rows.
type Catalog struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

func (c *Catalog) ListPrizes(ctx context.Context) ([]domain.Prize, error) {
	rows, err := c.pool.Query(ctx, `SELECT data FROM prizes`)
	if err != nil {
		return nil, fmt.Errorf("list prizes: %w", err)
	}
	defer rows.Close()

	var prizes []domain.Prize
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan prize: %w", err)
		}
		var prize domain.Prize
		if err := json.Unmarshal(raw, &prize); err != nil {
			return nil, fmt.Errorf("unmarshal prize: %w", err)
		}
		prizes = append(prizes, prize)
	}
	return prizes, rows.Err()
}

func (c *Catalog) ListCards(ctx context.Context) ([]domain.Card, error) {
	rows, err := c.pool.Query(ctx, `SELECT data FROM cards`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		var card domain.Card
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, fmt.Errorf("unmarshal card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}
