package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Clock sources "today" from the database server, the single authoritative
// clock for the daily quiz gate. Client clocks never participate in gating.
type Clock struct {
	pool *pgxpool.Pool
}

func NewClock(pool *pgxpool.Pool) *Clock {
	return &Clock{pool: pool}
}

func (c *Clock) Today(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := c.pool.QueryRow(ctx, `SELECT now()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("server clock: %w", err)
	}
	return now.UTC(), nil
}
