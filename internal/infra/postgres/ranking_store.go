package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"fanzone-service/internal/domain"
)

// RankingStore reads the leaderboard straight off the fans table. The profile
// row already carries the committed point total, so Record has nothing to do;
// it exists so the store satisfies app.RankingStore when Redis is absent.
type RankingStore struct {
	pool *pgxpool.Pool
}

func NewRankingStore(pool *pgxpool.Pool) *RankingStore {
	return &RankingStore{pool: pool}
}

func (s *RankingStore) Record(context.Context, domain.FanProfile) error {
	return nil
}

func (s *RankingStore) Top(ctx context.Context, n int) ([]domain.RankingEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, points, level FROM fans ORDER BY points DESC, name LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("ranking top: %w", err)
	}
	defer rows.Close()

	var entries []domain.RankingEntry
	for rows.Next() {
		var (
			entry domain.RankingEntry
			lvl   string
		)
		if err := rows.Scan(&entry.UserID, &entry.Name, &entry.Points, &lvl); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		entry.Level = domain.Level(lvl)
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
