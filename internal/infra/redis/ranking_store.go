package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"fanzone-service/internal/domain"
)

const (
	rankingKey     = "fans:ranking"
	rankingMetaKey = "fans:ranking:meta"
)

// RankingStore mirrors fan point totals into a Redis sorted set for cheap
// leaderboard reads. Display attributes live in a companion hash keyed by fan
// ID. The fans table remains the source of truth; a stale mirror heals on the
// next recorded completion.
type RankingStore struct {
	client *redis.Client
}

func NewRankingStore(client *redis.Client) *RankingStore {
	return &RankingStore{client: client}
}

type rankingMeta struct {
	Name  string       `json:"name"`
	Level domain.Level `json:"level"`
}

func (s *RankingStore) Record(ctx context.Context, profile domain.FanProfile) error {
	meta, err := json.Marshal(rankingMeta{Name: profile.Name, Level: profile.Level})
	if err != nil {
		return fmt.Errorf("marshal ranking meta: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.ZAdd(ctx, rankingKey, redis.Z{Score: float64(profile.Points), Member: profile.ID})
	pipe.HSet(ctx, rankingMetaKey, profile.ID, meta)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record ranking: %w", err)
	}
	return nil
}

func (s *RankingStore) Top(ctx context.Context, n int) ([]domain.RankingEntry, error) {
	scored, err := s.client.ZRevRangeWithScores(ctx, rankingKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("ranking range: %w", err)
	}
	if len(scored) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(scored))
	for _, z := range scored {
		ids = append(ids, z.Member.(string))
	}
	metas, err := s.client.HMGet(ctx, rankingMetaKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("ranking meta: %w", err)
	}

	entries := make([]domain.RankingEntry, 0, len(scored))
	for i, z := range scored {
		entry := domain.RankingEntry{
			Rank:   i + 1,
			UserID: ids[i],
			Points: int(z.Score),
		}
		if raw, ok := metas[i].(string); ok {
			var meta rankingMeta
			if err := json.Unmarshal([]byte(raw), &meta); err == nil {
				entry.Name = meta.Name
				entry.Level = meta.Level
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
