package memory

import (
	"context"
	"sort"
	"sync"

	"fanzone-service/internal/domain"
)

// RankingStore keeps the leaderboard view in memory. Entries survive only for
// the process lifetime; the profile store remains the source of truth.
type RankingStore struct {
	mu      sync.RWMutex
	entries map[string]domain.RankingEntry
}

func NewRankingStore() *RankingStore {
	return &RankingStore{entries: make(map[string]domain.RankingEntry)}
}

func (s *RankingStore) Record(_ context.Context, profile domain.FanProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[profile.ID] = domain.RankingEntry{
		UserID: profile.ID,
		Name:   profile.Name,
		Points: profile.Points,
		Level:  profile.Level,
	}
	return nil
}

func (s *RankingStore) Top(_ context.Context, n int) ([]domain.RankingEntry, error) {
	s.mu.RLock()
	entries := make([]domain.RankingEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
