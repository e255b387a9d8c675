package memory

import (
	"context"
	"sync"
	"time"

	"fanzone-service/internal/domain"
)

// ProfileStore is an in-memory implementation of app.ProfileStore, used for
// tests and for running without Postgres. The single mutex gives Update the
// same read-modify-write exclusivity the Postgres row lock provides.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]domain.FanProfile
	emails   map[string]string
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.FanProfile),
		emails:   make(map[string]string),
	}
}

func (s *ProfileStore) Fetch(_ context.Context, id string) (domain.FanProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[id]
	if !ok {
		return domain.FanProfile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileStore) Create(_ context.Context, profile domain.FanProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[profile.Email]; taken {
		return domain.ErrEmailTaken
	}
	s.profiles[profile.ID] = profile
	s.emails[profile.Email] = profile.ID
	return nil
}

func (s *ProfileStore) Update(_ context.Context, id string, apply func(domain.FanProfile) (domain.FanProfile, error)) (domain.FanProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[id]
	if !ok {
		return domain.FanProfile{}, domain.ErrProfileNotFound
	}
	updated, err := apply(profile)
	if err != nil {
		return domain.FanProfile{}, err
	}
	updated.UpdatedAt = time.Now().UTC()
	s.profiles[id] = updated
	return updated, nil
}

func (s *ProfileStore) ListEnrolled(_ context.Context) ([]domain.FanProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var enrolled []domain.FanProfile
	for _, profile := range s.profiles {
		if profile.InSweepstakes {
			enrolled = append(enrolled, profile)
		}
	}
	return enrolled, nil
}

func (s *ProfileStore) ClearSweepstakes(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, profile := range s.profiles {
		profile.InSweepstakes = false
		s.profiles[id] = profile
	}
	return nil
}
