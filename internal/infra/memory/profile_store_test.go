package memory

import (
	"context"
	"testing"

	"fanzone-service/internal/domain"
)

func TestProfileStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore()

	profile := domain.FanProfile{ID: "f1", Name: "Alice", Email: "alice@example.com", Level: domain.LevelBeginner}
	if err := store.Create(ctx, profile); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := domain.FanProfile{ID: "f2", Email: "alice@example.com"}
	if err := store.Create(ctx, dup); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := store.Fetch(ctx, "missing"); err != domain.ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	updated, err := store.Update(ctx, "f1", func(p domain.FanProfile) (domain.FanProfile, error) {
		p.Points = 100
		p.Level = domain.LevelVeteran
		p.InSweepstakes = true
		return p, nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Points != 100 || !updated.InSweepstakes {
		t.Fatalf("unexpected snapshot: %+v", updated)
	}

	enrolled, err := store.ListEnrolled(ctx)
	if err != nil || len(enrolled) != 1 || enrolled[0].ID != "f1" {
		t.Fatalf("expected f1 enrolled, got %v (%v)", enrolled, err)
	}

	if err := store.ClearSweepstakes(ctx); err != nil {
		t.Fatalf("clear sweepstakes: %v", err)
	}
	enrolled, _ = store.ListEnrolled(ctx)
	if len(enrolled) != 0 {
		t.Fatalf("expected no enrolled fans after reset, got %v", enrolled)
	}
}

func TestProfileStoreUpdateErrorDiscardsChange(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore()
	_ = store.Create(ctx, domain.FanProfile{ID: "f1", Email: "a@example.com", Points: 50})

	_, err := store.Update(ctx, "f1", func(p domain.FanProfile) (domain.FanProfile, error) {
		p.Points = 9999
		return p, domain.ErrQuizAlreadyTaken
	})
	if err != domain.ErrQuizAlreadyTaken {
		t.Fatalf("expected transition error, got %v", err)
	}

	current, _ := store.Fetch(ctx, "f1")
	if current.Points != 50 {
		t.Fatalf("rejected transition leaked: %+v", current)
	}
}
