package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"fanzone-service/internal/domain"
)

const profileColumns = `id, name, email, favorite_mode, points, level, in_sweepstakes, last_quiz_attempt, created_at, updated_at`

// ProfileStore persists fan profiles in the fans table.
type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

func (s *ProfileStore) Fetch(ctx context.Context, id string) (domain.FanProfile, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM fans WHERE id=$1`, id)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FanProfile{}, domain.ErrProfileNotFound
		}
		return domain.FanProfile{}, fmt.Errorf("fetch profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileStore) Create(ctx context.Context, p domain.FanProfile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO fans (id, name, email, favorite_mode, points, level, in_sweepstakes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Email, string(p.FavoriteMode), p.Points, string(p.Level), p.InSweepstakes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Update runs the transition against the current row under FOR UPDATE, so a
// second session of the same fan waits for the first commit and is then scored
// against the fresh snapshot. All fields of the transition commit together;
// a failed write leaves the attempt date (and the day's eligibility) untouched.
func (s *ProfileStore) Update(ctx context.Context, id string, apply func(domain.FanProfile) (domain.FanProfile, error)) (domain.FanProfile, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.FanProfile{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+profileColumns+` FROM fans WHERE id=$1 FOR UPDATE`, id)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FanProfile{}, domain.ErrProfileNotFound
		}
		return domain.FanProfile{}, fmt.Errorf("lock profile: %w", err)
	}

	updated, err := apply(profile)
	if err != nil {
		return domain.FanProfile{}, err
	}

	err = tx.QueryRow(ctx,
		`UPDATE fans SET points=$2, level=$3, in_sweepstakes=$4, last_quiz_attempt=$5, updated_at=now()
		 WHERE id=$1 RETURNING updated_at`,
		id, updated.Points, string(updated.Level), updated.InSweepstakes, updated.LastQuizAttempt,
	).Scan(&updated.UpdatedAt)
	if err != nil {
		return domain.FanProfile{}, fmt.Errorf("write profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.FanProfile{}, fmt.Errorf("commit update: %w", err)
	}
	return updated, nil
}

func (s *ProfileStore) ListEnrolled(ctx context.Context) ([]domain.FanProfile, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+profileColumns+` FROM fans WHERE in_sweepstakes`)
	if err != nil {
		return nil, fmt.Errorf("list enrolled: %w", err)
	}
	defer rows.Close()

	var enrolled []domain.FanProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enrolled: %w", err)
		}
		enrolled = append(enrolled, profile)
	}
	return enrolled, rows.Err()
}

func (s *ProfileStore) ClearSweepstakes(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `UPDATE fans SET in_sweepstakes=false, updated_at=now() WHERE in_sweepstakes`)
	if err != nil {
		return fmt.Errorf("clear sweepstakes: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (domain.FanProfile, error) {
	var (
		p    domain.FanProfile
		mode string
		lvl  string
		last sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Name, &p.Email, &mode, &p.Points, &lvl, &p.InSweepstakes, &last, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.FanProfile{}, err
	}
	p.FavoriteMode = domain.FavoriteMode(mode)
	p.Level = domain.Level(lvl)
	if last.Valid {
		t := last.Time.UTC()
		p.LastQuizAttempt = &t
	}
	return p, nil
}
