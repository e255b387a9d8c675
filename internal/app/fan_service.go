package app

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"fanzone-service/internal/catalog"
	"fanzone-service/internal/domain"
	"fanzone-service/internal/progression"
)

// ProfileStore abstracts how fan profiles are persisted (in-memory, Postgres).
// Update runs the supplied transition against the current snapshot under the
// store's own concurrency control (row lock, map lock), so two sessions of the
// same fan can never both be accepted against a stale snapshot.
type ProfileStore interface {
	Fetch(ctx context.Context, id string) (domain.FanProfile, error)
	Create(ctx context.Context, profile domain.FanProfile) error
	Update(ctx context.Context, id string, apply func(domain.FanProfile) (domain.FanProfile, error)) (domain.FanProfile, error)
	ListEnrolled(ctx context.Context) ([]domain.FanProfile, error)
	ClearSweepstakes(ctx context.Context) error
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// CatalogRepository loads prize and card content.
type CatalogRepository interface {
	ListPrizes(ctx context.Context) ([]domain.Prize, error)
	ListCards(ctx context.Context) ([]domain.Card, error)
}

// Clock supplies the authoritative "today" used by the daily quiz gate. It is
// server-sourced (the database's clock in production) so gating cannot be
// bypassed by adjusting a client clock.
type Clock interface {
	Today(ctx context.Context) (time.Time, error)
}

// RankingStore maintains the points leaderboard view.
type RankingStore interface {
	Record(ctx context.Context, profile domain.FanProfile) error
	Top(ctx context.Context, n int) ([]domain.RankingEntry, error)
}

// Options tune the scoring rules. Zero values fall back to the observed game:
// 25 points per correct answer, sweepstakes entry at 3 correct.
type Options struct {
	PointsPerCorrect     int
	SweepstakesThreshold int
	RankingSize          int
}

func (o Options) withDefaults() Options {
	if o.PointsPerCorrect <= 0 {
		o.PointsPerCorrect = 25
	}
	if o.SweepstakesThreshold <= 0 {
		o.SweepstakesThreshold = progression.DefaultSweepstakesThreshold
	}
	if o.RankingSize <= 0 {
		o.RankingSize = 20
	}
	return o
}

// FanService contains the fan-engagement use cases: registration, the daily
// quiz completion flow, ranking, catalog views, and sweepstakes administration.
type FanService struct {
	profiles ProfileStore
	quizzes  QuizRepository
	content  CatalogRepository
	ranking  RankingStore
	clock    Clock
	feed     *LeaderboardFeed
	opts     Options
}

func NewFanService(profiles ProfileStore, quizzes QuizRepository, content CatalogRepository, ranking RankingStore, clock Clock, feed *LeaderboardFeed, opts Options) *FanService {
	return &FanService{
		profiles: profiles,
		quizzes:  quizzes,
		content:  content,
		ranking:  ranking,
		clock:    clock,
		feed:     feed,
		opts:     opts.withDefaults(),
	}
}

// Register creates a fresh profile: zero points, base tier, not enrolled, no
// quiz attempt on record. The generated UUID is the canonical identifier;
// email is a contact attribute, unique but never used as the lookup key.
func (s *FanService) Register(ctx context.Context, name, email string, mode domain.FavoriteMode) (domain.FanProfile, error) {
	now := time.Now().UTC()
	profile := domain.FanProfile{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		FavoriteMode: mode,
		Points:       0,
		Level:        progression.LevelFromPoints(0),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return domain.FanProfile{}, err
	}
	return profile, nil
}

// Profile returns the current snapshot for a fan.
func (s *FanService) Profile(ctx context.Context, userID string) (domain.FanProfile, error) {
	return s.profiles.Fetch(ctx, userID)
}

// CompleteQuiz processes one finished quiz run as a single atomic sequence:
// gate check, score, apply points, re-derive tier, check the sweepstakes
// threshold, record the attempt date. The whole transition commits together;
// if the store write fails, the computed snapshot is discarded and the day's
// eligibility is untouched. A denied gate surfaces as ErrQuizAlreadyTaken,
// which is an informational outcome and not a fault.
func (s *FanService) CompleteQuiz(ctx context.Context, userID, quizID string, answers []domain.AnswerSubmission) (domain.QuizOutcome, error) {
	today, err := s.clock.Today(ctx)
	if err != nil {
		return domain.QuizOutcome{}, err
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.QuizOutcome{}, err
	}

	correct, awarded, results, err := s.scoreAnswers(quiz, answers)
	if err != nil {
		return domain.QuizOutcome{}, err
	}

	var outcome domain.QuizOutcome
	updated, err := s.profiles.Update(ctx, userID, func(p domain.FanProfile) (domain.FanProfile, error) {
		if !progression.CanAttempt(p.LastQuizAttempt, today) {
			return p, domain.ErrQuizAlreadyTaken
		}

		next, err := progression.ApplyDelta(p, awarded)
		if err != nil {
			return p, err
		}
		next = progression.MaybeEnroll(next, correct, s.opts.SweepstakesThreshold)
		next = progression.RecordAttempt(next, today)

		outcome = domain.QuizOutcome{
			QuizID:             quizID,
			Correct:            correct,
			Total:              len(quiz.Questions),
			PointsAwarded:      awarded,
			TotalPoints:        next.Points,
			PreviousLevel:      p.Level,
			Level:              next.Level,
			LeveledUp:          progression.LevelRank(next.Level) > progression.LevelRank(p.Level),
			EnteredSweepstakes: next.InSweepstakes && !p.InSweepstakes,
			AttemptDate:        today,
			Results:            results,
		}
		return next, nil
	})
	if err != nil {
		return domain.QuizOutcome{}, err
	}

	s.publishRanking(ctx, updated)
	return outcome, nil
}

// Leaderboard returns the top fans by points.
func (s *FanService) Leaderboard(ctx context.Context, limit int) (domain.Leaderboard, error) {
	if limit <= 0 || limit > s.opts.RankingSize {
		limit = s.opts.RankingSize
	}
	entries, err := s.ranking.Top(ctx, limit)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	return domain.Leaderboard{Entries: entries, UpdatedAt: time.Now().UTC()}, nil
}

// SubscribeLeaderboard streams ranking updates pushed after accepted quiz
// completions. The caller must invoke cancel to avoid leaks.
func (s *FanService) SubscribeLeaderboard(ctx context.Context) (<-chan domain.Leaderboard, func(), error) {
	initial, err := s.Leaderboard(ctx, 0)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.feed.Subscribe(initial)
	return ch, cancel, nil
}

// Prizes returns the catalog annotated with the fan's redemption eligibility.
func (s *FanService) Prizes(ctx context.Context, userID string) ([]domain.PrizeEligibility, error) {
	profile, err := s.profiles.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	prizes, err := s.content.ListPrizes(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.PrizeEligibility(prizes, profile.Points), nil
}

// Cards returns the collection annotated with the fan's unlock state.
func (s *FanService) Cards(ctx context.Context, userID string) ([]domain.CardAccess, error) {
	profile, err := s.profiles.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	cards, err := s.content.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.CardAccess(cards, profile.Points), nil
}

// SetSweepstakes is the administrative override for a single fan's enrollment
// flag. The quiz flow never calls it.
func (s *FanService) SetSweepstakes(ctx context.Context, userID string, enrolled bool) (domain.FanProfile, error) {
	return s.profiles.Update(ctx, userID, func(p domain.FanProfile) (domain.FanProfile, error) {
		p.InSweepstakes = enrolled
		return p, nil
	})
}

// ResetSweepstakes clears every enrollment flag, opening a new period.
func (s *FanService) ResetSweepstakes(ctx context.Context) error {
	return s.profiles.ClearSweepstakes(ctx)
}

// DrawSweepstakes picks a uniformly random enrolled fan as the period's winner.
func (s *FanService) DrawSweepstakes(ctx context.Context) (domain.FanProfile, error) {
	entrants, err := s.profiles.ListEnrolled(ctx)
	if err != nil {
		return domain.FanProfile{}, err
	}
	if len(entrants) == 0 {
		return domain.FanProfile{}, domain.ErrNoEntrants
	}
	return entrants[rand.Intn(len(entrants))], nil
}

// scoreAnswers validates the submission against quiz content and aggregates
// the correctness count and the points earned.
func (s *FanService) scoreAnswers(quiz domain.Quiz, answers []domain.AnswerSubmission) (int, int, []domain.AnswerResult, error) {
	questions := make(map[string]*domain.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questions[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	seen := make(map[string]struct{}, len(answers))
	results := make([]domain.AnswerResult, 0, len(answers))
	correct, awarded := 0, 0
	for _, answer := range answers {
		if _, dup := seen[answer.QuestionID]; dup {
			return 0, 0, nil, domain.ErrDuplicateAnswer
		}
		seen[answer.QuestionID] = struct{}{}

		question, ok := questions[answer.QuestionID]
		if !ok {
			return 0, 0, nil, domain.ErrQuestionNotFound
		}

		var selected *domain.Option
		for i := range question.Options {
			if question.Options[i].ID == answer.OptionID {
				selected = &question.Options[i]
				break
			}
		}
		if selected == nil {
			return 0, 0, nil, domain.ErrOptionNotFound
		}

		points := question.Points
		if points == 0 {
			points = s.opts.PointsPerCorrect
		}
		result := domain.AnswerResult{QuestionID: answer.QuestionID}
		if selected.Correct {
			result.Correct = true
			result.Awarded = points
			correct++
			awarded += points
		}
		results = append(results, result)
	}
	return correct, awarded, results, nil
}

// publishRanking mirrors the committed snapshot into the ranking view and
// pushes the refreshed leaderboard to subscribers. Both are best effort: the
// profile row is the source of truth and a stale mirror heals on the next
// completion.
func (s *FanService) publishRanking(ctx context.Context, profile domain.FanProfile) {
	if err := s.ranking.Record(ctx, profile); err != nil {
		log.Printf("ranking record failed for %s: %v", profile.ID, err)
	}
	if s.feed == nil || !s.feed.HasSubscribers() {
		return
	}
	lb, err := s.Leaderboard(ctx, 0)
	if err != nil {
		log.Printf("leaderboard refresh failed: %v", err)
		return
	}
	s.feed.Publish(lb)
}
