package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"fanzone-service/internal/app"
	"fanzone-service/internal/domain"
	pginfra "fanzone-service/internal/infra/postgres"
	pgmigrations "fanzone-service/internal/infra/postgres/migrations"
	redisinfra "fanzone-service/internal/infra/redis"
)

func TestQuizCompletionEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedContent(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	quizRepo := redisinfra.NewQuizRepository(redisClient, pginfra.NewQuizLoader(pool), 5*time.Minute)
	service := app.NewFanService(
		pginfra.NewProfileStore(pool),
		quizRepo,
		pginfra.NewCatalog(pool),
		redisinfra.NewRankingStore(redisClient),
		pginfra.NewClock(pool),
		app.NewLeaderboardFeed(),
		app.Options{},
	)

	fan, err := service.Register(ctx, "Alice", "alice@example.com", domain.ModeGames)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	answers := []domain.AnswerSubmission{
		{QuestionID: "q1", OptionID: "o2"},
		{QuestionID: "q2", OptionID: "o1"},
		{QuestionID: "q3", OptionID: "o1"},
		{QuestionID: "q4", OptionID: "o2"},
	}
	outcome, err := service.CompleteQuiz(ctx, fan.ID, "daily", answers)
	if err != nil {
		t.Fatalf("complete quiz: %v", err)
	}
	if outcome.Correct != 4 || outcome.TotalPoints != 100 || outcome.Level != domain.LevelVeteran {
		t.Fatalf("expected perfect run to 100/Veteran, got %+v", outcome)
	}
	if !outcome.EnteredSweepstakes {
		t.Fatalf("expected sweepstakes entry")
	}

	// The committed row must match the reported outcome.
	profile, err := service.Profile(ctx, fan.ID)
	if err != nil {
		t.Fatalf("fetch profile: %v", err)
	}
	if profile.Points != 100 || profile.Level != domain.LevelVeteran || !profile.InSweepstakes {
		t.Fatalf("persisted row diverged: %+v", profile)
	}
	if profile.LastQuizAttempt == nil {
		t.Fatalf("expected attempt date recorded")
	}

	// The daily gate holds against the database clock.
	if _, err := service.CompleteQuiz(ctx, fan.ID, "daily", answers); err != domain.ErrQuizAlreadyTaken {
		t.Fatalf("expected ErrQuizAlreadyTaken, got %v", err)
	}

	// The Redis ranking mirror picked up the completion.
	lb, err := service.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb.Entries) != 1 || lb.Entries[0].UserID != fan.ID || lb.Entries[0].Points != 100 {
		t.Fatalf("unexpected leaderboard: %+v", lb.Entries)
	}

	// Catalog views read the seeded JSONB content.
	prizes, err := service.Prizes(ctx, fan.ID)
	if err != nil {
		t.Fatalf("prizes: %v", err)
	}
	if len(prizes) != 2 || !prizes[0].Redeemable || prizes[1].Redeemable {
		t.Fatalf("unexpected prize eligibility: %+v", prizes)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "fanzone", "POSTGRES_PASSWORD": "fanzonepass", "POSTGRES_DB": "fanzonedb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://fanzone:fanzonepass@%s:%s/fanzonedb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedContent(t *testing.T, ctx context.Context, dsn string) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	quiz := sampleQuiz()
	data, err := json.Marshal(quiz)
	if err != nil {
		t.Fatalf("marshal quiz: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO quizzes (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`, quiz.ID, string(data)); err != nil {
		t.Fatalf("insert quiz: %v", err)
	}

	prizes := []domain.Prize{
		{ID: "sticker-pack", Name: "Sticker Pack", RequiredPoints: 50},
		{ID: "official-jersey", Name: "Official Jersey", RequiredPoints: 500},
	}
	for _, prize := range prizes {
		raw, err := json.Marshal(prize)
		if err != nil {
			t.Fatalf("marshal prize: %v", err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO prizes (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`, prize.ID, string(raw)); err != nil {
			t.Fatalf("insert prize: %v", err)
		}
	}
}

func sampleQuiz() domain.Quiz {
	questions := make([]domain.Question, 0, 4)
	for i, correct := range []string{"o2", "o1", "o1", "o2"} {
		q := domain.Question{
			ID:     fmt.Sprintf("q%d", i+1),
			Prompt: fmt.Sprintf("question %d", i+1),
		}
		for _, optID := range []string{"o1", "o2", "o3"} {
			q.Options = append(q.Options, domain.Option{
				ID:      optID,
				Text:    "option " + optID,
				Correct: optID == correct,
			})
		}
		questions = append(questions, q)
	}
	return domain.Quiz{ID: "daily", Questions: questions}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
