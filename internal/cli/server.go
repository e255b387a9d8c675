package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"fanzone-service/internal/app"
	"fanzone-service/internal/config"
	"fanzone-service/internal/domain"
	"fanzone-service/internal/infra/memory"
	pginfra "fanzone-service/internal/infra/postgres"
	redisinfra "fanzone-service/internal/infra/redis"
	transport "fanzone-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the fanzone server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.QuizLoader = memory.NewStaticQuizLoader(sampleQuizzes())
	if pool != nil {
		loader = pginfra.NewQuizLoader(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = redisinfra.NewQuizRepository(redisClient, loader, quizTTL)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
	}

	var profiles app.ProfileStore
	var content app.CatalogRepository
	var clock app.Clock
	if pool != nil {
		profiles = pginfra.NewProfileStore(pool)
		content = pginfra.NewCatalog(pool)
		clock = pginfra.NewClock(pool)
	} else {
		profiles = memory.NewProfileStore()
		content = memory.NewStaticCatalog(samplePrizes(), sampleCards())
		clock = memory.NewSystemClock()
	}

	var ranking app.RankingStore
	switch {
	case redisClient != nil:
		ranking = redisinfra.NewRankingStore(redisClient)
	case pool != nil:
		ranking = pginfra.NewRankingStore(pool)
	default:
		ranking = memory.NewRankingStore()
	}

	service := app.NewFanService(profiles, quizRepo, content, ranking, clock, app.NewLeaderboardFeed(), app.Options{
		PointsPerCorrect:     cfg.Quiz.PointsPerCorrect,
		SweepstakesThreshold: cfg.Quiz.SweepstakesThreshold,
		RankingSize:          cfg.Ranking.Size,
	})

	router := mux.NewRouter()
	transport.NewAPIHandler(service).Routes(router)
	wsHandler := transport.NewWSHandler(service)
	router.HandleFunc("/ws", wsHandler.ServeWS)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting fanzone service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes backs memory mode; production loads quiz content from Postgres.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"daily": {
			ID: "daily",
			Questions: []domain.Question{
				{
					ID:     "q1",
					Prompt: "In which year was the club founded?",
					Options: []domain.Option{
						{ID: "o1", Text: "2016", Correct: false},
						{ID: "o2", Text: "2017", Correct: true},
						{ID: "o3", Text: "2018", Correct: false},
					},
				},
				{
					ID:     "q2",
					Prompt: "Which title did the club win first?",
					Options: []domain.Option{
						{ID: "o1", Text: "National league", Correct: true},
						{ID: "o2", Text: "Continental cup", Correct: false},
						{ID: "o3", Text: "World finals", Correct: false},
					},
				},
				{
					ID:     "q3",
					Prompt: "What color is the home jersey?",
					Options: []domain.Option{
						{ID: "o1", Text: "Black", Correct: true},
						{ID: "o2", Text: "White", Correct: false},
						{ID: "o3", Text: "Red", Correct: false},
					},
				},
				{
					ID:     "q4",
					Prompt: "Who captains the current roster?",
					Options: []domain.Option{
						{ID: "o1", Text: "The coach", Correct: false},
						{ID: "o2", Text: "The in-game leader", Correct: true},
						{ID: "o3", Text: "The analyst", Correct: false},
					},
				},
			},
		},
	}
}

func samplePrizes() []domain.Prize {
	return []domain.Prize{
		{ID: "sticker-pack", Name: "Sticker Pack", RequiredPoints: 0},
		{ID: "match-ticket", Name: "Match Ticket", RequiredPoints: 200},
		{ID: "meet-greet", Name: "Virtual Meet & Greet", RequiredPoints: 350},
		{ID: "official-jersey", Name: "Official Jersey", RequiredPoints: 500},
	}
}

func sampleCards() []domain.Card {
	return []domain.Card{
		{ID: "rookie", Name: "Rookie", Rarity: domain.RarityCommon, PointsToUnlock: 0},
		{ID: "sniper", Name: "Sniper", Rarity: domain.RarityRare, PointsToUnlock: 150},
		{ID: "captain", Name: "Captain", Rarity: domain.RarityLegendary, PointsToUnlock: 300},
	}
}
