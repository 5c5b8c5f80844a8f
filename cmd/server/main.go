// @title         copy-job-tracker API
// @version       1.0
// @description   Personal job-application tracker: accounts, owner-scoped application records, statistics and AI job-description analysis.
// @BasePath      /api
// @schemes       http
// @host          localhost:5000
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-auth-token
// @description JWT issued by /auth/login, sent without a scheme prefix.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/VaibhavKawatra/copy-job-tracker/docs"

	// internal imports
	"github.com/VaibhavKawatra/copy-job-tracker/api/http"
	"github.com/VaibhavKawatra/copy-job-tracker/api/http/handlers"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/analysis"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/auth"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/config"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/health"
	healthpg "github.com/VaibhavKawatra/copy-job-tracker/pkg/health/checkers"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/job"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/llm"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/llm/openai"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/llm/openrouter"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/repository/memory"
	pgrepo "github.com/VaibhavKawatra/copy-job-tracker/pkg/repository/postgres"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/security/jwt"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration from env/.env
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log logging.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.UsesDefaultSecret() {
		log.Warn(context.Background(), "JWT_SECRET is not set, using the development default with in-memory storage")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	var (
		userRepo  auth.UserRepository
		jobRepo   job.Repository
		readiness health.ReadinessUseCase
	)
	switch cfg.StorageDriver {
	case "memory":
		log.Warn(ctx, "using in-memory storage, data is lost on restart")
		userRepo = memory.NewUserRepository()
		jobRepo = memory.NewJobRepository()
		readiness = health.NewService()
	default:
		pool, err := openPostgres(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer pool.Close()
		userRepo = pgrepo.NewUserRepository(pool)
		jobRepo = pgrepo.NewJobRepository(pool)
		readiness = health.NewService(healthpg.NewPostgresChecker(pool))
	}

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	authUC := auth.NewAuthService(userRepo, jwtGen)
	jobUC := job.NewService(jobRepo)
	analysisUC := analysis.NewService(newChatModel(ctx, cfg, log), log.With("component", "analysis"))

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(jwtGen, log.With("component", "auth"))

	app := http.NewApp(log, http.AppOptions{
		CORSOrigins: cfg.CORSOrigins,
		BodyLimit:   int(cfg.UploadMaxBytes) + 1<<20,
		AccessLog:   true,
	})
	http.Register(app, http.Handlers{
		Auth:   handlers.NewAuthHandler(authUC, log),
		Jobs:   handlers.NewJobHandler(jobUC, log),
		AI:     handlers.NewAIHandler(analysisUC, log, cfg.UploadMaxBytes),
		Health: handlers.NewHealthHandler(readiness, log),
	}, authMW)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "HTTP server listening", "port", cfg.Port, "storage", cfg.StorageDriver)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func openPostgres(ctx context.Context, cfg config.Config, log logging.Logger) (*pgxpool.Pool, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := postgres.Connect(connectCtx, cfg.DatabaseURL, postgres.PoolOptions{
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMinutes) * time.Minute,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info(ctx, "postgres ready", "max_conns", cfg.DBMaxConns)
	return pool, nil
}

// newChatModel picks the configured provider. It returns nil when the provider
// has no API key, which turns AI endpoints into 503s.
func newChatModel(ctx context.Context, cfg config.Config, log logging.Logger) llm.ChatModel {
	switch cfg.LLMProvider {
	case "openrouter":
		if cfg.OpenRouterAPIKey == "" {
			log.Warn(ctx, "OPENROUTER_API_KEY is not set, AI analysis disabled")
			return nil
		}
		c := openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterBase, cfg.OpenRouterModel, cfg.OpenRouterAppTitle, cfg.OpenRouterReferer)
		log.Info(ctx, "LLM provider configured", "provider", "openrouter", "model", c.Name())
		return c
	default:
		if cfg.OpenAIAPIKey == "" {
			log.Warn(ctx, "OPENAI_API_KEY is not set, AI analysis disabled")
			return nil
		}
		c, err := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		if err != nil {
			log.Error(ctx, "LLM client init failed, AI analysis disabled", "err", err)
			return nil
		}
		log.Info(ctx, "LLM provider configured", "provider", "openai", "model", c.Name())
		return c
	}
}
