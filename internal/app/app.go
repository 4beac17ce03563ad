package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/icebreaker/db"
	"github.com/gokatarajesh/icebreaker/internal/admin"
	"github.com/gokatarajesh/icebreaker/internal/config"
	"github.com/gokatarajesh/icebreaker/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
	"github.com/gokatarajesh/icebreaker/internal/events"
	"github.com/gokatarajesh/icebreaker/internal/logging"
	"github.com/gokatarajesh/icebreaker/internal/metrics"
	"github.com/gokatarajesh/icebreaker/internal/question"
	"github.com/gokatarajesh/icebreaker/internal/report"
	"github.com/gokatarajesh/icebreaker/internal/server"
	"github.com/gokatarajesh/icebreaker/internal/team"
	ws "github.com/gokatarajesh/icebreaker/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
	hub   *ws.Hub

	broadcaster *events.Broadcaster
	bgCancels   []context.CancelFunc
}

// New bootstraps logger, Postgres, Redis, domain services and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("version", cfg.Version).Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.MigrateOnStart {
		if err := migrate(pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	queries := sqlcgen.New(pool)
	questionRepo := repository.NewQuestionRepository(queries)
	teamRepo := repository.NewTeamRepository(queries)
	ledgerRepo := repository.NewLedgerRepository(queries)

	collectors := metrics.New(prometheus.DefaultRegisterer)
	publisher := events.NewRedisPublisher(redisClient, cfg.Events.Channel, logger)
	hub := ws.NewHub(logger)

	questionSvc := question.NewService(questionRepo, logger)
	selector := question.NewSelector(questionRepo, ledgerRepo)
	teamSvc := team.NewService(teamRepo, ledgerRepo, questionSvc, selector, logger,
		team.WithEvents(publisher),
		team.WithMetrics(collectors),
	)
	reportSvc := report.NewService(ledgerRepo, questionRepo, teamRepo, logger)
	adminSvc := admin.NewService(admin.Config{
		PasswordHash: cfg.Admin.PasswordHash,
		JWTSecret:    cfg.Admin.JWTSecret,
		TokenTTL:     cfg.Admin.TokenTTL,
	}, logger)

	if cfg.Seed.SampleData {
		seedSampleData(ctx, questionSvc, teamSvc, logger)
	}

	var limiter *server.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = server.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window, collectors, logger)
	}

	apiServer := server.NewHTTPServer(cfg, logger, server.Handlers{
		Teams:       team.NewHTTPHandler(teamSvc, logger),
		Feed:        team.NewFeedHandler(teamSvc, hub, server.NewUpgrader(cfg.CORS.AllowedOrigins), logger),
		Questions:   question.NewHTTPHandler(questionSvc, logger),
		Reports:     report.NewHTTPHandler(reportSvc, logger),
		AdminHTTP:   admin.NewHTTPHandler(adminSvc, logger),
		Admin:       adminSvc,
		Database:    pool,
		Cache:       server.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		Metrics:     collectors,
		Gatherer:    prometheus.DefaultGatherer,
		RateLimiter: limiter,
	})

	return &Application{
		cfg:         cfg,
		logger:      logger,
		pool:        pool,
		redis:       redisClient,
		http:        apiServer,
		hub:         hub,
		broadcaster: events.NewBroadcaster(redisClient, hub, cfg.Events.Channel, logger),
		bgCancels:   make([]context.CancelFunc, 0, 1),
	}, nil
}

// migrate applies the embedded goose migrations through the pool.
func migrate(pool *pgxpool.Pool, logger zerolog.Logger) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info().Msg("migrations applied")
	return nil
}

type seeder interface {
	SeedDefaults(ctx context.Context) (int, error)
}

// seedSampleData fills empty tables. Failures are logged and never stop startup.
func seedSampleData(ctx context.Context, questions, teams seeder, logger zerolog.Logger) {
	if _, err := questions.SeedDefaults(ctx); err != nil {
		logger.Error().Err(err).Msg("error initializing sample questions")
	}
	if _, err := teams.SeedDefaults(ctx); err != nil {
		logger.Error().Err(err).Msg("error initializing sample teams")
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	// Hijacked WebSocket connections are not tracked by http.Server.
	a.hub.CloseAll()

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.broadcaster != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.broadcaster.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("event broadcaster stopped")
			}
		}()
	}
}
