// Package main is the entry point for the trivia API server, which serves
// paginated questions and categories, search, and quiz play.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api"
	"github.com/fullstack-nd/trivia-coffee-api/internal/api/middleware"
	"github.com/fullstack-nd/trivia-coffee-api/internal/config"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/migrate"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/postgres"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/ratelimit"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/server"
	"github.com/fullstack-nd/trivia-coffee-api/internal/redact"
	"github.com/fullstack-nd/trivia-coffee-api/internal/seed"
	"github.com/fullstack-nd/trivia-coffee-api/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "trivia: %s\n", redact.Error(err))
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("trivia", flag.ContinueOnError)
	migrateCmd := fs.String("migrate", "", "run a migration command (up, down, status, reset, version) and exit")
	seedDB := fs.Bool("seed", false, "load the seed fixture and exit")
	seedFile := fs.String("seed-file", "", "fixture file for -seed (defaults to the embedded fixture)")
	seedForce := fs.Bool("seed-force", false, "seed even when categories already exist")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(config.ServiceTrivia)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("trivia configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runner := migrate.NewRunner(db, migrate.Trivia(), log)
	if *migrateCmd != "" {
		return runner.Run(ctx, *migrateCmd)
	}
	if cfg.Database.AutoMigrate {
		if err := runner.Up(ctx); err != nil {
			return err
		}
	}

	questions := postgres.NewPostgresQuestionStore(db, log)
	categories := postgres.NewPostgresCategoryStore(db, log)

	if *seedDB {
		return runSeed(ctx, log, seed.NewSeeder(db, questions, categories, log), *seedFile, *seedForce)
	}

	trivia, err := service.NewTriviaService(questions, categories, log)
	if err != nil {
		return fmt.Errorf("failed to create trivia service: %w", err)
	}

	cors, err := middleware.NewCORSPolicy(cfg.CORS.AllowedOrigins)
	if err != nil {
		return fmt.Errorf("invalid CORS configuration: %w", err)
	}
	limiter, err := ratelimit.New(cfg.RateLimit, string(config.ServiceTrivia), log)
	if err != nil {
		return err
	}
	if c, ok := limiter.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	router := api.NewTriviaRouter(trivia, api.RouterDeps{
		Logger:  log,
		CORS:    cors,
		Limiter: limiter,
		DB:      db,
	})
	return server.New(cfg.Server.Port, router, cfg.Server.ShutdownTimeout, log).Run(ctx)
}

func runSeed(ctx context.Context, log *slog.Logger, seeder *seed.Seeder, path string, force bool) error {
	var (
		fixture *seed.Fixture
		err     error
	)
	if path != "" {
		fixture, err = seed.LoadFile(path)
	} else {
		fixture, err = seed.LoadDefault()
	}
	if err != nil {
		return err
	}

	seeder.Force = force
	if _, err := seeder.Apply(ctx, fixture); err != nil {
		if errors.Is(err, seed.ErrAlreadySeeded) {
			log.Warn("seed skipped: database already contains categories; pass -seed-force to seed anyway")
			return nil
		}
		return fmt.Errorf("seed failed: %w", err)
	}
	return nil
}
