// Package main is the entry point for the coffee-shop API server, which
// manages the drinks menu behind permission-scoped bearer tokens.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api"
	"github.com/fullstack-nd/trivia-coffee-api/internal/api/middleware"
	"github.com/fullstack-nd/trivia-coffee-api/internal/auth"
	"github.com/fullstack-nd/trivia-coffee-api/internal/config"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/migrate"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/postgres"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/ratelimit"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/server"
	"github.com/fullstack-nd/trivia-coffee-api/internal/redact"
	"github.com/fullstack-nd/trivia-coffee-api/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "coffee: %s\n", redact.Error(err))
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("coffee", flag.ContinueOnError)
	migrateCmd := fs.String("migrate", "", "run a migration command (up, down, status, reset, version) and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(config.ServiceCoffee)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	tokenMode := "rs256"
	if cfg.Auth.JWTSecret != "" {
		tokenMode = "hs256"
	}
	log.Info("coffee configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("token_mode", tokenMode))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runner := migrate.NewRunner(db, migrate.Coffee(), log)
	if *migrateCmd != "" {
		return runner.Run(ctx, *migrateCmd)
	}
	if cfg.Database.AutoMigrate {
		if err := runner.Up(ctx); err != nil {
			return err
		}
	}

	drinks, err := service.NewDrinkService(postgres.NewPostgresDrinkStore(db, log), log)
	if err != nil {
		return fmt.Errorf("failed to create drink service: %w", err)
	}

	verifier, err := auth.NewVerifier(cfg.Auth, &http.Client{Timeout: 10 * time.Second}, log)
	if err != nil {
		return fmt.Errorf("failed to configure token verification: %w", err)
	}

	cors, err := middleware.NewCORSPolicy(cfg.CORS.AllowedOrigins)
	if err != nil {
		return fmt.Errorf("invalid CORS configuration: %w", err)
	}
	limiter, err := ratelimit.New(cfg.RateLimit, string(config.ServiceCoffee), log)
	if err != nil {
		return err
	}
	if c, ok := limiter.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	router := api.NewCoffeeRouter(drinks, verifier, api.RouterDeps{
		Logger:  log,
		CORS:    cors,
		Limiter: limiter,
		DB:      db,
	})
	return server.New(cfg.Server.Port, router, cfg.Server.ShutdownTimeout, log).Run(ctx)
}
