package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// Supported migration commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandReset   = "reset"
	CommandVersion = "version"
)

// ErrUnknownCommand is returned for a command outside the supported set.
var ErrUnknownCommand = errors.New("unknown migration command")

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Source describes one migration set: its files and the goose version table
// that records which of them have been applied.
type Source struct {
	Name  string
	FS    fs.FS
	Table string
}

// Runner applies a Source to a database.
type Runner struct {
	db     *sql.DB
	source Source
	logger *slog.Logger
}

// NewRunner creates a Runner. If logger is nil, a default logger will be used.
func NewRunner(db *sql.DB, source Source, logger *slog.Logger) *Runner {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		db:     db,
		source: source,
		logger: logger.With(
			slog.String("component", "migrations"),
			slog.String("source", source.Name),
		),
	}
}

// Run executes a goose command against the runner's database.
func (r *Runner) Run(ctx context.Context, command string) error {
	log := r.logger.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("command", command),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(r.source.FS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: log})
	if r.source.Table != "" {
		goose.SetTableName(r.source.Table)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	start := time.Now()
	log.Info("starting migration operation")

	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, r.db, ".")
	case CommandDown:
		err = goose.DownContext(ctx, r.db, ".")
	case CommandStatus:
		err = goose.StatusContext(ctx, r.db, ".")
	case CommandReset:
		err = goose.ResetContext(ctx, r.db, ".")
	case CommandVersion:
		var version int64
		version, err = goose.GetDBVersionContext(ctx, r.db)
		if err == nil {
			log.Info("current database version", slog.Int64("version", version))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}

	if err != nil {
		log.Error("migration operation failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration operation completed",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// Up applies all pending migrations.
func (r *Runner) Up(ctx context.Context) error {
	return r.Run(ctx, CommandUp)
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level and does NOT exit; the error is returned to the
// caller by goose.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
