package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskflowhq/taskflow/internal/auth"
	"github.com/taskflowhq/taskflow/internal/cli"
	"github.com/taskflowhq/taskflow/internal/db"
	"github.com/taskflowhq/taskflow/internal/notify"
	"github.com/taskflowhq/taskflow/internal/storage"
	"github.com/taskflowhq/taskflow/internal/store"
	"github.com/taskflowhq/taskflow/internal/tracker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configureLogging()

	// Determine DB path: env var or default ~/.taskflow/taskflow.db
	dbPath := os.Getenv("TASKFLOW_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".taskflow", "taskflow.db")
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx := context.Background()
	slots := storage.NewSlotStore(database)

	s := store.New(slots, db.NewSQLiteUnitOfWork(database))
	if err := s.Reload(ctx); err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	app := &cli.App{
		Store:         s,
		Notifications: notify.NewReconciler(),
		Tracker:       tracker.New(s),
		Identity:      auth.NewLocalProvider(ctx, slots),
		Slots:         slots,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// configureLogging sends zerolog to stderr, quiet by default so log
// lines never mix into command output. TASKFLOW_LOG raises the level.
func configureLogging() {
	level := zerolog.WarnLevel
	if raw := os.Getenv("TASKFLOW_LOG"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}
