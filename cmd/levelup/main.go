package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/levelup/internal/cli"
	"github.com/alexanderramin/levelup/internal/config"
	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/progress"
	"github.com/alexanderramin/levelup/internal/repository"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}

	// Detect interactive terminal for prompts and the timer.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Config and storage depend on --config and --db, so they are wired
	// once flags are parsed.
	app.Setup = func(ctx context.Context, opts cli.GlobalOptions) error {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			return err
		}
		if opts.DBPath != "" {
			cfg.DB.Path = opts.DBPath
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger := cfg.NewLogger(os.Stderr)

		database, err = db.OpenDB(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		logger.Debug("database opened", "path", cfg.DB.Path)

		engine, err := progress.Open(ctx, repository.NewSQLiteSnapshotStore(database),
			progress.WithObserver(progress.NewSlogUseCaseObserver(logger)))
		if err != nil {
			return err
		}

		app.Config = cfg
		app.Progress = engine
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
