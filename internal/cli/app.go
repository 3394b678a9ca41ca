package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/levelup/internal/config"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrConfirmationRequired is returned when a destructive command runs
// without a terminal and without --yes.
var ErrConfirmationRequired = errors.New("confirmation required, re-run with --yes")

// ProgressService is the subset of the progress engine the commands use.
type ProgressService interface {
	RecordSession(ctx context.Context, minutes int, category string, difficulty float64) (domain.Points, error)
	RecordSessionAt(ctx context.Context, minutes int, category string, difficulty float64, at time.Time) (domain.Points, error)
	ConsumeTicket(ctx context.Context) (bool, error)
	EditRecord(ctx context.Context, id, minutes int, category string, difficulty float64) error
	DeleteRecord(ctx context.Context, id int) error
	PurgeDay(ctx context.Context, date string) (int, error)
	ResetAll(ctx context.Context) error
	Recalculate(ctx context.Context) error
	Restore(ctx context.Context, snap domain.Snapshot) error

	State() domain.ProgressState
	Records() []domain.StudyRecord
	Record(id int) (domain.StudyRecord, error)
	Snapshot() domain.Snapshot
}

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigFile string
	DBPath     string
	Yes        bool
}

func (o *GlobalOptions) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.StringVar(&o.ConfigFile, "config", "", "config file (default ./levelup.yaml or ~/.config/levelup/levelup.yaml)")
	fs.StringVar(&o.DBPath, "db", "", "database path, overrides db.path")
	fs.BoolVarP(&o.Yes, "yes", "y", false, "answer yes to every confirmation")
	return fs
}

// App holds the services and hooks used by CLI commands.
type App struct {
	Progress ProgressService
	Config   *config.Config

	// Now is the clock used for history buckets. Defaults to time.Now.
	Now func() time.Time

	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool

	// Confirm overrides the huh confirmation prompt.
	Confirm func(title string) (bool, error)

	// RunTimer overrides the bubbletea study timer.
	RunTimer func(ctx context.Context, label string) (TimerResult, error)

	// Setup runs before every command once flags are parsed. It is where
	// the binary loads config and opens the store.
	Setup func(ctx context.Context, opts GlobalOptions) error

	opts GlobalOptions
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) catalog() domain.Catalog {
	if a.Config == nil {
		return domain.DefaultCatalog()
	}
	return a.Config.Catalog()
}

func (a *App) pacing() config.PacingConfig {
	if a.Config == nil {
		return config.DefaultConfig().Pacing
	}
	return a.Config.Pacing
}

func (a *App) defaultCategory() string {
	if a.Config != nil && a.Config.Timer.DefaultCategory != "" {
		return a.Config.Timer.DefaultCategory
	}
	return a.catalog().Names()[0]
}

// progress returns the engine or an error when Setup did not provide one.
func (a *App) progress() (ProgressService, error) {
	if a.Progress == nil {
		return nil, fmt.Errorf("progress store is not configured")
	}
	return a.Progress, nil
}

// confirm asks title as a yes/no question. --yes skips the prompt; without a
// terminal the answer must come from --yes.
func (a *App) confirm(title string) (bool, error) {
	if a.opts.Yes {
		return true, nil
	}
	if !a.interactive() {
		return false, fmt.Errorf("%s: %w", title, ErrConfirmationRequired)
	}
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	var ok bool
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return ok, nil
}

// lookupCategory resolves a category name against the catalog.
func (a *App) lookupCategory(name string) (domain.Category, error) {
	return a.catalog().Lookup(name)
}

func completeCategories(app *App) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return app.catalog().Names(), cobra.ShellCompDirectiveNoFileComp
	}
}
