package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var category, at string

	cmd := &cobra.Command{
		Use:   "log [MINUTES]",
		Short: "Log a study session",
		Long: `Log a study session and earn minutes × difficulty experience.

Without arguments in a terminal, a form asks for the subject and minutes.
--at records the session at an earlier time (YYYY-MM-DD HH:MM); the level
and tickets are then rebuilt from the whole history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var minutes int
			switch {
			case len(args) == 1:
				m, err := parseMinutes(args[0])
				if err != nil {
					return err
				}
				minutes = m
			case app.interactive():
				if category == "" {
					category = app.defaultCategory()
				}
				var input string
				if err := logForm(app.catalog(), &category, &input).Run(); err != nil {
					return fmt.Errorf("log form: %w", err)
				}
				m, err := parseMinutes(input)
				if err != nil {
					return err
				}
				minutes = m
			default:
				return fmt.Errorf("minutes are required: %w", domain.ErrInvalidInput)
			}
			if category == "" {
				category = app.defaultCategory()
			}

			var when time.Time
			if at != "" {
				t, err := domain.ParseTimestamp(at)
				if err != nil {
					return err
				}
				when = t
			}
			return logSession(cmd.Context(), app, cmd.OutOrStdout(), minutes, category, when)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "subject to log (default timer.default_category)")
	cmd.Flags().StringVar(&at, "at", "", "session time, YYYY-MM-DD HH:MM (default now)")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories(app))

	return cmd
}

// logSession records minutes of category, at the current time when at is
// zero, and prints the outcome.
func logSession(ctx context.Context, app *App, w io.Writer, minutes int, category string, at time.Time) error {
	svc, err := app.progress()
	if err != nil {
		return err
	}
	cat, err := app.lookupCategory(category)
	if err != nil {
		return err
	}

	before := svc.State()
	var earned domain.Points
	if at.IsZero() {
		earned, err = svc.RecordSession(ctx, minutes, cat.Name, cat.Difficulty)
	} else {
		earned, err = svc.RecordSessionAt(ctx, minutes, cat.Name, cat.Difficulty, at)
	}
	if err != nil {
		return err
	}

	fmt.Fprint(w, formatter.FormatLogResult(minutes, cat.Label(), earned, before, svc.State()))
	return nil
}
