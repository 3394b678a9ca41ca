package cli

import (
	"fmt"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/spf13/cobra"
)

func newPurgeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "purge DATE",
		Short: "Delete every record on a day (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			date := args[0]
			if err := domain.ValidateDate(date); err != nil {
				return err
			}

			ok, err := app.confirm(fmt.Sprintf("Delete every record on %s?", date))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			n, err := svc.PurgeDay(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d record(s) from %s.\n", n, date)
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all records and start again at level 1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}

			ok, err := app.confirm(fmt.Sprintf("Delete all %d records and reset progress?", len(svc.Records())))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := svc.ResetAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
			return nil
		},
	}
}

func newRecalcCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc",
		Short: "Rebuild level and tickets from the records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			if err := svc.Recalculate(cmd.Context()); err != nil {
				return err
			}
			s := svc.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Recalculated: level %d, %s, %d ticket(s).\n",
				s.Level, formatter.FormatPoints(s.Experience), s.Tickets)
			return nil
		},
	}
}
