package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/levelup/internal/repository"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all progress with a legacy JSON save file",
		Long: `Replace all records with those in a legacy JSON save file
({"exp","level","tickets","study_log":[[id,minutes,subject,exp,"YYYY-MM-DD HH:MM"],...]}).
Level and tickets are rebuilt from the imported records.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			// A missing file would load as an empty ledger.
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			snap, err := repository.NewJSONFileStore(args[0]).Load(cmd.Context())
			if err != nil {
				return err
			}

			ok, err := app.confirm(fmt.Sprintf("Replace %d record(s) with %d from %s?",
				len(svc.Records()), len(snap.Records), args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := svc.Restore(cmd.Context(), snap); err != nil {
				return err
			}
			s := svc.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s): level %d, %d ticket(s).\n",
				len(snap.Records), s.Level, s.Tickets)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write all progress to a legacy JSON save file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			snap := svc.Snapshot()
			if err := repository.NewJSONFileStore(args[0]).Save(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s.\n", len(snap.Records), args[0])
			return nil
		},
	}
}
