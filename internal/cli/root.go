package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "levelup" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	app.opts = GlobalOptions{}

	root := &cobra.Command{
		Use:           "levelup",
		Short:         "Study tracker that turns logged minutes into levels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			return app.Setup(cmd.Context(), app.opts)
		},
	}
	root.PersistentFlags().AddFlagSet(app.opts.flagSet())

	root.AddCommand(
		newLogCmd(app),
		newTimerCmd(app),
		newTicketCmd(app),
		newRecordCmd(app),
		newPurgeCmd(app),
		newResetCmd(app),
		newRecalcCmd(app),
		newStatusCmd(app),
		newSubjectsCmd(app),
		newHistoryCmd(app),
		newChartCmd(app),
		newForecastCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newConfigCmd(app),
	)

	return root
}
