package cli

import (
	"fmt"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/alexanderramin/levelup/internal/pacing"
	"github.com/spf13/cobra"
)

func newForecastCmd(app *App) *cobra.Command {
	var category, strategyName string
	var targets []float64

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project when cumulative study-hour targets will be reached",
		Long: `Project how many days remain until each cumulative-hour target.

The default pace is the mean length of the most recent sessions
(pacing.window). --strategy trend fits a linear model over every session
instead. Projections need at least 5 records in total.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			cfg := app.pacing()
			if len(targets) == 0 {
				targets = cfg.Targets
			}
			strategy, err := pacing.StrategyByName(strategyName, cfg.Window)
			if err != nil {
				return err
			}

			records := svc.Records()
			f := formatter.Forecast{
				Title:        "Forecast",
				Strategy:     strategy.Name(),
				Insufficient: len(records) < pacing.MinRecords,
			}

			subset := records
			if category != "" {
				cat, err := app.lookupCategory(category)
				if err != nil {
					return err
				}
				f.Title = "Forecast: " + cat.Label()
				subset = pacing.FilterCategory(records, cat.Name)
				f.Projections = pacing.ProjectCategory(records, cat.Name, targets, strategy)
			} else {
				f.Projections = pacing.Project(records, targets, strategy)
			}

			f.TotalHours = pacing.TotalHours(subset)
			if daily, ok := strategy.DailyHours(subset); ok {
				f.DailyHours = daily
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatForecast(f))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "project one subject only")
	cmd.Flags().Float64SliceVarP(&targets, "target", "t", nil, "target hours (repeatable; default pacing.targets)")
	cmd.Flags().StringVarP(&strategyName, "strategy", "s", "recent", "pace estimate: recent or trend")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories(app))
	_ = cmd.RegisterFlagCompletionFunc("strategy", cobra.FixedCompletions([]string{"recent", "trend"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
