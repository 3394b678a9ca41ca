package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/stats"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, experience and tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(stats.Summarize(svc.Snapshot())))
			return nil
		},
	}
}

func newSubjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "Show time and experience per subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubjects(stats.ByCategory(svc.Records(), app.catalog())))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var by string
	var count int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Chart experience per day, week or month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			period, err := parsePeriod(by)
			if err != nil {
				return err
			}
			if count <= 0 {
				count = stats.DefaultBuckets[period]
			}

			buckets := stats.ExperienceByPeriod(svc.Records(), period, count, app.now())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBuckets(period, buckets))
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "day", "bucket size: day, week or month")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of buckets (default 7 days, 8 weeks or 12 months)")
	_ = cmd.RegisterFlagCompletionFunc("by", cobra.FixedCompletions([]string{"day", "week", "month"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func parsePeriod(s string) (stats.Period, error) {
	switch strings.ToLower(s) {
	case "day", "daily", "d":
		return stats.Day, nil
	case "week", "weekly", "w":
		return stats.Week, nil
	case "month", "monthly", "m":
		return stats.Month, nil
	}
	return 0, fmt.Errorf("period %q must be day, week or month: %w", s, domain.ErrInvalidInput)
}

func newChartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Show study time by hour of day and weekday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			records := svc.Records()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDistribution(stats.HourlyMinutes(records), stats.WeekdayMinutes(records)))
			return nil
		},
	}
}
