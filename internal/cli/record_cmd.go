package cli

import (
	"fmt"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/pacing"
	"github.com/alexanderramin/levelup/internal/stats"
	"github.com/spf13/cobra"
)

func newRecordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"records"},
		Short:   "List, edit and delete study records",
	}

	cmd.AddCommand(
		newRecordListCmd(app),
		newRecordEditCmd(app),
		newRecordDeleteCmd(app),
	)

	return cmd
}

func newRecordListCmd(app *App) *cobra.Command {
	var category, date string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			if date != "" {
				if err := domain.ValidateDate(date); err != nil {
					return err
				}
			}

			records := svc.Records()
			if category != "" {
				records = pacing.FilterCategory(records, category)
			}
			records = stats.NewestFirst(records)
			if date != "" {
				filtered := records[:0]
				for _, r := range records {
					if r.Date() == date {
						filtered = append(filtered, r)
					}
				}
				records = filtered
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecords(records, app.catalog()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only records of this subject")
	cmd.Flags().StringVar(&date, "date", "", "only records on this day (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many records")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories(app))

	return cmd
}

func newRecordEditCmd(app *App) *cobra.Command {
	var category string
	var minutes int

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a record's minutes or subject",
		Long: `Change a record's minutes or subject. Its id and timestamp are kept,
experience is recomputed from the new values and the level is rebuilt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			rec, err := svc.Record(id)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("minutes") {
				minutes = rec.Minutes
			}
			if category == "" {
				category = rec.Category
			}
			cat, err := app.lookupCategory(category)
			if err != nil {
				return err
			}

			if err := svc.EditRecord(cmd.Context(), id, minutes, cat.Name, cat.Difficulty); err != nil {
				return err
			}
			updated, err := svc.Record(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d: %s of %s, %s\n",
				id, formatter.FormatMinutes(updated.Minutes), cat.Label(), formatter.FormatPoints(updated.EarnedPoints))
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "new session length")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new subject")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories(app))

	return cmd
}

func newRecordDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete one record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			rec, err := svc.Record(id)
			if err != nil {
				return err
			}

			ok, err := app.confirm(fmt.Sprintf("Delete #%d (%s, %s of %s)?",
				rec.ID, rec.Timestamp, formatter.FormatMinutes(rec.Minutes), rec.Category))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := svc.DeleteRecord(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d.\n", id)
			return nil
		},
	}
}
