package cli

import (
	"fmt"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTicketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Show available reward tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tickets: %s\n", formatter.StyleGreen.Render(fmt.Sprintf("%d", svc.State().Tickets)))
			return nil
		},
	}

	cmd.AddCommand(newTicketUseCmd(app))
	return cmd
}

func newTicketUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use",
		Short: "Spend one ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.progress()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if svc.State().Tickets <= 0 {
				fmt.Fprintln(out, formatter.Dim("No tickets available."))
				return nil
			}

			ok, err := app.confirm(fmt.Sprintf("Use a ticket? (%d left)", svc.State().Tickets))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}

			consumed, err := svc.ConsumeTicket(cmd.Context())
			if err != nil {
				return err
			}
			if !consumed {
				fmt.Fprintln(out, formatter.Dim("No tickets available."))
				return nil
			}
			fmt.Fprintf(out, "Ticket used. %d left.\n", svc.State().Tickets)
			return nil
		},
	}
}
