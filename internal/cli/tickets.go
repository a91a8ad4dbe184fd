package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	portalv1 "report-portal/api/portal/v1"
)

func newTicketCommand(opts *RootOptions) *cobra.Command {
	var req portalv1.SubmitTicketRequest
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Submit a support ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.SubmitTicket(ctx, &req)
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "submitted %s (%d remaining)\n", resp.Ticket.ID, resp.Remaining)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&req.Subject, "subject", "", "subject (max 100 characters)")
	cmd.Flags().StringVar(&req.Description, "description", "", "description (max 500 characters)")
	cmd.Flags().StringVar(&req.Category, "category", "", "category (default request)")
	return cmd
}

func newTicketsCommand(opts *RootOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List recent tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.ListTickets(ctx, &portalv1.ListTicketsRequest{All: all})
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
					if err := writeTickets(w, resp.Tickets, resp.Highlighted); err != nil {
						return err
					}
					_, err := fmt.Fprintf(w, "%d submissions remaining\n", resp.Remaining)
					return err
				})
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every ticket instead of the most recent")
	return cmd
}

func newAuditCommand(opts *RootOptions) *cobra.Command {
	var req portalv1.ListAuditLogsRequest
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List audit log entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.ListAuditLogs(ctx, &req)
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
					return table(w, "ID\tTIME\tACTION\tUSER\tIP\tDETAILS", func(tw io.Writer) {
						for _, e := range resp.Entries {
							fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Timestamp, e.Action, e.PerformedBy, e.IPAddress, e.Details)
						}
					})
				})
			})
		},
	}
	cmd.Flags().StringVar(&req.PerformedBy, "user", "", "only entries performed by this user")
	cmd.Flags().StringVar(&req.Action, "action", "", "only entries with this action, e.g. REPORT_CREATE")
	cmd.Flags().IntVar(&req.Limit, "limit", 0, "maximum entries (0 means all)")
	cmd.Flags().IntVar(&req.Offset, "offset", 0, "entries to skip")
	return cmd
}
