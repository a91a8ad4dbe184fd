package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	portalv1 "report-portal/api/portal/v1"
)

func addFilterFlags(cmd *cobra.Command, f *portalv1.Filter) {
	cmd.Flags().StringVar(&f.Category, "category", "", "category filter (empty means All)")
	cmd.Flags().StringVar(&f.Search, "search", "", "case-insensitive product or region search")
}

func addDraftFlags(cmd *cobra.Command, d *portalv1.ReportDraft) {
	cmd.Flags().StringVar(&d.ProductName, "product", "", "product name")
	cmd.Flags().StringVar(&d.Category, "category", "", "category")
	cmd.Flags().StringVar(&d.Amount, "amount", "", "amount, e.g. 25.50")
	cmd.Flags().StringVar(&d.SaleDate, "date", "", "sale date YYYY-MM-DD")
	cmd.Flags().StringVar(&d.Region, "region", "", "region")
}

func newReportsCommand(opts *RootOptions) *cobra.Command {
	var f portalv1.Filter
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List the filtered records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.ListReports(ctx, &portalv1.ListReportsRequest{Filter: f})
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
					return writeReports(w, resp.Reports)
				})
			})
		},
	}
	addFilterFlags(cmd, &f)
	return cmd
}

func newDashboardCommand(opts *RootOptions) *cobra.Command {
	var f portalv1.Filter
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals and per-category and per-region sums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.GetDashboard(ctx, &portalv1.GetDashboardRequest{Filter: f})
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
					fmt.Fprintf(w, "records: %d  total: %s  average: %s\n", resp.Count, resp.TotalSales, resp.AverageTicket)
					if resp.Syncing {
						fmt.Fprintln(w, "(sync in progress)")
					}
					if err := writeBuckets(w, "by category", resp.ByCategory); err != nil {
						return err
					}
					return writeBuckets(w, "by region", resp.ByRegion)
				})
			})
		},
	}
	addFilterFlags(cmd, &f)
	return cmd
}

func newCreateCommand(opts *RootOptions) *cobra.Command {
	var d portalv1.ReportDraft
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.CreateReport(ctx, &portalv1.CreateReportRequest{Draft: d})
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
					return writeReports(w, []portalv1.Report{resp.Report})
				})
			})
		},
	}
	addDraftFlags(cmd, &d)
	return cmd
}

func newUpdateCommand(opts *RootOptions) *cobra.Command {
	var d portalv1.ReportDraft
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a record; omitted fields keep their stored values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.UpdateReport(ctx, &portalv1.UpdateReportRequest{ID: id, Draft: d})
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
					return writeReports(w, []portalv1.Report{resp.Report})
				})
			})
		},
	}
	addDraftFlags(cmd, &d)
	return cmd
}

func newExportCommand(opts *RootOptions) *cobra.Command {
	var (
		f      portalv1.Filter
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered records as CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.ExportReports(ctx, &portalv1.ExportReportsRequest{Filter: f, Format: format})
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = resp.FileName
				}
				if path == "-" {
					_, err := cmd.OutOrStdout().Write(resp.Data)
					return err
				}
				if err := os.WriteFile(path, resp.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", resp.Rows, path)
				return nil
			})
		},
	}
	addFilterFlags(cmd, &f)
	cmd.Flags().StringVar(&format, "type", "csv", "file type (csv|xlsx)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path; - writes to stdout (default: server file name)")
	return cmd
}
