package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	portalv1 "report-portal/api/portal/v1"
)

// render writes v as indented JSON, or calls text for the text format.
func (o *RootOptions) render(w io.Writer, v any, text func(io.Writer) error) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(w)
}

func table(w io.Writer, header string, rows func(tw io.Writer)) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

func writeReports(w io.Writer, reports []portalv1.Report) error {
	return table(w, "ID\tPRODUCT\tCATEGORY\tAMOUNT\tDATE\tREGION", func(tw io.Writer) {
		for _, r := range reports {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.ProductName, r.Category, r.Amount, r.SaleDate, r.Region)
		}
	})
}

func writeBuckets(w io.Writer, title string, buckets []portalv1.Bucket) error {
	fmt.Fprintln(w, title)
	return table(w, "  NAME\tTOTAL", func(tw io.Writer) {
		for _, b := range buckets {
			fmt.Fprintf(tw, "  %s\t%s\n", b.Name, b.Total)
		}
	})
}

func writeTickets(w io.Writer, tickets []portalv1.Ticket, highlighted string) error {
	return table(w, "ID\tSUBJECT\tCATEGORY\tSTATUS\tTAG", func(tw io.Writer) {
		for _, t := range tickets {
			mark := ""
			if t.ID == highlighted {
				mark = " *"
			}
			fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\t%s\n", t.ID, mark, t.Subject, t.Category, t.Status, t.ColorTag)
		}
	})
}
