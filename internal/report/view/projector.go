// Package view derives filtered tables and aggregates from a Record Store snapshot.
// Every function here is pure: the same snapshot and Filter always yield the same Projection.
package view

import (
	"strings"

	"github.com/shopspring/decimal"

	"report-portal/internal/report/domain"
)

// AllCategories is the category filter value that disables category filtering.
const AllCategories = "All"

// Filter is the transient filter state of a view request.
type Filter struct {
	Category string
	Search   string
}

// Bucket is one aggregate entry (category or region) with its summed amount.
type Bucket struct {
	Name  string
	Total decimal.Decimal
}

// Projection is the derived read view for one (snapshot, Filter) pair.
type Projection struct {
	// Records is the filtered subset, in canonical order.
	Records []domain.SalesReport
	// ByCategory and ByRegion sum amounts over the whole snapshot, not the filtered subset.
	ByCategory []Bucket
	ByRegion   []Bucket
	// TotalSales and AverageTicket are computed over Records only.
	TotalSales    decimal.Decimal
	AverageTicket decimal.Decimal
	Count         int
	// Categories is "All" followed by the distinct categories of the snapshot.
	Categories []string
}

// Project computes the full projection.
func Project(snapshot []domain.SalesReport, f Filter) Projection {
	records := FilterRecords(snapshot, f)
	total, avg := Totals(records)
	return Projection{
		Records:       records,
		ByCategory:    AggregateBy(snapshot, func(r domain.SalesReport) string { return r.Category }),
		ByRegion:      AggregateBy(snapshot, func(r domain.SalesReport) string { return r.Region }),
		TotalSales:    total,
		AverageTicket: avg,
		Count:         len(records),
		Categories:    Categories(snapshot),
	}
}

// FilterRecords keeps records matching the category (unless "All" or empty) and, when Search is
// non-empty, whose ProductName or Region contains it case-insensitively.
func FilterRecords(snapshot []domain.SalesReport, f Filter) []domain.SalesReport {
	out := make([]domain.SalesReport, 0, len(snapshot))
	term := strings.ToLower(f.Search)
	for _, r := range snapshot {
		if f.Category != "" && f.Category != AllCategories && r.Category != f.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.ProductName), term) &&
			!strings.Contains(strings.ToLower(r.Region), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// AggregateBy sums amounts per key. Buckets appear in order of the key's first occurrence.
func AggregateBy(snapshot []domain.SalesReport, key func(domain.SalesReport) string) []Bucket {
	index := make(map[string]int)
	var out []Bucket
	for _, r := range snapshot {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Bucket{Name: k, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(r.Amount)
	}
	return out
}

// Totals returns the summed amount and the average per record; the average is 0 for no records.
func Totals(records []domain.SalesReport) (total, average decimal.Decimal) {
	total = decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	if len(records) == 0 {
		return total, decimal.Zero
	}
	return total, total.Div(decimal.NewFromInt(int64(len(records))))
}

// Categories returns "All" followed by each distinct category in first-occurrence order.
func Categories(snapshot []domain.SalesReport) []string {
	out := []string{AllCategories}
	seen := make(map[string]struct{})
	for _, r := range snapshot {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}
