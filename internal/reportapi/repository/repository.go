// Package repository stores the sales records served by the report API.
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"report-portal/internal/report/domain"
)

// Repository lists and inserts sales records.
type Repository interface {
	// ListReports returns every record ordered by id.
	ListReports(ctx context.Context) ([]domain.SalesReport, error)
	// InsertReports stores records, skipping ids already present. Returns the number inserted.
	InsertReports(ctx context.Context, records []domain.SalesReport) (int, error)
}

// DemoReports returns the seven records a fresh report API serves.
func DemoReports() []domain.SalesReport {
	day := func(d int) time.Time { return time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC) }
	return []domain.SalesReport{
		{ID: 1, ProductName: "Professional Laptop", Category: "Electronics", Amount: decimal.RequireFromString("1200.00"), SaleDate: day(1), Region: "North"},
		{ID: 2, ProductName: "Wireless Mouse", Category: "Electronics", Amount: decimal.RequireFromString("25.50"), SaleDate: day(2), Region: "South"},
		{ID: 3, ProductName: "Designer Desk", Category: "Furniture", Amount: decimal.RequireFromString("450.00"), SaleDate: day(3), Region: "East"},
		{ID: 4, ProductName: "Ergonomic Chair", Category: "Furniture", Amount: decimal.RequireFromString("299.99"), SaleDate: day(4), Region: "West"},
		{ID: 5, ProductName: "Monitor 4K", Category: "Electronics", Amount: decimal.RequireFromString("350.00"), SaleDate: day(5), Region: "North"},
		{ID: 6, ProductName: "USB-C Hub", Category: "Electronics", Amount: decimal.RequireFromString("45.00"), SaleDate: day(6), Region: "South"},
		{ID: 7, ProductName: "Bookshelf", Category: "Furniture", Amount: decimal.RequireFromString("120.00"), SaleDate: day(7), Region: "East"},
	}
}
