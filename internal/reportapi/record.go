// Package reportapi defines the JSON shape of GET /api/report and converts it to and from
// the report domain.
package reportapi

import (
	"encoding/json"
	"fmt"

	"report-portal/internal/report/domain"
)

// Path is the route serving every sales record.
const Path = "/api/report"

// HealthPath answers 204 while the API is up.
const HealthPath = "/healthz"

// WireDateLayout is the date-time layout saleDate is served with.
const WireDateLayout = "2006-01-02T15:04:05"

// Record is one element of the /api/report array. Amount is a JSON number.
type Record struct {
	ID          int64       `json:"id"`
	ProductName string      `json:"productName"`
	Category    string      `json:"category"`
	Amount      json.Number `json:"amount"`
	SaleDate    string      `json:"saleDate"`
	Region      string      `json:"region"`
}

// FromDomain converts r for serving.
func FromDomain(r domain.SalesReport) Record {
	return Record{
		ID:          r.ID,
		ProductName: r.ProductName,
		Category:    r.Category,
		Amount:      json.Number(r.Amount.String()),
		SaleDate:    r.SaleDate.Format(WireDateLayout),
		Region:      r.Region,
	}
}

// ToDomain parses the amount and date of rec.
func (rec Record) ToDomain() (domain.SalesReport, error) {
	amount, err := domain.ParseAmount(rec.Amount.String())
	if err != nil {
		return domain.SalesReport{}, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	date, err := domain.ParseSaleDate(rec.SaleDate)
	if err != nil {
		return domain.SalesReport{}, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	return domain.SalesReport{
		ID:          rec.ID,
		ProductName: rec.ProductName,
		Category:    rec.Category,
		Amount:      amount,
		SaleDate:    date,
		Region:      rec.Region,
	}, nil
}

// FromDomainList converts every record.
func FromDomainList(list []domain.SalesReport) []Record {
	out := make([]Record, len(list))
	for i, r := range list {
		out[i] = FromDomain(r)
	}
	return out
}
