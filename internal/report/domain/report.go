package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"report-portal/internal/validation"
)

// DateLayout is the calendar-date layout used for SaleDate on the wire and in exports.
const DateLayout = "2006-01-02"

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = validation.ErrInvalid
	// ErrNotFound is returned when an update targets an id absent from the store.
	ErrNotFound = errors.New("report not found")
)

// ValidationError reports a malformed draft field. The operation that returned it made no state change.
type ValidationError = validation.Error

// SalesReport is one statutory sales transaction record.
// Category and Region are open strings; any value is accepted.
type SalesReport struct {
	ID          int64
	ProductName string
	Category    string
	Amount      decimal.Decimal
	SaleDate    time.Time
	Region      string
}

// Fields holds the typed mutable fields of a SalesReport (everything but the id).
type Fields struct {
	ProductName string
	Category    string
	Amount      decimal.Decimal
	SaleDate    time.Time
	Region      string
}

// Fields returns the mutable fields of r.
func (r SalesReport) Fields() Fields {
	return Fields{
		ProductName: r.ProductName,
		Category:    r.Category,
		Amount:      r.Amount,
		SaleDate:    r.SaleDate,
		Region:      r.Region,
	}
}

// WithFields returns r with its mutable fields replaced; the id is preserved.
func (r SalesReport) WithFields(f Fields) SalesReport {
	r.ProductName = f.ProductName
	r.Category = f.Category
	r.Amount = f.Amount
	r.SaleDate = f.SaleDate
	r.Region = f.Region
	return r
}

// Draft is free-form caller input for create and update. Amount and SaleDate are unparsed strings.
type Draft struct {
	ProductName string `json:"productName" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Amount      string `json:"amount"`
	SaleDate    string `json:"saleDate"`
	Region      string `json:"region" validate:"required"`
}

// ParseAmount parses s as a finite, non-negative decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must not be empty"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	return d, nil
}

var dateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseSaleDate accepts YYYY-MM-DD or an ISO-8601 date-time and returns the calendar date at UTC midnight.
func ParseSaleDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, &ValidationError{Field: "saleDate", Reason: fmt.Sprintf("%q is not a calendar date", s)}
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
