// Package export renders sales records as CSV or XLSX downloads.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"report-portal/internal/report/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for a format other than csv or xlsx.
var ErrUnknownFormat = errors.New("unknown export format")

// Header is the column row shared by both formats.
var Header = []string{"ID", "Product", "Category", "Amount", "Date", "Region"}

const sheetName = "Sheet1"

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

// ParseFormat maps a case-insensitive name to a Format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FileName returns Report_Export_<YYYY-MM-DD>.<ext> for the given day.
func FileName(f Format, day time.Time) string {
	return fmt.Sprintf("Report_Export_%s.%s", day.Format(domain.DateLayout), f)
}

// Render renders records in format f, named after day.
func Render(f Format, records []domain.SalesReport, day time.Time) (File, error) {
	switch f {
	case FormatCSV:
		return File{
			Name:        FileName(f, day),
			ContentType: "text/csv;charset=utf-8",
			Data:        []byte(CSV(records)),
			Rows:        len(records),
		}, nil
	case FormatXLSX:
		data, err := XLSX(records)
		if err != nil {
			return File{}, err
		}
		return File{
			Name:        FileName(f, day),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
			Rows:        len(records),
		}, nil
	}
	return File{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// CSV joins the header and one row per record with "\n". Fields are written as-is:
// an embedded comma is not quoted and splits the field on read.
func CSV(records []domain.SalesReport) string {
	rows := make([]string, 0, len(records)+1)
	rows = append(rows, strings.Join(Header, ","))
	for _, r := range records {
		rows = append(rows, strings.Join(row(r), ","))
	}
	return strings.Join(rows, "\n")
}

func row(r domain.SalesReport) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.ProductName,
		r.Category,
		r.Amount.String(),
		r.SaleDate.Format(domain.DateLayout),
		r.Region,
	}
}

// XLSX writes the records to a single-sheet workbook. Amounts are numeric cells.
func XLSX(records []domain.SalesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	for i, r := range records {
		rowNo := i + 2
		values := []any{
			r.ID,
			r.ProductName,
			r.Category,
			r.Amount.InexactFloat64(),
			r.SaleDate.Format(domain.DateLayout),
			r.Region,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNo)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
