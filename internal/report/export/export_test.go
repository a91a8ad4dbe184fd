package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"report-portal/internal/report/domain"
)

func records() []domain.SalesReport {
	return []domain.SalesReport{
		{ID: 1, ProductName: "Professional Laptop", Category: "Electronics", Amount: decimal.RequireFromString("1200.00"), SaleDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Region: "North"},
		{ID: 2, ProductName: "Wireless Mouse", Category: "Electronics", Amount: decimal.RequireFromString("25.50"), SaleDate: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), Region: "South"},
	}
}

func TestCSV_Format(t *testing.T) {
	got := CSV(records())
	want := "ID,Product,Category,Amount,Date,Region\n" +
		"1,Professional Laptop,Electronics,1200,2026-02-01,North\n" +
		"2,Wireless Mouse,Electronics,25.5,2026-02-02,South"
	if got != want {
		t.Errorf("CSV =\n%s\nwant\n%s", got, want)
	}
}

func TestCSV_EmptyIsHeaderOnly(t *testing.T) {
	if got := CSV(nil); got != "ID,Product,Category,Amount,Date,Region" {
		t.Errorf("CSV(nil) = %q", got)
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	recs := records()
	lines := strings.Split(CSV(recs), "\n")
	if len(lines)-1 != len(recs) {
		t.Fatalf("rows = %d, want %d", len(lines)-1, len(recs))
	}
	for i, line := range lines[1:] {
		fields := strings.Split(line, ",")
		want := row(recs[i])
		if len(fields) != len(want) {
			t.Fatalf("row %d has %d fields, want %d", i, len(fields), len(want))
		}
		for j := range want {
			if fields[j] != want[j] {
				t.Errorf("row %d field %d = %q, want %q", i, j, fields[j], want[j])
			}
		}
	}
}

func TestCSV_EmbeddedCommaIsNotEscaped(t *testing.T) {
	recs := []domain.SalesReport{{ID: 7, ProductName: "Desk, Oak", Category: "Furniture", Amount: decimal.NewFromInt(1), Region: "West"}}
	line := strings.Split(CSV(recs), "\n")[1]
	if n := len(strings.Split(line, ",")); n != 7 {
		t.Errorf("fields = %d, want 7 (comma splits the name)", n)
	}
}

func TestXLSX_ReadBack(t *testing.T) {
	data, err := XLSX(records())
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(Header, ",") {
		t.Errorf("header = %v", rows[0])
	}
	if rows[2][1] != "Wireless Mouse" || rows[2][3] != "25.5" || rows[2][4] != "2026-02-02" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestRender(t *testing.T) {
	day := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	f, err := Render(FormatCSV, records(), day)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.Name != "Report_Export_2026-03-15.csv" || f.Rows != 2 {
		t.Errorf("file = %s rows %d", f.Name, f.Rows)
	}
	x, err := Render(FormatXLSX, records(), day)
	if err != nil {
		t.Fatalf("Render xlsx: %v", err)
	}
	if x.Name != "Report_Export_2026-03-15.xlsx" || len(x.Data) == 0 {
		t.Errorf("xlsx file = %s (%d bytes)", x.Name, len(x.Data))
	}
	if _, err := Render("pdf", nil, day); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatCSV, "CSV": FormatCSV, " xlsx ": FormatXLSX}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %s, %v, want %s", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}
