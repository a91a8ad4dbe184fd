package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"100", "100", false},
		{" 25.50 ", "25.5", false},
		{"0", "0", false},
		{"abc", "", true},
		{"", "", true},
		{"-1", "", true},
		{"NaN", "", true},
		{"Infinity", "", true},
		{"12abc", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q) = %s, want error", tt.in, got)
				continue
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseAmount(%q) error = %v, want ErrValidation", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseSaleDate(t *testing.T) {
	want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2026-02-01", "2026-02-01T00:00:00", "2026-02-01T13:45:00Z", "2026-02-01T09:00:00.000Z"} {
		got, err := ParseSaleDate(in)
		if err != nil {
			t.Errorf("ParseSaleDate(%q): %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseSaleDate(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseSaleDate("yesterday"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseSaleDate(yesterday) error = %v, want ErrValidation", err)
	}
}

func TestSalesReport_WithFieldsPreservesID(t *testing.T) {
	r := SalesReport{ID: 7, ProductName: "Bookshelf"}
	got := r.WithFields(Fields{ProductName: "Shelf", Category: "Furniture", Region: "East"})
	if got.ID != 7 {
		t.Errorf("id = %d, want 7", got.ID)
	}
	if got.ProductName != "Shelf" || got.Category != "Furniture" || got.Region != "East" {
		t.Errorf("fields not replaced: %+v", got)
	}
}
