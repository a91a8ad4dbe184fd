package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"report-portal/internal/reportapi"
)

func TestFetchReports_DecodesServedArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/report" {
			t.Errorf("path = %s, want /api/report", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"productName":"Professional Laptop","category":"Electronics","amount":1200.00,"saleDate":"2026-02-01T00:00:00","region":"North"},
			{"id":2,"productName":"Wireless Mouse","category":"Electronics","amount":25.50,"saleDate":"2026-02-02","region":"South"}
		]`))
	}))
	defer srv.Close()

	got, err := New(srv.URL+"/", 0).FetchReports(context.Background())
	if err != nil {
		t.Fatalf("FetchReports: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[1].Amount.Equal(decimal.RequireFromString("25.5")) {
		t.Errorf("amount = %s, want 25.5", got[1].Amount)
	}
	if got[0].SaleDate.Format("2006-01-02") != "2026-02-01" {
		t.Errorf("date = %v", got[0].SaleDate)
	}
}

func TestFetchReports_TransportErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"message":"boom"}`},
		{"not json", http.StatusOK, `<html>`},
		{"bad amount", http.StatusOK, `[{"id":1,"amount":"abc","saleDate":"2026-02-01"}]`},
		{"bad date", http.StatusOK, `[{"id":1,"amount":1,"saleDate":"soon"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, 0).FetchReports(context.Background())
			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("err = %v, want *TransportError", err)
			}
		})
	}
}

func TestFetchReports_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, 0).FetchReports(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
	if te.Unwrap() == nil {
		t.Error("TransportError should wrap the cause")
	}
}

func TestPingContext_UsesReportRoute(t *testing.T) {
	// A backend that only serves the report route, with no health endpoint.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != reportapi.Path {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if err := New(srv.URL+"/", 0).PingContext(context.Background()); err != nil {
		t.Errorf("PingContext: %v", err)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()
	var te *TransportError
	if err := New(down.URL, 0).PingContext(context.Background()); !errors.As(err, &te) {
		t.Errorf("err = %v, want *TransportError", err)
	}
}
