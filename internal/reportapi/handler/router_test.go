package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"report-portal/internal/report/domain"
	"report-portal/internal/reportapi"
	"report-portal/internal/reportapi/client"
	"report-portal/internal/reportapi/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingRepo struct{}

func (failingRepo) ListReports(context.Context) ([]domain.SalesReport, error) {
	return nil, errors.New("db down")
}

func (failingRepo) InsertReports(context.Context, []domain.SalesReport) (int, error) {
	return 0, errors.New("db down")
}

func serve(t *testing.T, h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ListReports(t *testing.T) {
	r := NewRouter(repository.NewMemoryRepository(repository.DemoReports()...), nil)
	rec := serve(t, r, http.MethodGet, "/api/report", map[string]string{"Origin": "http://localhost:3000"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	var body []reportapi.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 7 {
		t.Fatalf("records = %d, want 7", len(body))
	}
	if body[1].Amount.String() != "25.5" || body[1].SaleDate != "2026-02-02T00:00:00" {
		t.Errorf("record 2 = %+v", body[1])
	}
}

func TestRouter_OptionsReturnsNoContent(t *testing.T) {
	r := NewRouter(repository.NewMemoryRepository(), nil)
	for _, path := range []string{"/api/report", "/anything"} {
		rec := serve(t, r, http.MethodOptions, path, nil)
		if rec.Code != http.StatusNoContent {
			t.Errorf("OPTIONS %s status = %d, want 204", path, rec.Code)
		}
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := NewRouter(repository.NewMemoryRepository(), nil)
	rec := serve(t, r, http.MethodGet, "/api/other", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if rec.Body.String() != `{"message":"Not Found"}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRouter_RepositoryError(t *testing.T) {
	r := NewRouter(failingRepo{}, nil)
	rec := serve(t, r, http.MethodGet, "/api/report", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRouter_ClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(NewRouter(repository.NewMemoryRepository(repository.DemoReports()...), nil))
	defer srv.Close()

	got, err := client.New(srv.URL, 0).FetchReports(context.Background())
	if err != nil {
		t.Fatalf("FetchReports: %v", err)
	}
	want := repository.DemoReports()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || !got[i].Amount.Equal(want[i].Amount) || !got[i].SaleDate.Equal(want[i].SaleDate) {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
