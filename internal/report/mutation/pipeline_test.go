package mutation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"report-portal/internal/audit"
	auditdomain "report-portal/internal/audit/domain"
	"report-portal/internal/report/domain"
	"report-portal/internal/report/store"
	sessiondomain "report-portal/internal/session/domain"
)

func newPipeline(t *testing.T) (*Pipeline, *store.Store, *audit.Trail) {
	t.Helper()
	s := store.New()
	err := s.Load([]domain.SalesReport{
		{ID: 1, ProductName: "Professional Laptop", Category: "Electronics", Amount: decimal.RequireFromString("1200"), SaleDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Region: "North"},
		{ID: 2, ProductName: "Wireless Mouse", Category: "Electronics", Amount: decimal.RequireFromString("25.50"), SaleDate: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), Region: "South"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	trail := audit.NewTrail(nil)
	p := NewPipeline(s, audit.NewLogger(trail, nil, nil), nil)
	p.nowF = func() time.Time { return time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC) }
	return p, s, trail
}

var guest = &sessiondomain.Session{ID: "s1", CurrentUser: "guest", IsAuthenticated: true}

func TestPipeline_CreateAssignsIDAndLogs(t *testing.T) {
	p, s, trail := newPipeline(t)
	out, err := p.Create(context.Background(), guest, domain.Draft{
		ProductName: "Office Chair", Category: "Furniture", Amount: "150.00", SaleDate: "2026-02-03", Region: "East",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.Stage != StageLogged {
		t.Errorf("stage = %s, want %s", out.Stage, StageLogged)
	}
	if out.Report.ID != 3 {
		t.Errorf("id = %d, want 3", out.Report.ID)
	}
	if !out.Report.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("amount = %s, want 150", out.Report.Amount)
	}
	if first := s.Snapshot()[0]; first.ID != 3 {
		t.Errorf("first record = %d, want 3", first.ID)
	}
	entries := trail.Entries()
	if len(entries) != 1 {
		t.Fatalf("trail len = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Action != auditdomain.ActionDataCreate || e.PerformedBy != "guest" {
		t.Errorf("entry = %+v", e)
	}
	if e.Details != "New statutory registry entry created ID:3 (Office Chair)" {
		t.Errorf("details = %q", e.Details)
	}
}

func TestPipeline_CreateDefaultsSaleDateToToday(t *testing.T) {
	p, _, _ := newPipeline(t)
	out, err := p.Create(context.Background(), guest, domain.Draft{ProductName: "Desk", Category: "Furniture", Amount: "80", Region: "West"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !out.Report.SaleDate.Equal(want) {
		t.Errorf("sale date = %v, want %v", out.Report.SaleDate, want)
	}
}

func TestPipeline_CreateRejections(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.Draft
	}{
		{"missing name", domain.Draft{Category: "c", Amount: "1", Region: "r"}},
		{"missing category", domain.Draft{ProductName: "p", Amount: "1", Region: "r"}},
		{"missing region", domain.Draft{ProductName: "p", Category: "c", Amount: "1"}},
		{"missing amount", domain.Draft{ProductName: "p", Category: "c", Region: "r"}},
		{"non-numeric amount", domain.Draft{ProductName: "p", Category: "c", Amount: "abc", Region: "r"}},
		{"negative amount", domain.Draft{ProductName: "p", Category: "c", Amount: "-1", Region: "r"}},
		{"bad date", domain.Draft{ProductName: "p", Category: "c", Amount: "1", Region: "r", SaleDate: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, s, trail := newPipeline(t)
			out, err := p.Create(context.Background(), guest, tt.draft)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if out.Stage != StageRejected {
				t.Errorf("stage = %s, want %s", out.Stage, StageRejected)
			}
			if s.Len() != 2 || trail.Len() != 0 {
				t.Errorf("state changed: store=%d trail=%d", s.Len(), trail.Len())
			}
		})
	}
}

func TestPipeline_UpdateMergesAndLogs(t *testing.T) {
	p, s, trail := newPipeline(t)
	out, err := p.Update(context.Background(), guest, 2, domain.Draft{Amount: "30"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := s.Get(2)
	if !got.Amount.Equal(decimal.NewFromInt(30)) {
		t.Errorf("amount = %s, want 30", got.Amount)
	}
	if got.ProductName != "Wireless Mouse" || got.Region != "South" || got.Category != "Electronics" {
		t.Errorf("unchanged fields were overwritten: %+v", got)
	}
	if out.Report.ID != 2 {
		t.Errorf("id = %d, want 2", out.Report.ID)
	}
	entries := trail.Entries()
	if len(entries) != 1 || entries[0].Action != auditdomain.ActionDataUpdate {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Details != "Updated registry record ID:2 (Wireless Mouse)" {
		t.Errorf("details = %q", entries[0].Details)
	}
}

func TestPipeline_UpdateBadAmountLeavesStateUnchanged(t *testing.T) {
	p, s, trail := newPipeline(t)
	before, _ := s.Get(2)
	_, err := p.Update(context.Background(), guest, 2, domain.Draft{Amount: "abc"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	after, _ := s.Get(2)
	if !after.Amount.Equal(before.Amount) || after.ProductName != before.ProductName {
		t.Errorf("record changed: %+v -> %+v", before, after)
	}
	if trail.Len() != 0 {
		t.Errorf("trail len = %d, want 0", trail.Len())
	}
}

func TestPipeline_UpdateMissingID(t *testing.T) {
	p, _, trail := newPipeline(t)
	out, err := p.Update(context.Background(), guest, 42, domain.Draft{Amount: "1"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if out.Stage != StageRejected || trail.Len() != 0 {
		t.Errorf("stage = %s trail = %d", out.Stage, trail.Len())
	}
	if !IsRejection(err) {
		t.Error("IsRejection = false, want true")
	}
}

func TestPipeline_AuditLengthMatchesSuccessfulOps(t *testing.T) {
	p, _, trail := newPipeline(t)
	ctx := context.Background()
	ok := 0
	drafts := []domain.Draft{
		{ProductName: "a", Category: "c", Amount: "1", Region: "r"},
		{ProductName: "b", Category: "c", Amount: "x", Region: "r"},
		{ProductName: "c", Category: "c", Amount: "2.5", Region: "r"},
	}
	for _, d := range drafts {
		if _, err := p.Create(ctx, guest, d); err == nil {
			ok++
		}
	}
	if _, err := p.Update(ctx, guest, 1, domain.Draft{Region: "West"}); err == nil {
		ok++
	}
	if _, err := p.Update(ctx, guest, 99, domain.Draft{}); err == nil {
		ok++
	}
	if trail.Len() != ok || ok != 3 {
		t.Errorf("trail len = %d, successes = %d, want 3", trail.Len(), ok)
	}
}
