package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"report-portal/internal/audit/domain"
)

// mockSink implements Sink for tests.
type mockSink struct {
	mu      sync.Mutex
	entries []domain.Entry
}

func (m *mockSink) EmitEntry(ctx context.Context, e domain.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLogger_LogEvent_Success(t *testing.T) {
	trail := NewTrail(fixedClock(time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)))
	ipExtractor := func(ctx context.Context) string {
		return "192.168.1.1"
	}
	sink := &mockSink{}
	logger := NewLogger(trail, ipExtractor, sink)

	got := logger.LogEvent(context.Background(), "guest", domain.ActionLogin, "Successful session initialization for guest")

	if trail.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", trail.Len())
	}
	entry := trail.Entries()[0]
	if entry != got {
		t.Errorf("stored entry = %+v, returned %+v", entry, got)
	}
	if entry.PerformedBy != "guest" {
		t.Errorf("performed_by = %q, want %q", entry.PerformedBy, "guest")
	}
	if entry.Action != domain.ActionLogin {
		t.Errorf("action = %q, want %q", entry.Action, domain.ActionLogin)
	}
	if entry.IPAddress != "192.168.1.1" {
		t.Errorf("ip = %q, want %q", entry.IPAddress, "192.168.1.1")
	}
	if entry.Timestamp != "2026-02-01 09:30:00" {
		t.Errorf("timestamp = %q, want %q", entry.Timestamp, "2026-02-01 09:30:00")
	}
	if entry.ID == 0 {
		t.Error("entry ID should be set")
	}
	if len(sink.entries) != 1 || sink.entries[0] != entry {
		t.Errorf("sink entries = %+v, want the stored entry", sink.entries)
	}
}

func TestLogger_LogEvent_NilIPExtractor(t *testing.T) {
	trail := NewTrail(nil)
	logger := NewLogger(trail, nil, nil)

	logger.LogEvent(context.Background(), "Administrator", domain.ActionDataExport, "Exported 0 statutory records as CSV")

	if trail.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", trail.Len())
	}
	if ip := trail.Entries()[0].IPAddress; ip != UnknownIP {
		t.Errorf("ip = %q, want %q", ip, UnknownIP)
	}
}

func TestLogger_LogEvent_EmptyIPFallsBackToUnknown(t *testing.T) {
	trail := NewTrail(nil)
	logger := NewLogger(trail, func(context.Context) string { return "" }, nil)

	logger.LogEvent(context.Background(), "guest", domain.ActionReportSync, "")

	if ip := trail.Entries()[0].IPAddress; ip != UnknownIP {
		t.Errorf("ip = %q, want %q", ip, UnknownIP)
	}
}
