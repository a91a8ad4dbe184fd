package loki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"report-portal/internal/telemetry/domain"
)

func capturePush(t *testing.T, status int) (*httptest.Server, *PushRequest) {
	t.Helper()
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/loki/api/v1/push" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode push body: %v", err)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestNewClient_EmptyURL(t *testing.T) {
	if _, err := NewClient("  ", 0); err == nil {
		t.Error("NewClient should reject an empty base URL")
	}
}

func TestPushEventJSON_LabelsAndTimestamp(t *testing.T) {
	srv, got := capturePush(t, http.StatusNoContent)
	c, err := NewClient(srv.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	created := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	raw, err := (&domain.Event{
		WorkspaceID: "ws 1",
		EventType:   domain.EventTypeAudit,
		Source:      "audit",
		CreatedAt:   created,
	}).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if err := c.PushEventJSON(context.Background(), raw); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}
	if len(got.Streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(got.Streams))
	}
	s := got.Streams[0]
	want := map[string]string{"job": Job, "workspace_id": "ws_1", "event_type": domain.EventTypeAudit, "source": "audit"}
	for k, v := range want {
		if s.Stream[k] != v {
			t.Errorf("label %q = %q, want %q", k, s.Stream[k], v)
		}
	}
	if s.Values[0][0] != strconv.FormatInt(created.UnixNano(), 10) {
		t.Errorf("timestamp = %s", s.Values[0][0])
	}
	if s.Values[0][1] != string(raw) {
		t.Errorf("line = %s, want raw event", s.Values[0][1])
	}
}

func TestPushEventJSON_RawFallback(t *testing.T) {
	srv, got := capturePush(t, http.StatusNoContent)
	c, _ := NewClient(srv.URL, time.Second)
	fixed := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	c.nowF = func() time.Time { return fixed }

	if err := c.PushEventJSON(context.Background(), []byte("not json")); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}
	s := got.Streams[0]
	if len(s.Stream) != 1 || s.Stream["job"] != Job {
		t.Errorf("labels = %v, want only job", s.Stream)
	}
	if s.Values[0][0] != strconv.FormatInt(fixed.UnixNano(), 10) {
		t.Errorf("timestamp = %s", s.Values[0][0])
	}
}

func TestPush_Non2xx(t *testing.T) {
	srv, _ := capturePush(t, http.StatusBadRequest)
	c, _ := NewClient(srv.URL, time.Second)
	if err := c.Push(context.Background(), time.Now(), "line", nil); err == nil {
		t.Error("Push should fail on 400")
	}
}
