// Package domain defines the telemetry event the portal emits to OTel, Kafka and Loki.
package domain

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Event types emitted by the portal.
const (
	EventTypeAudit       = "audit_entry"
	EventTypeGRPCRequest = "grpc_request"
)

// Event is one telemetry record. Metadata values must be JSON-compatible
// (string, bool, float64, int, nil, []any, map[string]any).
type Event struct {
	WorkspaceID string
	SessionID   string
	User        string
	EventType   string
	Source      string
	CreatedAt   time.Time
	Metadata    map[string]any
}

// Marshal encodes e as camelCase JSON with an RFC 3339 createdAt.
func (e *Event) Marshal() ([]byte, error) {
	if e == nil {
		return nil, errors.New("telemetry: nil event")
	}
	fields := map[string]any{
		"workspaceId": e.WorkspaceID,
		"eventType":   e.EventType,
		"source":      e.Source,
	}
	if e.SessionID != "" {
		fields["sessionId"] = e.SessionID
	}
	if e.User != "" {
		fields["user"] = e.User
	}
	if !e.CreatedAt.IsZero() {
		fields["createdAt"] = e.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if len(e.Metadata) > 0 {
		fields["metadata"] = e.Metadata
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("telemetry: encode event: %w", err)
	}
	return protojson.Marshal(s)
}

// MetadataJSON encodes only the metadata map.
func (e *Event) MetadataJSON() ([]byte, error) {
	if e == nil || len(e.Metadata) == 0 {
		return nil, nil
	}
	s, err := structpb.NewStruct(e.Metadata)
	if err != nil {
		return nil, fmt.Errorf("telemetry: encode metadata: %w", err)
	}
	return protojson.Marshal(s)
}

// Unmarshal decodes an event produced by Marshal.
func Unmarshal(b []byte) (*Event, error) {
	var s structpb.Struct
	if err := protojson.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("telemetry: decode event: %w", err)
	}
	m := s.AsMap()
	e := &Event{
		WorkspaceID: stringField(m, "workspaceId"),
		SessionID:   stringField(m, "sessionId"),
		User:        stringField(m, "user"),
		EventType:   stringField(m, "eventType"),
		Source:      stringField(m, "source"),
	}
	if ts := stringField(m, "createdAt"); ts != "" {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("telemetry: decode createdAt: %w", err)
		}
		e.CreatedAt = t
	}
	if md, ok := m["metadata"].(map[string]any); ok {
		e.Metadata = md
	}
	return e, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
