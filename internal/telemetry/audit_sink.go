package telemetry

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	auditdomain "report-portal/internal/audit/domain"
	"report-portal/internal/telemetry/domain"
)

// AuditSink forwards appended audit entries of one workspace as telemetry events.
type AuditSink struct {
	emitter     EventEmitter
	workspaceID string
	log         logrus.FieldLogger
	nowF        func() time.Time
}

// NewAuditSink returns a sink for workspaceID. A nil emitter yields a nil sink, which callers treat as disabled.
func NewAuditSink(emitter EventEmitter, workspaceID string, log logrus.FieldLogger) *AuditSink {
	if emitter == nil {
		return nil
	}
	return &AuditSink{emitter: emitter, workspaceID: workspaceID, log: log, nowF: time.Now}
}

// EmitEntry implements audit.Sink. It never blocks the caller.
func (s *AuditSink) EmitEntry(ctx context.Context, entry auditdomain.Entry) {
	if s == nil {
		return
	}
	EmitAsync(s.log, s.emitter, ctx, EntryEvent(s.workspaceID, entry, s.nowF().UTC()))
}

// EntryEvent converts an audit entry into a telemetry event.
func EntryEvent(workspaceID string, entry auditdomain.Entry, at time.Time) *domain.Event {
	return &domain.Event{
		WorkspaceID: workspaceID,
		User:        entry.PerformedBy,
		EventType:   domain.EventTypeAudit,
		Source:      "audit",
		CreatedAt:   at,
		Metadata: map[string]any{
			"id":        entry.ID,
			"timestamp": entry.Timestamp,
			"action":    string(entry.Action),
			"ipAddress": entry.IPAddress,
			"details":   entry.Details,
		},
	}
}
