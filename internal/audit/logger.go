package audit

import (
	"context"

	"report-portal/internal/audit/domain"
)

// UnknownIP is recorded when the request context carries no client address.
const UnknownIP = "unknown"

// IPExtractor returns the client IP from the request context (e.g. gRPC metadata or peer).
type IPExtractor func(context.Context) string

// Sink receives every appended entry (e.g. telemetry export). Implementations must not block.
type Sink interface {
	EmitEntry(ctx context.Context, entry domain.Entry)
}

// AuditLogger writes a single audit event. Used by the mutation, ticket, session and sync paths.
type AuditLogger interface {
	LogEvent(ctx context.Context, performedBy string, action domain.Action, details string) domain.Entry
}

// Logger implements AuditLogger on top of a Trail, an optional IP extractor and an optional Sink.
type Logger struct {
	trail       *Trail
	ipExtractor IPExtractor
	sink        Sink
}

// NewLogger returns an AuditLogger that appends to trail and uses ipExtractor for the client IP.
// ipExtractor and sink may be nil; then the IP is recorded as "unknown" and nothing is forwarded.
func NewLogger(trail *Trail, ipExtractor IPExtractor, sink Sink) *Logger {
	return &Logger{trail: trail, ipExtractor: ipExtractor, sink: sink}
}

// LogEvent appends exactly one entry and returns it as stored.
func (l *Logger) LogEvent(ctx context.Context, performedBy string, action domain.Action, details string) domain.Entry {
	ip := UnknownIP
	if l.ipExtractor != nil {
		if v := l.ipExtractor(ctx); v != "" {
			ip = v
		}
	}
	entry := l.trail.Append(domain.Entry{
		Action:      action,
		PerformedBy: performedBy,
		IPAddress:   ip,
		Details:     details,
	})
	if l.sink != nil {
		l.sink.EmitEntry(ctx, entry)
	}
	return entry
}

// Trail returns the underlying trail.
func (l *Logger) Trail() *Trail {
	return l.trail
}
