package interceptors

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"report-portal/internal/audit"
	"report-portal/internal/telemetry"
	"report-portal/internal/telemetry/domain"
)

// TelemetryUnary returns a unary server interceptor that emits a grpc_request event after each RPC.
// Best-effort: failures are logged and do not fail the RPC. If emitter is nil, the interceptor no-ops.
// skipMethods is the set of full method names to not emit (e.g. HealthCheck).
func TelemetryUnary(emitter telemetry.EventEmitter, skipMethods map[string]bool, log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if emitter == nil || skipMethods[info.FullMethod] {
			return resp, err
		}
		telemetry.EmitAsync(log, emitter, ctx, RequestEvent(ctx, info.FullMethod, status.Code(err).String(), time.Since(start)))
		return resp, err
	}
}

// RequestEvent builds the grpc_request event of one finished RPC.
func RequestEvent(ctx context.Context, fullMethod, code string, elapsed time.Duration) *domain.Event {
	ar := audit.ParseFullMethod(fullMethod)
	id, _ := GetIdentity(ctx)
	return &domain.Event{
		WorkspaceID: id.WorkspaceID,
		SessionID:   id.SessionID,
		User:        id.User,
		EventType:   domain.EventTypeGRPCRequest,
		Source:      "grpc_interceptor",
		CreatedAt:   time.Now().UTC(),
		Metadata: map[string]any{
			"fullMethod": fullMethod,
			"action":     ar.Action,
			"resource":   ar.Resource,
			"statusCode": code,
			"durationMs": elapsed.Milliseconds(),
			"clientIp":   ClientIP(ctx),
		},
	}
}
