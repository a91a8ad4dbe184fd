package server

import (
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	portalv1 "report-portal/api/portal/v1"
	healthhandler "report-portal/internal/health/handler"
	"report-portal/internal/logging"
	"report-portal/internal/portal"
	portalhandler "report-portal/internal/portal/handler"
	"report-portal/internal/security"
	"report-portal/internal/server/interceptors"
	"report-portal/internal/telemetry"
)

// PublicMethods are the RPCs callable without a Bearer token.
var PublicMethods = map[string]bool{
	portalv1.PortalService_Login_FullMethodName:       true,
	portalv1.PortalService_SendCode_FullMethodName:    true,
	portalv1.PortalService_VerifyCode_FullMethodName:  true,
	portalv1.PortalService_CancelLogin_FullMethodName: true,
	portalv1.HealthService_HealthCheck_FullMethodName: true,
}

// telemetrySkip are the RPCs that emit no grpc_request event.
var telemetrySkip = map[string]bool{
	portalv1.HealthService_HealthCheck_FullMethodName: true,
}

// Deps holds the dependencies of the gRPC services.
type Deps struct {
	// Registry owns every workspace. Required.
	Registry *portal.Registry
	// Tokens issues and validates access tokens. Required.
	Tokens *security.TokenProvider
	// SyncOnLogin starts a background sync when step-up completes.
	SyncOnLogin bool
	// HealthPinger is used by HealthService for readiness (e.g. the report API client). If nil, the ping is skipped.
	HealthPinger healthhandler.Pinger
	// HealthPolicyChecker is used by HealthService for readiness (e.g. OPA evaluator). If nil, the policy check is skipped.
	HealthPolicyChecker healthhandler.PolicyChecker
	// Telemetry receives one grpc_request event per RPC. If nil, no events are emitted.
	Telemetry telemetry.EventEmitter
	// Log is the server logger. If nil, logs are discarded.
	Log logrus.FieldLogger
	// Instrument adds the otelgrpc stats handler.
	Instrument bool
}

// RegisterServices registers all portal gRPC services with the given server.
//
//   - PortalService → internal/portal/handler
//   - HealthService → internal/health/handler
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	portalv1.RegisterPortalServiceServer(s, portalhandler.NewServer(deps.Registry, deps.Tokens, deps.SyncOnLogin, deps.Log))
	portalv1.RegisterHealthServiceServer(s, healthhandler.NewServer(deps.HealthPinger, deps.HealthPolicyChecker, deps.Log))
}

// NewGRPCServer builds a gRPC server with the interceptor chain logging → auth → telemetry
// and every service registered.
func NewGRPCServer(deps Deps, extra ...grpc.ServerOption) *grpc.Server {
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	log := deps.Log
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			interceptors.LoggingUnary(log.WithField("component", "grpc")),
			interceptors.AuthUnary(deps.Tokens, deps.Registry, PublicMethods),
			interceptors.TelemetryUnary(deps.Telemetry, telemetrySkip, log),
		),
	}
	if deps.Instrument {
		opts = append(opts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}
	opts = append(opts, extra...)
	s := grpc.NewServer(opts...)
	RegisterServices(s, deps)
	return s
}
