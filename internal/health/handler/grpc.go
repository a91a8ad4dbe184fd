package handler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	portalv1 "report-portal/api/portal/v1"
	"report-portal/internal/logging"
)

const (
	StatusServing    = "SERVING"
	StatusNotServing = "NOT_SERVING"
)

// checkTimeout bounds each readiness probe.
const checkTimeout = 2 * time.Second

// Pinger checks a dependency for readiness (e.g. the report API client).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker checks the access policy engine (e.g. the OPA evaluator).
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server implements HealthService for readiness/liveness.
type Server struct {
	portalv1.UnimplementedHealthServiceServer
	pinger Pinger
	policy PolicyChecker
	log    logrus.FieldLogger
}

// NewServer returns a Health gRPC server. pinger and policy may be nil; then that check is skipped.
func NewServer(pinger Pinger, policy PolicyChecker, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	return &Server{pinger: pinger, policy: policy, log: log}
}

// HealthCheck returns SERVING when every configured check passes. A failing check reports
// NOT_SERVING without a gRPC error so load balancers can read the status.
func (s *Server) HealthCheck(ctx context.Context, _ *portalv1.HealthCheckRequest) (*portalv1.HealthCheckResponse, error) {
	if s.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := s.pinger.PingContext(pingCtx)
		cancel()
		if err != nil {
			logging.LogError(s.log, "health", "HealthCheck", "report API ping", nil, err)
			return &portalv1.HealthCheckResponse{Status: StatusNotServing}, nil
		}
	}
	if s.policy != nil {
		policyCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := s.policy.HealthCheck(policyCtx)
		cancel()
		if err != nil {
			logging.LogError(s.log, "health", "HealthCheck", "policy engine", nil, err)
			return &portalv1.HealthCheckResponse{Status: StatusNotServing}, nil
		}
	}
	return &portalv1.HealthCheckResponse{Status: StatusServing}, nil
}
