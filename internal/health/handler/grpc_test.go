package handler

import (
	"context"
	"errors"
	"testing"

	portalv1 "report-portal/api/portal/v1"
)

// mockPinger implements Pinger for tests.
type mockPinger struct {
	pingErr error
}

func (m *mockPinger) PingContext(context.Context) error {
	return m.pingErr
}

// mockPolicyChecker implements PolicyChecker for tests.
type mockPolicyChecker struct {
	healthErr error
}

func (m *mockPolicyChecker) HealthCheck(context.Context) error {
	return m.healthErr
}

func TestHealthCheck(t *testing.T) {
	testCases := []struct {
		name   string
		pinger Pinger
		policy PolicyChecker
		want   string
	}{
		{"no checks", nil, nil, StatusServing},
		{"pinger success", &mockPinger{}, nil, StatusServing},
		{"pinger failure", &mockPinger{pingErr: errors.New("connection refused")}, nil, StatusNotServing},
		{"policy success", nil, &mockPolicyChecker{}, StatusServing},
		{"policy failure", nil, &mockPolicyChecker{healthErr: errors.New("rego compile failed")}, StatusNotServing},
		{"pinger ok policy fails", &mockPinger{}, &mockPolicyChecker{healthErr: errors.New("policy error")}, StatusNotServing},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := NewServer(tc.pinger, tc.policy, nil)
			resp, err := srv.HealthCheck(context.Background(), &portalv1.HealthCheckRequest{})
			if err != nil {
				t.Fatalf("HealthCheck must not return a gRPC error: %v", err)
			}
			if resp.Status != tc.want {
				t.Errorf("status = %v, want %v", resp.Status, tc.want)
			}
		})
	}
}
