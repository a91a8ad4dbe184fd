package handler

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	portalv1 "report-portal/api/portal/v1"
	"report-portal/internal/policy/engine"
	"report-portal/internal/portal"
	"report-portal/internal/scheduler"
	"report-portal/internal/session"
)

type fixedSecret string

func (s fixedSecret) Matches(password string) bool { return string(s) == password }

func newTestServer(t *testing.T) (*Server, *portal.Registry) {
	t.Helper()
	policy, err := engine.NewOPAEvaluator([]string{"guest"}, "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	r := portal.NewRegistry(portal.Config{
		Gate: session.Config{LogoutDelay: time.Second, StepUpTTL: time.Minute},
	}, portal.Deps{
		Policy:    policy,
		Secret:    fixedSecret("admin"),
		AfterFunc: scheduler.NewManual().AfterFunc,
	})
	t.Cleanup(r.Close)
	return NewServer(r, nil, false, nil), r
}

func TestLogin_RejectedAttemptsDoNotAllocateWorkspaces(t *testing.T) {
	s, r := newTestServer(t)
	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		_, err := s.Login(ctx, &portalv1.LoginRequest{Username: "mallory", Password: "x"})
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("attempt %d: code = %v, want Unauthenticated", i, status.Code(err))
		}
	}
	if r.Len() != 0 {
		t.Errorf("registry len = %d after rejected logins, want 0", r.Len())
	}

	resp, err := s.Login(ctx, &portalv1.LoginRequest{Username: "guest", Password: "admin"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.WorkspaceID == "" || resp.ChallengeID == "" {
		t.Errorf("response = %+v, want workspace and challenge ids", resp)
	}
	if r.Len() != 1 {
		t.Errorf("registry len = %d, want 1", r.Len())
	}
}

func TestLogin_UnknownWorkspace(t *testing.T) {
	s, r := newTestServer(t)
	_, err := s.Login(context.Background(), &portalv1.LoginRequest{WorkspaceID: "gone", Username: "guest", Password: "admin"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("code = %v, want NotFound", status.Code(err))
	}
	if r.Len() != 0 {
		t.Errorf("registry len = %d, want 0", r.Len())
	}
}
