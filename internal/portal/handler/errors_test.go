package handler

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"report-portal/internal/portal"
	"report-portal/internal/report/domain"
	"report-portal/internal/report/export"
	"report-portal/internal/report/store"
	"report-portal/internal/reportapi/client"
	"report-portal/internal/session"
	"report-portal/internal/ticket"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"transport", &client.TransportError{URL: "http://x/api/report", Err: errors.New("refused")}, codes.Unavailable},
		{"rejected payload", &client.TransportError{URL: "http://x/api/report", Err: &domain.ValidationError{Field: "id"}}, codes.Unavailable},
		{"duplicate payload", &client.TransportError{URL: "http://x/api/report", Err: fmt.Errorf("%w: 1", store.ErrDuplicateID)}, codes.Unavailable},
		{"validation", &domain.ValidationError{Field: "amount", Reason: "not a number"}, codes.InvalidArgument},
		{"wrapped validation", fmt.Errorf("create: %w", &domain.ValidationError{Field: "saleDate"}), codes.InvalidArgument},
		{"format", export.ErrUnknownFormat, codes.InvalidArgument},
		{"not found", domain.ErrNotFound, codes.NotFound},
		{"workspace", portal.ErrWorkspaceNotFound, codes.NotFound},
		{"challenge", session.ErrChallengeNotFound, codes.NotFound},
		{"credentials", session.ErrInvalidCredentials, codes.Unauthenticated},
		{"not authenticated", portal.ErrNotAuthenticated, codes.Unauthenticated},
		{"quota", &ticket.QuotaError{Quota: 3}, codes.ResourceExhausted},
		{"state", session.ErrInvalidState, codes.FailedPrecondition},
		{"ids", ticket.ErrNoFreeID, codes.FailedPrecondition},
		{"superseded", portal.ErrSyncSuperseded, codes.Aborted},
		{"unknown", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(toStatus(tt.err)); got != tt.want {
				t.Errorf("code = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToStatus_PassThrough(t *testing.T) {
	if toStatus(nil) != nil {
		t.Error("toStatus(nil) should be nil")
	}
	in := status.Error(codes.PermissionDenied, "denied")
	if got := toStatus(in); got != in {
		t.Errorf("status error rewritten: %v", got)
	}
}

func TestToStatus_InternalHidesMessage(t *testing.T) {
	st := status.Convert(toStatus(errors.New("db password leaked")))
	if st.Message() != "internal error" {
		t.Errorf("message = %q", st.Message())
	}
}

func TestToStatus_QuotaNotice(t *testing.T) {
	st := status.Convert(toStatus(&ticket.QuotaError{Quota: 3}))
	want := "For this demo, we allow 3 tickets to be submitted. Thanks for trying"
	if st.Message() != want {
		t.Errorf("message = %q, want %q", st.Message(), want)
	}
}
