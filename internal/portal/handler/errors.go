package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"report-portal/internal/portal"
	"report-portal/internal/report/domain"
	"report-portal/internal/report/export"
	"report-portal/internal/reportapi/client"
	"report-portal/internal/session"
	"report-portal/internal/ticket"
)

// toStatus maps engine errors to gRPC status errors. Unknown errors become Internal.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var te *client.TransportError
	switch {
	case errors.As(err, &te):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, domain.ErrValidation), errors.Is(err, export.ErrUnknownFormat):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, portal.ErrWorkspaceNotFound), errors.Is(err, session.ErrChallengeNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, portal.ErrNotAuthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, ticket.ErrQuotaExceeded):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, session.ErrInvalidState), errors.Is(err, ticket.ErrNoFreeID):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, portal.ErrSyncSuperseded):
		return status.Error(codes.Aborted, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
