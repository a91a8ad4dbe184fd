package interceptors

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"report-portal/internal/portal"
	"report-portal/internal/security"
)

const bearerPrefix = "bearer "

// Workspaces resolves the workspace named by a token.
type Workspaces interface {
	Get(id string) (*portal.Workspace, error)
}

// AuthUnary returns a unary server interceptor that validates the Bearer access token of protected
// RPCs and sets the caller Identity and Workspace in context. A token is honoured only while its
// session is the live logged-in session of its workspace.
// publicMethods is the set of full method names that do not require a Bearer token.
func AuthUnary(tokens *security.TokenProvider, workspaces Workspaces, publicMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}
		token := extractBearer(ctx)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing or invalid authorization")
		}
		id, err := tokens.ValidateAccess(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "missing or invalid authorization")
		}
		ws, err := workspaces.Get(id.WorkspaceID)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "workspace not found")
		}
		sess, err := ws.Authorize(id.SessionID)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "session is not logged in")
		}
		ctx = WithIdentity(ctx, Identity{WorkspaceID: ws.ID(), SessionID: sess.ID, User: sess.CurrentUser})
		ctx = WithWorkspace(ctx, ws)
		return handler(ctx, req)
	}
}

// extractBearer returns the Bearer token from ctx metadata, or "" if missing or malformed.
func extractBearer(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	v := strings.TrimSpace(vals[0])
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
