package interceptors

import (
	"context"

	"report-portal/internal/portal"
)

type contextKey struct{ name string }

var (
	identityKey  = contextKey{"identity"}
	workspaceKey = contextKey{"workspace"}
)

// Identity is the authenticated caller of a protected RPC.
type Identity struct {
	WorkspaceID string
	SessionID   string
	User        string
}

// WithIdentity returns a context carrying id. Handlers read it via GetIdentity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the caller identity and true if set; otherwise the zero Identity, false.
func GetIdentity(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(identityKey).(Identity)
	return v, ok
}

// WithWorkspace returns a context carrying the caller's workspace.
func WithWorkspace(ctx context.Context, w *portal.Workspace) context.Context {
	return context.WithValue(ctx, workspaceKey, w)
}

// GetWorkspace returns the workspace set by the auth interceptor, or nil, false.
func GetWorkspace(ctx context.Context) (*portal.Workspace, bool) {
	v, ok := ctx.Value(workspaceKey).(*portal.Workspace)
	return v, ok && v != nil
}
