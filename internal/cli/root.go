// Package cli implements portalctl, a command-line client for the portal gRPC API.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	portalv1 "report-portal/api/portal/v1"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Addr      string
	Token     string
	Workspace string
	Format    string // "json" | "text"
	Timeout   time.Duration

	dial Dialer
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Dialer opens a connection to addr. The returned func closes it.
type Dialer func(addr string) (grpc.ClientConnInterface, func() error, error)

// DialInsecure connects without TLS, for local development.
func DialInsecure(addr string) (grpc.ClientConnInterface, func() error, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return conn, conn.Close, nil
}

// NewRootCommand creates the portalctl root command. dial may be nil (DialInsecure).
func NewRootCommand(dial Dialer) *cobra.Command {
	if dial == nil {
		dial = DialInsecure
	}
	opts := &RootOptions{dial: dial}

	cmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Report portal command-line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Addr, "addr", envOr("PORTAL_ADDR", "localhost:8080"), "portal gRPC address")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", os.Getenv("PORTAL_TOKEN"), "access token from login")
	cmd.PersistentFlags().StringVar(&opts.Workspace, "workspace", "", "workspace id (login only; empty opens a new one)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "per-command deadline")

	cmd.AddCommand(
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newSyncCommand(opts),
		newHealthCommand(opts),
		newReportsCommand(opts),
		newDashboardCommand(opts),
		newCreateCommand(opts),
		newUpdateCommand(opts),
		newExportCommand(opts),
		newTicketCommand(opts),
		newTicketsCommand(opts),
		newAuditCommand(opts),
	)
	return cmd
}

// call connects, runs fn with a deadline-bound context and closes the connection.
// authed attaches the Bearer token.
func (o *RootOptions) call(cmd *cobra.Command, authed bool, fn func(ctx context.Context, c *portalv1.PortalServiceClient) error) error {
	if authed && o.Token == "" {
		return fmt.Errorf("no access token: run portalctl login and pass --token or set PORTAL_TOKEN")
	}
	conn, closeFn, err := o.dial(o.Addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", o.Addr, err)
	}
	defer func() { _ = closeFn() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), o.Timeout)
	defer cancel()
	if authed {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+o.Token)
	}
	return fn(ctx, portalv1.NewPortalServiceClient(conn))
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
