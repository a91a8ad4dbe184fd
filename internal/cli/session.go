package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	portalv1 "report-portal/api/portal/v1"
)

// LoginResult is what login prints.
type LoginResult struct {
	WorkspaceID string `json:"workspaceId"`
	SessionID   string `json:"sessionId"`
	User        string `json:"user"`
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
	Syncing     bool   `json:"syncing"`
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and complete step-up; prints the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, false, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				lr, err := c.Login(ctx, &portalv1.LoginRequest{WorkspaceID: opts.Workspace, Username: username, Password: password})
				if err != nil {
					return fmt.Errorf("login: %w", err)
				}
				if _, err := c.SendCode(ctx, &portalv1.SendCodeRequest{WorkspaceID: lr.WorkspaceID, ChallengeID: lr.ChallengeID}); err != nil {
					return fmt.Errorf("send code: %w", err)
				}
				vr, err := c.VerifyCode(ctx, &portalv1.VerifyCodeRequest{WorkspaceID: lr.WorkspaceID, ChallengeID: lr.ChallengeID})
				if err != nil {
					return fmt.Errorf("verify code: %w", err)
				}
				res := LoginResult{
					WorkspaceID: lr.WorkspaceID,
					SessionID:   vr.SessionID,
					User:        vr.User,
					AccessToken: vr.AccessToken,
					ExpiresAt:   vr.ExpiresAt,
					Syncing:     vr.Syncing,
				}
				return opts.render(cmd.OutOrStdout(), res, func(w io.Writer) error {
					fmt.Fprintf(w, "logged in as %s (workspace %s)\n", res.User, res.WorkspaceID)
					fmt.Fprintf(w, "export PORTAL_TOKEN=%s\n", res.AccessToken)
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVarP(&username, "user", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "portal password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				if _, err := c.Logout(ctx, &portalv1.LogoutRequest{}); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func newSyncCommand(opts *RootOptions) *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch records from the report API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, true, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.SyncReports(ctx, &portalv1.SyncReportsRequest{Wait: wait})
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
					if !wait {
						_, err := fmt.Fprintln(w, "sync started")
						return err
					}
					_, err := fmt.Fprintf(w, "synced %d records\n", resp.Count)
					return err
				})
			})
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", true, "wait until the records are applied")
	return cmd
}

func newHealthCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, false, func(ctx context.Context, c *portalv1.PortalServiceClient) error {
				resp, err := c.HealthCheck(ctx, &portalv1.HealthCheckRequest{})
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, resp.Status)
					return err
				})
			})
		},
	}
}
