// Package handler implements PortalService on top of the workspace registry.
package handler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	portalv1 "report-portal/api/portal/v1"
	"report-portal/internal/audit"
	auditdomain "report-portal/internal/audit/domain"
	"report-portal/internal/logging"
	"report-portal/internal/portal"
	"report-portal/internal/report/domain"
	"report-portal/internal/report/export"
	"report-portal/internal/report/view"
	"report-portal/internal/security"
	"report-portal/internal/server/interceptors"
	"report-portal/internal/ticket"
	ticketdomain "report-portal/internal/ticket/domain"
)

// Server implements portalv1.PortalServiceServer.
type Server struct {
	registry    *portal.Registry
	tokens      *security.TokenProvider
	syncOnLogin bool
	log         logrus.FieldLogger
}

// NewServer returns a PortalService server. syncOnLogin starts a background sync after step-up.
func NewServer(registry *portal.Registry, tokens *security.TokenProvider, syncOnLogin bool, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	return &Server{registry: registry, tokens: tokens, syncOnLogin: syncOnLogin, log: log}
}

var _ portalv1.PortalServiceServer = (*Server)(nil)

// workspace returns the workspace the auth interceptor resolved for a protected RPC.
func workspace(ctx context.Context) (*portal.Workspace, error) {
	ws, ok := interceptors.GetWorkspace(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing or invalid authorization")
	}
	return ws, nil
}

func (s *Server) Login(ctx context.Context, req *portalv1.LoginRequest) (*portalv1.LoginResponse, error) {
	ws, ch, err := s.registry.Login(ctx, req.WorkspaceID, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.LoginResponse{
		WorkspaceID: ws.ID(),
		ChallengeID: ch.ID,
		Username:    ch.Username,
		ExpiresAt:   ch.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *Server) SendCode(ctx context.Context, req *portalv1.SendCodeRequest) (*portalv1.SendCodeResponse, error) {
	ws, err := s.registry.Get(req.WorkspaceID)
	if err != nil {
		return nil, toStatus(err)
	}
	code, err := ws.SendCode(ctx, req.ChallengeID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.SendCodeResponse{
		ChallengeID: code.ChallengeID,
		Code:        code.Code,
		ExpiresAt:   code.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// VerifyCode completes the step-up, issues the access token and optionally starts a sync.
func (s *Server) VerifyCode(ctx context.Context, req *portalv1.VerifyCodeRequest) (*portalv1.VerifyCodeResponse, error) {
	ws, err := s.registry.Get(req.WorkspaceID)
	if err != nil {
		return nil, toStatus(err)
	}
	sess, err := ws.ConfirmStepUp(ctx, req.ChallengeID)
	if err != nil {
		return nil, toStatus(err)
	}
	token, _, expiresAt, err := s.tokens.IssueAccess(ws.ID(), sess.ID, sess.CurrentUser)
	if err != nil {
		logging.LogError(s.log, "portal", "VerifyCode", "issue access token", logrus.Fields{"workspace_id": ws.ID()}, err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	resp := &portalv1.VerifyCodeResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		SessionID:   sess.ID,
		User:        sess.CurrentUser,
	}
	if s.syncOnLogin {
		s.startSync(ctx, ws)
		resp.Syncing = true
	}
	return resp, nil
}

func (s *Server) startSync(ctx context.Context, ws *portal.Workspace) {
	results := ws.StartSync(ctx)
	go func() {
		r := <-results
		if r.Err != nil {
			logging.LogError(s.log, "portal", "startSync", "background sync", logrus.Fields{"workspace_id": ws.ID()}, r.Err)
		}
	}()
}

func (s *Server) CancelLogin(ctx context.Context, req *portalv1.CancelLoginRequest) (*portalv1.CancelLoginResponse, error) {
	ws, err := s.registry.Get(req.WorkspaceID)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := ws.CancelLogin(ctx); err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.CancelLoginResponse{}, nil
}

func (s *Server) Logout(ctx context.Context, _ *portalv1.LogoutRequest) (*portalv1.LogoutResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	if err := ws.Logout(ctx); err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.LogoutResponse{}, nil
}

// SyncReports starts a fetch. With Wait it returns after the fetch is applied.
func (s *Server) SyncReports(ctx context.Context, req *portalv1.SyncReportsRequest) (*portalv1.SyncReportsResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	if !req.Wait {
		s.startSync(ctx, ws)
		return &portalv1.SyncReportsResponse{Started: true}, nil
	}
	n, err := ws.Sync(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.SyncReportsResponse{Started: true, Count: n}, nil
}

func (s *Server) ListReports(ctx context.Context, req *portalv1.ListReportsRequest) (*portalv1.ListReportsResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	p, err := ws.Dashboard(filterFromProto(req.Filter))
	if err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.ListReportsResponse{Reports: reportsToProto(p.Records)}, nil
}

func (s *Server) GetDashboard(ctx context.Context, req *portalv1.GetDashboardRequest) (*portalv1.GetDashboardResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	p, err := ws.Dashboard(filterFromProto(req.Filter))
	if err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.GetDashboardResponse{
		Reports:       reportsToProto(p.Records),
		ByCategory:    bucketsToProto(p.ByCategory),
		ByRegion:      bucketsToProto(p.ByRegion),
		TotalSales:    p.TotalSales.String(),
		AverageTicket: p.AverageTicket.String(),
		Count:         p.Count,
		Categories:    p.Categories,
		Syncing:       ws.Syncing(),
	}, nil
}

func (s *Server) CreateReport(ctx context.Context, req *portalv1.CreateReportRequest) (*portalv1.MutationResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	out, err := ws.CreateReport(ctx, draftFromProto(req.Draft))
	if err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.MutationResponse{Stage: string(out.Stage), Report: reportToProto(out.Report)}, nil
}

func (s *Server) UpdateReport(ctx context.Context, req *portalv1.UpdateReportRequest) (*portalv1.MutationResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	out, err := ws.UpdateReport(ctx, req.ID, draftFromProto(req.Draft))
	if err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.MutationResponse{Stage: string(out.Stage), Report: reportToProto(out.Report)}, nil
}

func (s *Server) ExportReports(ctx context.Context, req *portalv1.ExportReportsRequest) (*portalv1.ExportReportsResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, toStatus(err)
	}
	file, err := ws.Export(ctx, filterFromProto(req.Filter), format)
	if err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.ExportReportsResponse{
		FileName:    file.Name,
		ContentType: file.ContentType,
		Data:        file.Data,
		Rows:        file.Rows,
	}, nil
}

func (s *Server) SubmitTicket(ctx context.Context, req *portalv1.SubmitTicketRequest) (*portalv1.SubmitTicketResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	tk, err := ws.SubmitTicket(ctx, ticket.Submission{
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	panel, err := ws.Tickets(false)
	if err != nil {
		return nil, toStatus(err)
	}
	return &portalv1.SubmitTicketResponse{Ticket: ticketToProto(tk), Remaining: panel.Remaining}, nil
}

func (s *Server) ListTickets(ctx context.Context, req *portalv1.ListTicketsRequest) (*portalv1.ListTicketsResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	panel, err := ws.Tickets(req.All)
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]portalv1.Ticket, 0, len(panel.Recent))
	for _, tk := range panel.Recent {
		out = append(out, ticketToProto(tk))
	}
	return &portalv1.ListTicketsResponse{Tickets: out, Highlighted: panel.Highlighted, Remaining: panel.Remaining}, nil
}

func (s *Server) ListAuditLogs(ctx context.Context, req *portalv1.ListAuditLogsRequest) (*portalv1.ListAuditLogsResponse, error) {
	ws, err := workspace(ctx)
	if err != nil {
		return nil, err
	}
	action := auditdomain.Action(req.Action)
	if action != "" && !action.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown audit action %q", req.Action)
	}
	entries, err := ws.AuditLog(audit.ListFilter{
		PerformedBy: req.PerformedBy,
		Action:      action,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]portalv1.AuditEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, portalv1.AuditEntry{
			ID:          e.ID,
			Timestamp:   e.Timestamp,
			Action:      string(e.Action),
			PerformedBy: e.PerformedBy,
			IPAddress:   e.IPAddress,
			Details:     e.Details,
		})
	}
	return &portalv1.ListAuditLogsResponse{Entries: out}, nil
}

func filterFromProto(f portalv1.Filter) view.Filter {
	return view.Filter{Category: f.Category, Search: f.Search}
}

func draftFromProto(d portalv1.ReportDraft) domain.Draft {
	return domain.Draft{
		ProductName: d.ProductName,
		Category:    d.Category,
		Amount:      d.Amount,
		SaleDate:    d.SaleDate,
		Region:      d.Region,
	}
}

func reportToProto(r domain.SalesReport) portalv1.Report {
	out := portalv1.Report{
		ID:          r.ID,
		ProductName: r.ProductName,
		Category:    r.Category,
		Amount:      r.Amount.String(),
		Region:      r.Region,
	}
	if !r.SaleDate.IsZero() {
		out.SaleDate = r.SaleDate.Format(domain.DateLayout)
	}
	return out
}

func reportsToProto(records []domain.SalesReport) []portalv1.Report {
	out := make([]portalv1.Report, 0, len(records))
	for _, r := range records {
		out = append(out, reportToProto(r))
	}
	return out
}

func bucketsToProto(buckets []view.Bucket) []portalv1.Bucket {
	out := make([]portalv1.Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, portalv1.Bucket{Name: b.Name, Total: b.Total.String()})
	}
	return out
}

func ticketToProto(t ticketdomain.Ticket) portalv1.Ticket {
	return portalv1.Ticket{
		ID:          t.ID,
		Subject:     t.Subject,
		Description: t.Description,
		Category:    string(t.Category),
		Status:      string(t.Status),
		ColorTag:    t.ColorTag(),
	}
}
