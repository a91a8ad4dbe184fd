package portalv1

import (
	"context"

	"google.golang.org/grpc"
)

// PortalServiceClient calls PortalService and HealthService over one connection.
type PortalServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPortalServiceClient returns a client using the JSON codec on cc.
func NewPortalServiceClient(cc grpc.ClientConnInterface) *PortalServiceClient {
	return &PortalServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PortalServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginRequest, LoginResponse](ctx, c.cc, PortalService_Login_FullMethodName, in, opts)
}

func (c *PortalServiceClient) SendCode(ctx context.Context, in *SendCodeRequest, opts ...grpc.CallOption) (*SendCodeResponse, error) {
	return invoke[SendCodeRequest, SendCodeResponse](ctx, c.cc, PortalService_SendCode_FullMethodName, in, opts)
}

func (c *PortalServiceClient) VerifyCode(ctx context.Context, in *VerifyCodeRequest, opts ...grpc.CallOption) (*VerifyCodeResponse, error) {
	return invoke[VerifyCodeRequest, VerifyCodeResponse](ctx, c.cc, PortalService_VerifyCode_FullMethodName, in, opts)
}

func (c *PortalServiceClient) CancelLogin(ctx context.Context, in *CancelLoginRequest, opts ...grpc.CallOption) (*CancelLoginResponse, error) {
	return invoke[CancelLoginRequest, CancelLoginResponse](ctx, c.cc, PortalService_CancelLogin_FullMethodName, in, opts)
}

func (c *PortalServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutRequest, LogoutResponse](ctx, c.cc, PortalService_Logout_FullMethodName, in, opts)
}

func (c *PortalServiceClient) SyncReports(ctx context.Context, in *SyncReportsRequest, opts ...grpc.CallOption) (*SyncReportsResponse, error) {
	return invoke[SyncReportsRequest, SyncReportsResponse](ctx, c.cc, PortalService_SyncReports_FullMethodName, in, opts)
}

func (c *PortalServiceClient) ListReports(ctx context.Context, in *ListReportsRequest, opts ...grpc.CallOption) (*ListReportsResponse, error) {
	return invoke[ListReportsRequest, ListReportsResponse](ctx, c.cc, PortalService_ListReports_FullMethodName, in, opts)
}

func (c *PortalServiceClient) GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpc.CallOption) (*GetDashboardResponse, error) {
	return invoke[GetDashboardRequest, GetDashboardResponse](ctx, c.cc, PortalService_GetDashboard_FullMethodName, in, opts)
}

func (c *PortalServiceClient) CreateReport(ctx context.Context, in *CreateReportRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	return invoke[CreateReportRequest, MutationResponse](ctx, c.cc, PortalService_CreateReport_FullMethodName, in, opts)
}

func (c *PortalServiceClient) UpdateReport(ctx context.Context, in *UpdateReportRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	return invoke[UpdateReportRequest, MutationResponse](ctx, c.cc, PortalService_UpdateReport_FullMethodName, in, opts)
}

func (c *PortalServiceClient) ExportReports(ctx context.Context, in *ExportReportsRequest, opts ...grpc.CallOption) (*ExportReportsResponse, error) {
	return invoke[ExportReportsRequest, ExportReportsResponse](ctx, c.cc, PortalService_ExportReports_FullMethodName, in, opts)
}

func (c *PortalServiceClient) SubmitTicket(ctx context.Context, in *SubmitTicketRequest, opts ...grpc.CallOption) (*SubmitTicketResponse, error) {
	return invoke[SubmitTicketRequest, SubmitTicketResponse](ctx, c.cc, PortalService_SubmitTicket_FullMethodName, in, opts)
}

func (c *PortalServiceClient) ListTickets(ctx context.Context, in *ListTicketsRequest, opts ...grpc.CallOption) (*ListTicketsResponse, error) {
	return invoke[ListTicketsRequest, ListTicketsResponse](ctx, c.cc, PortalService_ListTickets_FullMethodName, in, opts)
}

func (c *PortalServiceClient) ListAuditLogs(ctx context.Context, in *ListAuditLogsRequest, opts ...grpc.CallOption) (*ListAuditLogsResponse, error) {
	return invoke[ListAuditLogsRequest, ListAuditLogsResponse](ctx, c.cc, PortalService_ListAuditLogs_FullMethodName, in, opts)
}

func (c *PortalServiceClient) HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	return invoke[HealthCheckRequest, HealthCheckResponse](ctx, c.cc, HealthService_HealthCheck_FullMethodName, in, opts)
}
