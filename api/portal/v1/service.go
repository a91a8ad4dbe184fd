package portalv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	PortalServiceName = "portal.v1.PortalService"
	HealthServiceName = "portal.v1.HealthService"
)

// Full method names, used by interceptors to tell public from protected calls.
const (
	PortalService_Login_FullMethodName         = "/" + PortalServiceName + "/Login"
	PortalService_SendCode_FullMethodName      = "/" + PortalServiceName + "/SendCode"
	PortalService_VerifyCode_FullMethodName    = "/" + PortalServiceName + "/VerifyCode"
	PortalService_CancelLogin_FullMethodName   = "/" + PortalServiceName + "/CancelLogin"
	PortalService_Logout_FullMethodName        = "/" + PortalServiceName + "/Logout"
	PortalService_SyncReports_FullMethodName   = "/" + PortalServiceName + "/SyncReports"
	PortalService_ListReports_FullMethodName   = "/" + PortalServiceName + "/ListReports"
	PortalService_GetDashboard_FullMethodName  = "/" + PortalServiceName + "/GetDashboard"
	PortalService_CreateReport_FullMethodName  = "/" + PortalServiceName + "/CreateReport"
	PortalService_UpdateReport_FullMethodName  = "/" + PortalServiceName + "/UpdateReport"
	PortalService_ExportReports_FullMethodName = "/" + PortalServiceName + "/ExportReports"
	PortalService_SubmitTicket_FullMethodName  = "/" + PortalServiceName + "/SubmitTicket"
	PortalService_ListTickets_FullMethodName   = "/" + PortalServiceName + "/ListTickets"
	PortalService_ListAuditLogs_FullMethodName = "/" + PortalServiceName + "/ListAuditLogs"
	HealthService_HealthCheck_FullMethodName   = "/" + HealthServiceName + "/HealthCheck"
)

// PortalServiceServer is the server API for PortalService.
type PortalServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	SendCode(context.Context, *SendCodeRequest) (*SendCodeResponse, error)
	VerifyCode(context.Context, *VerifyCodeRequest) (*VerifyCodeResponse, error)
	CancelLogin(context.Context, *CancelLoginRequest) (*CancelLoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	SyncReports(context.Context, *SyncReportsRequest) (*SyncReportsResponse, error)
	ListReports(context.Context, *ListReportsRequest) (*ListReportsResponse, error)
	GetDashboard(context.Context, *GetDashboardRequest) (*GetDashboardResponse, error)
	CreateReport(context.Context, *CreateReportRequest) (*MutationResponse, error)
	UpdateReport(context.Context, *UpdateReportRequest) (*MutationResponse, error)
	ExportReports(context.Context, *ExportReportsRequest) (*ExportReportsResponse, error)
	SubmitTicket(context.Context, *SubmitTicketRequest) (*SubmitTicketResponse, error)
	ListTickets(context.Context, *ListTicketsRequest) (*ListTicketsResponse, error)
	ListAuditLogs(context.Context, *ListAuditLogsRequest) (*ListAuditLogsResponse, error)
}

// HealthServiceServer is the server API for HealthService.
type HealthServiceServer interface {
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
}

// UnimplementedHealthServiceServer can be embedded to satisfy HealthServiceServer.
type UnimplementedHealthServiceServer struct{}

func (UnimplementedHealthServiceServer) HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method HealthCheck not implemented")
}

// unary builds the method descriptor of one unary RPC on a server of type S.
func unary[S, Req, Resp any](service, method string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			})
		},
	}
}

// PortalService_ServiceDesc is the grpc.ServiceDesc for PortalService.
var PortalService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PortalServiceName,
	HandlerType: (*PortalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(PortalServiceName, "Login", PortalServiceServer.Login),
		unary(PortalServiceName, "SendCode", PortalServiceServer.SendCode),
		unary(PortalServiceName, "VerifyCode", PortalServiceServer.VerifyCode),
		unary(PortalServiceName, "CancelLogin", PortalServiceServer.CancelLogin),
		unary(PortalServiceName, "Logout", PortalServiceServer.Logout),
		unary(PortalServiceName, "SyncReports", PortalServiceServer.SyncReports),
		unary(PortalServiceName, "ListReports", PortalServiceServer.ListReports),
		unary(PortalServiceName, "GetDashboard", PortalServiceServer.GetDashboard),
		unary(PortalServiceName, "CreateReport", PortalServiceServer.CreateReport),
		unary(PortalServiceName, "UpdateReport", PortalServiceServer.UpdateReport),
		unary(PortalServiceName, "ExportReports", PortalServiceServer.ExportReports),
		unary(PortalServiceName, "SubmitTicket", PortalServiceServer.SubmitTicket),
		unary(PortalServiceName, "ListTickets", PortalServiceServer.ListTickets),
		unary(PortalServiceName, "ListAuditLogs", PortalServiceServer.ListAuditLogs),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "portal/v1/portal.json",
}

// HealthService_ServiceDesc is the grpc.ServiceDesc for HealthService.
var HealthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: HealthServiceName,
	HandlerType: (*HealthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(HealthServiceName, "HealthCheck", HealthServiceServer.HealthCheck),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "portal/v1/health.json",
}

// RegisterPortalServiceServer registers srv with s.
func RegisterPortalServiceServer(s grpc.ServiceRegistrar, srv PortalServiceServer) {
	s.RegisterService(&PortalService_ServiceDesc, srv)
}

// RegisterHealthServiceServer registers srv with s.
func RegisterHealthServiceServer(s grpc.ServiceRegistrar, srv HealthServiceServer) {
	s.RegisterService(&HealthService_ServiceDesc, srv)
}
