package proto

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "rollcall.v1.Ledger"

// Full method names, as seen by interceptors.
const (
	MethodLogin        = "/" + ServiceName + "/Login"
	MethodLogout       = "/" + ServiceName + "/Logout"
	MethodProvision    = "/" + ServiceName + "/Provision"
	MethodRecord       = "/" + ServiceName + "/Record"
	MethodRecordVoice  = "/" + ServiceName + "/RecordVoice"
	MethodQuery        = "/" + ServiceName + "/Query"
	MethodCountByDay   = "/" + ServiceName + "/CountByDay"
	MethodExportReport = "/" + ServiceName + "/ExportReport"
	MethodPing         = "/" + ServiceName + "/Ping"
)

// LedgerServer is the server API of rollcall.v1.Ledger.
type LedgerServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Provision(context.Context, *ProvisionRequest) (*ProvisionResponse, error)
	Record(context.Context, *RecordRequest) (*RecordResponse, error)
	RecordVoice(context.Context, *RecordVoiceRequest) (*RecordResponse, error)
	Query(context.Context, *QueryRequest) (*QueryResponse, error)
	CountByDay(context.Context, *CountByDayRequest) (*CountByDayResponse, error)
	ExportReport(context.Context, *ExportReportRequest) (*ExportReportResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unaryHandler adapts a typed server method to grpc.MethodDesc.
func unaryHandler[Req, Resp any](fullMethod string, call func(LedgerServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Ledger_ServiceDesc describes rollcall.v1.Ledger for grpc.Server.
var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, LedgerServer.Login)},
		{MethodName: "Logout", Handler: unaryHandler(MethodLogout, LedgerServer.Logout)},
		{MethodName: "Provision", Handler: unaryHandler(MethodProvision, LedgerServer.Provision)},
		{MethodName: "Record", Handler: unaryHandler(MethodRecord, LedgerServer.Record)},
		{MethodName: "RecordVoice", Handler: unaryHandler(MethodRecordVoice, LedgerServer.RecordVoice)},
		{MethodName: "Query", Handler: unaryHandler(MethodQuery, LedgerServer.Query)},
		{MethodName: "CountByDay", Handler: unaryHandler(MethodCountByDay, LedgerServer.CountByDay)},
		{MethodName: "ExportReport", Handler: unaryHandler(MethodExportReport, LedgerServer.ExportReport)},
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, LedgerServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rollcall/v1/ledger",
}

// RegisterLedgerServer registers srv on s.
func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

// LedgerClient is the client API of rollcall.v1.Ledger.
type LedgerClient interface {
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Provision(ctx context.Context, in *ProvisionRequest, opts ...grpc.CallOption) (*ProvisionResponse, error)
	Record(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*RecordResponse, error)
	RecordVoice(ctx context.Context, in *RecordVoiceRequest, opts ...grpc.CallOption) (*RecordResponse, error)
	Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error)
	CountByDay(ctx context.Context, in *CountByDayRequest, opts ...grpc.CallOption) (*CountByDayResponse, error)
	ExportReport(ctx context.Context, in *ExportReportRequest, opts ...grpc.CallOption) (*ExportReportResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerClient returns a client that sends every call with the JSON
// codec.
func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *ledgerClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MethodLogout, in, opts)
}

func (c *ledgerClient) Provision(ctx context.Context, in *ProvisionRequest, opts ...grpc.CallOption) (*ProvisionResponse, error) {
	return invoke[ProvisionResponse](ctx, c.cc, MethodProvision, in, opts)
}

func (c *ledgerClient) Record(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*RecordResponse, error) {
	return invoke[RecordResponse](ctx, c.cc, MethodRecord, in, opts)
}

func (c *ledgerClient) RecordVoice(ctx context.Context, in *RecordVoiceRequest, opts ...grpc.CallOption) (*RecordResponse, error) {
	return invoke[RecordResponse](ctx, c.cc, MethodRecordVoice, in, opts)
}

func (c *ledgerClient) Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error) {
	return invoke[QueryResponse](ctx, c.cc, MethodQuery, in, opts)
}

func (c *ledgerClient) CountByDay(ctx context.Context, in *CountByDayRequest, opts ...grpc.CallOption) (*CountByDayResponse, error) {
	return invoke[CountByDayResponse](ctx, c.cc, MethodCountByDay, in, opts)
}

func (c *ledgerClient) ExportReport(ctx context.Context, in *ExportReportRequest, opts ...grpc.CallOption) (*ExportReportResponse, error) {
	return invoke[ExportReportResponse](ctx, c.cc, MethodExportReport, in, opts)
}

func (c *ledgerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
