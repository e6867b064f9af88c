// Package grpc exposes the ledger over gRPC (rollcall.v1.Ledger). Every
// method except Login and Ping requires a session token in the
// session_token metadata key.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/rollcall/internal/logging"
	pb "github.com/dmitrijs2005/rollcall/internal/proto"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/voice"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// SessionGate authenticates callers and authorizes privileged calls.
type SessionGate interface {
	Login(ctx context.Context, username, secret string) (*models.Session, error)
	Logout(ctx context.Context, session *models.Session) error
	Authenticate(ctx context.Context, token string) (*models.Session, error)
	RequireAdmin(ctx context.Context, session *models.Session) error
}

// CredentialStore provisions operators.
type CredentialStore interface {
	Provision(ctx context.Context, username, secret string) (*models.User, error)
}

// Ledger records attendance.
type Ledger interface {
	Record(ctx context.Context, subject, label string) (*models.AttendanceEvent, error)
	RecordFromVoice(ctx context.Context, in voice.Input, language, label string) (*models.AttendanceEvent, error)
}

// Reports serves the read side of the ledger.
type Reports interface {
	Query(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, error)
	CountByDay(ctx context.Context) ([]models.DailyCount, error)
	Export(ctx context.Context, filter models.AttendanceFilter) (string, error)
}

type GRPCServer struct {
	address     string
	logger      logging.Logger
	sessions    SessionGate
	credentials CredentialStore
	ledger      Ledger
	reports     Reports
}

func NewGRPCServer(a string, l logging.Logger, sg SessionGate, cs CredentialStore, lg Ledger, r Reports) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		sessions:    sg,
		credentials: cs,
		ledger:      lg,
		reports:     r,
	}
}

// newServer builds the grpc.Server with tracing, the session interceptor,
// the ledger service and the standard health service.
func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.sessionInterceptor),
	)

	pb.RegisterLedgerServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv, hs
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv, hs := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
