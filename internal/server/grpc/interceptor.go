package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	pb "github.com/dmitrijs2005/rollcall/internal/proto"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const sessionKey ctxKey = "session"

// publicMethods do not require a session. Methods of other services, such
// as health, never do.
var publicMethods = map[string]bool{
	pb.MethodLogin: true,
	pb.MethodPing:  true,
}

func withSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// sessionFrom returns the session resolved by sessionInterceptor.
func sessionFrom(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*models.Session)
	return s, ok && s != nil
}

func tokenFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.SessionTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) sessionInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] || !strings.HasPrefix(info.FullMethod, "/"+pb.ServiceName+"/") {
		return handler(ctx, req)
	}

	token := tokenFromMetadata(ctx)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	session, err := s.sessions.Authenticate(ctx, token)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return handler(withSession(ctx, session), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
	return resp, err
}
