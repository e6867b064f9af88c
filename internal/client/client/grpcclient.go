package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/rollcall/internal/common"
	pb "github.com/dmitrijs2005/rollcall/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.LedgerClient

	mu    sync.RWMutex
	token string
}

func withSessionToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.SessionTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) sessionTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.Token(); token != "" {
		ctx = withSessionToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults (insecure transport, token interceptor).
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.sessionTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewLedgerClient(conn)
	return c, nil
}

// Token is the session token of the last successful Login, or "".
func (s *GRPCClient) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable:
		if st.Message() != "" {
			return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
		}
		return ErrUnavailable
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, st.Message())
	default:
		return errors.New(st.Message())
	}
}

func toFilter(f Filter) pb.Filter {
	return pb.Filter{Name: f.Name, Event: f.Event}
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	if _, err := s.client.Ping(ctx, &pb.PingRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, username, password string) (*pb.LoginResponse, error) {
	resp, err := s.client.Login(ctx, &pb.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.setToken(resp.Token)
	return resp, nil
}

// Logout ends the server session and forgets the token.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if s.Token() == "" {
		return nil
	}
	_, err := s.client.Logout(ctx, &pb.LogoutRequest{})
	s.setToken("")
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Provision(ctx context.Context, username, password string) (*pb.ProvisionResponse, error) {
	resp, err := s.client.Provision(ctx, &pb.ProvisionRequest{Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Record(ctx context.Context, name, event string) (*pb.AttendanceEvent, error) {
	resp, err := s.client.Record(ctx, &pb.RecordRequest{Name: name, Event: event})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Event, nil
}

func (s *GRPCClient) RecordVoice(ctx context.Context, transcript, language, event string) (*pb.AttendanceEvent, error) {
	resp, err := s.client.RecordVoice(ctx, &pb.RecordVoiceRequest{Transcript: transcript, Language: language, Event: event})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Event, nil
}

func (s *GRPCClient) Query(ctx context.Context, f Filter) ([]pb.AttendanceEvent, error) {
	resp, err := s.client.Query(ctx, &pb.QueryRequest{Filter: toFilter(f)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Events, nil
}

func (s *GRPCClient) CountByDay(ctx context.Context) ([]pb.DailyCount, error) {
	resp, err := s.client.CountByDay(ctx, &pb.CountByDayRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Days, nil
}

func (s *GRPCClient) ExportReport(ctx context.Context, f Filter) (string, error) {
	resp, err := s.client.ExportReport(ctx, &pb.ExportReportRequest{Filter: toFilter(f)})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

var _ Client = (*GRPCClient)(nil)
