package grpc

import (
	"context"
	"strings"

	pb "github.com/dmitrijs2005/rollcall/internal/proto"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/voice"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toPBEvent(e models.AttendanceEvent) pb.AttendanceEvent {
	return pb.AttendanceEvent{
		ID:        e.ID,
		Name:      e.SubjectName,
		Event:     e.EventLabel,
		Timestamp: e.Timestamp,
	}
}

func toFilter(f pb.Filter) models.AttendanceFilter {
	return models.AttendanceFilter{SubjectName: f.Name, EventLabel: f.Event}
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	session, err := s.sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.LoginResponse{Token: session.Token, Username: session.UserName, Role: string(session.Role)}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *pb.LogoutRequest) (*pb.LogoutResponse, error) {
	session, _ := sessionFrom(ctx)
	if err := s.sessions.Logout(ctx, session); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.LogoutResponse{}, nil
}

func (s *GRPCServer) Provision(ctx context.Context, req *pb.ProvisionRequest) (*pb.ProvisionResponse, error) {
	session, _ := sessionFrom(ctx)
	if err := s.sessions.RequireAdmin(ctx, session); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	user, err := s.credentials.Provision(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.ProvisionResponse{ID: user.ID, Username: user.UserName, Role: string(user.Role)}, nil
}

func (s *GRPCServer) Record(ctx context.Context, req *pb.RecordRequest) (*pb.RecordResponse, error) {
	ev, err := s.ledger.Record(ctx, req.Name, req.Event)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.RecordResponse{Event: toPBEvent(*ev)}, nil
}

func (s *GRPCServer) RecordVoice(ctx context.Context, req *pb.RecordVoiceRequest) (*pb.RecordResponse, error) {
	if req.Language != "" && !voice.IsSupported(req.Language) {
		return nil, status.Errorf(codes.InvalidArgument, "unsupported language %q", req.Language)
	}

	ev, err := s.ledger.RecordFromVoice(ctx, voice.Transcript(req.Transcript), req.Language, req.Event)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.RecordResponse{Event: toPBEvent(*ev)}, nil
}

func (s *GRPCServer) Query(ctx context.Context, req *pb.QueryRequest) (*pb.QueryResponse, error) {
	events, err := s.reports.Query(ctx, toFilter(req.Filter))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.QueryResponse{Events: make([]pb.AttendanceEvent, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, toPBEvent(e))
	}
	return resp, nil
}

func (s *GRPCServer) CountByDay(ctx context.Context, req *pb.CountByDayRequest) (*pb.CountByDayResponse, error) {
	days, err := s.reports.CountByDay(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.CountByDayResponse{Days: make([]pb.DailyCount, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, pb.DailyCount{Date: d.Date, Count: d.Count})
	}
	return resp, nil
}

func (s *GRPCServer) ExportReport(ctx context.Context, req *pb.ExportReportRequest) (*pb.ExportReportResponse, error) {
	url, err := s.reports.Export(ctx, toFilter(req.Filter))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ExportReportResponse{URL: url}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

var _ pb.LedgerServer = (*GRPCServer)(nil)
