package client

import (
	"context"

	pb "github.com/dmitrijs2005/rollcall/internal/proto"
)

// Filter narrows Query and ExportReport. A nil field places no constraint.
type Filter struct {
	Name  *string
	Event *string
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, username, password string) (*pb.LoginResponse, error)
	Logout(ctx context.Context) error
	Provision(ctx context.Context, username, password string) (*pb.ProvisionResponse, error)
	Record(ctx context.Context, name, event string) (*pb.AttendanceEvent, error)
	RecordVoice(ctx context.Context, transcript, language, event string) (*pb.AttendanceEvent, error)
	Query(ctx context.Context, f Filter) ([]pb.AttendanceEvent, error)
	CountByDay(ctx context.Context) ([]pb.DailyCount, error)
	ExportReport(ctx context.Context, f Filter) (string, error)
}
