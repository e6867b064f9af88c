package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/client/client"
	pb "github.com/dmitrijs2005/rollcall/internal/proto"
)

var fixedTS = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type fakeClient struct {
	calls      []string
	loginUser  string
	loginPass  string
	lastName   string
	lastEvent  string
	lastLang   string
	lastFilter client.Filter
	provision  [2]string
	closed     bool
	events     []pb.AttendanceEvent
	err        error
}

func (f *fakeClient) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Ping(ctx context.Context) error { f.record("ping"); return f.err }

func (f *fakeClient) Login(ctx context.Context, username, password string) (*pb.LoginResponse, error) {
	f.record("login")
	f.loginUser, f.loginPass = username, password
	if password != "pw" {
		return nil, client.ErrUnauthorized
	}
	return &pb.LoginResponse{Token: "tok", Username: username, Role: "admin"}, nil
}

func (f *fakeClient) Logout(ctx context.Context) error { f.record("logout"); return nil }

func (f *fakeClient) Provision(ctx context.Context, username, password string) (*pb.ProvisionResponse, error) {
	f.record("provision")
	f.provision = [2]string{username, password}
	if f.err != nil {
		return nil, f.err
	}
	return &pb.ProvisionResponse{ID: "u1", Username: username, Role: "member"}, nil
}

func (f *fakeClient) Record(ctx context.Context, name, event string) (*pb.AttendanceEvent, error) {
	f.record("record")
	f.lastName, f.lastEvent = name, event
	if f.err != nil {
		return nil, f.err
	}
	if event == "" {
		event = "General"
	}
	return &pb.AttendanceEvent{ID: 1, Name: name, Event: event, Timestamp: fixedTS}, nil
}

func (f *fakeClient) RecordVoice(ctx context.Context, transcript, language, event string) (*pb.AttendanceEvent, error) {
	f.record("voice")
	f.lastName, f.lastLang, f.lastEvent = transcript, language, event
	if f.err != nil {
		return nil, f.err
	}
	return &pb.AttendanceEvent{ID: 2, Name: transcript, Event: "General", Timestamp: fixedTS}, nil
}

func (f *fakeClient) Query(ctx context.Context, flt client.Filter) ([]pb.AttendanceEvent, error) {
	f.record("query")
	f.lastFilter = flt
	return f.events, f.err
}

func (f *fakeClient) CountByDay(ctx context.Context) ([]pb.DailyCount, error) {
	f.record("daily")
	return []pb.DailyCount{{Date: "2024-03-01", Count: 2}}, f.err
}

func (f *fakeClient) ExportReport(ctx context.Context, flt client.Filter) (string, error) {
	f.record("export")
	f.lastFilter = flt
	if f.err != nil {
		return "", f.err
	}
	return "https://example.test/r.csv", nil
}

var errBoom = errors.New("boom")
