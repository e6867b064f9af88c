package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

func TestToStatus(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), &fakeGate{}, nil, nil, nil)

	tests := []struct {
		name   string
		err    error
		code   codes.Code
		reason string
	}{
		{"duplicate", common.ErrDuplicateUsername, codes.AlreadyExists, ReasonDuplicateUsername},
		{"wrapped duplicate", fmt.Errorf("provision: %w", common.ErrDuplicateUsername), codes.AlreadyExists, ReasonDuplicateUsername},
		{"invalid credentials", common.ErrInvalidCredentials, codes.Unauthenticated, ReasonInvalidCredentials},
		{"not authenticated", common.ErrNotAuthenticated, codes.Unauthenticated, ReasonNotAuthenticated},
		{"forbidden", common.ErrForbidden, codes.PermissionDenied, ReasonForbidden},
		{"unrecognized", common.ErrUnrecognized, codes.InvalidArgument, ReasonUnrecognized},
		{"speech unavailable", common.ErrServiceUnavailable, codes.Unavailable, ReasonSpeechUnavailable},
		{"export disabled", services.ErrExportDisabled, codes.FailedPrecondition, ReasonExportDisabled},
		{"storage", common.NewStorageError("append attendance", errors.New("disk full")), codes.Unavailable, ReasonStorage},
		{"unknown", errors.New("boom"), codes.Internal, ReasonInternal},
		{"canceled", context.Canceled, codes.Canceled, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.toStatus(context.Background(), tt.err)
			assert.Equal(t, tt.code, status.Code(err))
			assert.Equal(t, tt.reason, ReasonOf(err))
		})
	}
}

func TestToStatus_HidesInternals(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), &fakeGate{}, nil, nil, nil)

	err := s.toStatus(context.Background(), common.NewStorageError("find attendance", errors.New("password=hunter2")))
	assert.NotContains(t, status.Convert(err).Message(), "hunter2")
}

func TestToStatus_AttachesErrorInfo(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), &fakeGate{}, nil, nil, nil)

	st := status.Convert(s.toStatus(context.Background(), common.ErrForbidden))
	require.Len(t, st.Details(), 1)

	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	require.True(t, ok)
	assert.True(t, proto.Equal(&errdetails.ErrorInfo{Reason: ReasonForbidden, Domain: ErrorDomain}, info))
}

func TestReasonOf_PlainError(t *testing.T) {
	assert.Empty(t, ReasonOf(errors.New("plain")))
	assert.Empty(t, ReasonOf(status.Error(codes.Internal, "no details")))
}
