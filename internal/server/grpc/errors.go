package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/server/services"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain is the errdetails.ErrorInfo domain of every error returned by
// the server.
const ErrorDomain = "rollcall"

// Error reasons carried in errdetails.ErrorInfo.
const (
	ReasonDuplicateUsername  = "DUPLICATE_USERNAME"
	ReasonInvalidCredentials = "INVALID_CREDENTIALS"
	ReasonNotAuthenticated   = "NOT_AUTHENTICATED"
	ReasonForbidden          = "FORBIDDEN"
	ReasonUnrecognized       = "UNRECOGNIZED_SPEECH"
	ReasonSpeechUnavailable  = "SPEECH_SERVICE_UNAVAILABLE"
	ReasonExportDisabled     = "EXPORT_DISABLED"
	ReasonStorage            = "STORAGE"
	ReasonInternal           = "INTERNAL"
)

type mapping struct {
	target error
	code   codes.Code
	reason string
	msg    string
}

var mappings = []mapping{
	{common.ErrDuplicateUsername, codes.AlreadyExists, ReasonDuplicateUsername, "username already exists"},
	{common.ErrInvalidCredentials, codes.Unauthenticated, ReasonInvalidCredentials, "invalid credentials"},
	{common.ErrNotAuthenticated, codes.Unauthenticated, ReasonNotAuthenticated, "not authenticated"},
	{common.ErrForbidden, codes.PermissionDenied, ReasonForbidden, "forbidden"},
	{common.ErrUnrecognized, codes.InvalidArgument, ReasonUnrecognized, "speech not recognized, no attendance recorded"},
	{common.ErrServiceUnavailable, codes.Unavailable, ReasonSpeechUnavailable, "speech service unavailable, no attendance recorded"},
	{services.ErrExportDisabled, codes.FailedPrecondition, ReasonExportDisabled, "report export is not configured"},
}

// toStatus maps a service error to a gRPC status with an ErrorInfo detail.
// Storage and unknown failures are logged and reported without internals.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return withReason(m.code, m.reason, m.msg)
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case common.IsStorageError(err):
		s.logger.Error(ctx, "storage failure", "error", err)
		return withReason(codes.Unavailable, ReasonStorage, "storage unavailable")
	default:
		s.logger.Error(ctx, "internal failure", "error", err)
		return withReason(codes.Internal, ReasonInternal, "internal error")
	}
}

func withReason(code codes.Code, reason, msg string) error {
	st := status.New(code, msg)
	if detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: ErrorDomain}); err == nil {
		st = detailed
	}
	return st.Err()
}

// ReasonOf extracts the ErrorInfo reason from a gRPC error, or "".
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return info.GetReason()
		}
	}
	return ""
}
