// Package client is the rollcall gRPC client used by the CLI.
//
// GRPCClient keeps the session token returned by Login and attaches it to
// every later call through a unary interceptor. Transport failures are
// mapped to the sentinel errors ErrUnavailable, ErrUnauthorized,
// ErrForbidden and ErrAlreadyExists; other server errors keep their status
// message.
package client
