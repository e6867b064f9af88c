// Package common contains shared constants and sentinel errors used across
// rollcall components.
package common

// SessionTokenHeaderName is the gRPC metadata key used to carry the
// session bearer token on outbound requests.
const SessionTokenHeaderName = "session_token"

// DefaultEventLabel is stored when an attendance mark arrives without an
// event label.
const DefaultEventLabel = "General"

// AdminUsername is the username that receives the admin role when it is
// provisioned.
const AdminUsername = "admin"
