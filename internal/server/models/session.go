package models

import "time"

// Session is a live login. It exists from a successful login until logout;
// there is no expiry.
type Session struct {
	ID        string
	UserID    string
	UserName  string
	Role      Role
	CreatedAt time.Time

	// Token is the bearer token handed to the client. It is not persisted.
	Token string
}

// IsAdmin reports whether the session may perform privileged operations.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
