// Package models defines the server-side data models persisted in the
// database.
package models

import (
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
)

// Role is the authorization level of a User.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// RoleForUsername returns the role assigned at provisioning time: the
// reserved admin username gets RoleAdmin, everybody else RoleMember.
func RoleForUsername(username string) Role {
	if username == common.AdminUsername {
		return RoleAdmin
	}
	return RoleMember
}

// User is an operator allowed to log in. Username is unique and
// case-sensitive; SecretHash is the verifier derived from the secret and
// Salt. Users are never updated or deleted.
type User struct {
	ID         string
	UserName   string
	Salt       []byte
	SecretHash []byte
	Role       Role
	CreatedAt  time.Time
}
