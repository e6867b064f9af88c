// Package users declares the credential repository contract and its
// PostgreSQL and SQLite implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/rollcall/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in its ID. A taken username yields
	// common.ErrDuplicateUsername; the unique constraint decides, so
	// exactly one of several concurrent inserts wins.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin returns common.ErrorNotFound for an unknown username.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
