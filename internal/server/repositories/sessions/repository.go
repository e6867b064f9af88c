// Package sessions persists live logins. A row exists from login until
// logout; there is no expiry.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/rollcall/internal/server/models"
)

type Repository interface {
	// Create stores a new session for userID and returns it with ID and
	// CreatedAt assigned.
	Create(ctx context.Context, userID string) (*models.Session, error)
	// Find returns the live session with the user's name and role, or
	// common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.Session, error)
	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
