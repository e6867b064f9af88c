// Package attendance persists the append-only attendance ledger.
package attendance

import (
	"context"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/server/models"
)

// Repository is the storage contract of the ledger. There is no update or
// delete: rows are only ever appended.
type Repository interface {
	// LockForAppend serializes appends across every client of the store
	// until the surrounding transaction ends.
	LockForAppend(ctx context.Context) error
	// Append stores ev and returns it with its ID filled in. The stored
	// timestamp is ev.Timestamp raised to the newest timestamp already in
	// the ledger, so timestamps never decrease in insertion order; ev is
	// updated with the stored value.
	Append(ctx context.Context, ev *models.AttendanceEvent) (*models.AttendanceEvent, error)
	// Find returns the rows matching filter in insertion order.
	Find(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, error)
	// Timestamps returns the timestamp of every row in insertion order.
	Timestamps(ctx context.Context) ([]time.Time, error)
}
