package attendance

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
)

// SQLiteRepository stores timestamps as UTC unix milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// LockForAppend is a no-op: SQLite admits one writer at a time and Append
// reads the newest timestamp within its own INSERT statement.
func (r *SQLiteRepository) LockForAppend(ctx context.Context) error {
	return nil
}

func (r *SQLiteRepository) Append(ctx context.Context, ev *models.AttendanceEvent) (*models.AttendanceEvent, error) {
	ms := dbx.ToMillis(ev.Timestamp)
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO attendance (name, recorded_at, event)
		 VALUES (?, MAX(?, COALESCE((SELECT MAX(recorded_at) FROM attendance), ?)), ?)
		 RETURNING id, recorded_at`,
		ev.SubjectName, ms, ms, ev.EventLabel).Scan(&ev.ID, &ms)
	if err != nil {
		return nil, common.NewStorageError("append attendance", err)
	}
	ev.Timestamp = dbx.FromMillis(ms)
	return ev, nil
}

func (r *SQLiteRepository) Find(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, error) {
	var (
		conds []string
		args  []any
	)
	if filter.SubjectName != nil {
		conds = append(conds, "name = ?")
		args = append(args, *filter.SubjectName)
	}
	if filter.EventLabel != nil {
		conds = append(conds, "event = ?")
		args = append(args, *filter.EventLabel)
	}

	query := `SELECT id, name, event, recorded_at FROM attendance`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewStorageError("find attendance", err)
	}
	defer rows.Close()

	result := make([]models.AttendanceEvent, 0)
	for rows.Next() {
		var (
			ev models.AttendanceEvent
			ms int64
		)
		if err := rows.Scan(&ev.ID, &ev.SubjectName, &ev.EventLabel, &ms); err != nil {
			return nil, common.NewStorageError("find attendance", err)
		}
		ev.Timestamp = dbx.FromMillis(ms)
		result = append(result, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("find attendance", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Timestamps(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT recorded_at FROM attendance ORDER BY id`)
	if err != nil {
		return nil, common.NewStorageError("list timestamps", err)
	}
	defer rows.Close()

	var result []time.Time
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return nil, common.NewStorageError("list timestamps", err)
		}
		result = append(result, dbx.FromMillis(ms))
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("list timestamps", err)
	}
	return result, nil
}
