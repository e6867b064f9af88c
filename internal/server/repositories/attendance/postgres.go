package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
)

// PostgresRepository stores the ledger in TEXT and TIMESTAMPTZ columns.
// TEXT cannot hold NUL bytes; such names or labels fail with a StorageError.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) LockForAppend(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `LOCK TABLE attendance IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return common.NewStorageError("lock attendance", err)
	}
	return nil
}

func (r *PostgresRepository) Append(ctx context.Context, ev *models.AttendanceEvent) (*models.AttendanceEvent, error) {
	query :=
		`INSERT INTO attendance (name, recorded_at, event)
		 VALUES ($1, GREATEST($2::timestamptz, COALESCE((SELECT MAX(recorded_at) FROM attendance), $2::timestamptz)), $3)
		 RETURNING id, recorded_at
		 `

	var ts time.Time
	err := r.db.QueryRowContext(ctx, query, ev.SubjectName, ev.Timestamp.UTC(), ev.EventLabel).Scan(&ev.ID, &ts)
	if err != nil {
		return nil, common.NewStorageError("append attendance", err)
	}
	ev.Timestamp = ts.UTC()
	return ev, nil
}

func (r *PostgresRepository) Find(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, error) {
	var (
		conds []string
		args  []any
	)
	if filter.SubjectName != nil {
		args = append(args, *filter.SubjectName)
		conds = append(conds, fmt.Sprintf("name = $%d", len(args)))
	}
	if filter.EventLabel != nil {
		args = append(args, *filter.EventLabel)
		conds = append(conds, fmt.Sprintf("event = $%d", len(args)))
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
		var ev models.AttendanceEvent
		if err := rows.Scan(&ev.ID, &ev.SubjectName, &ev.EventLabel, &ev.Timestamp); err != nil {
			return nil, common.NewStorageError("find attendance", err)
		}
		ev.Timestamp = ev.Timestamp.UTC()
		result = append(result, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("find attendance", err)
	}
	return result, nil
}

func (r *PostgresRepository) Timestamps(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT recorded_at FROM attendance ORDER BY id`)
	if err != nil {
		return nil, common.NewStorageError("list timestamps", err)
	}
	defer rows.Close()

	var result []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, common.NewStorageError("list timestamps", err)
		}
		result = append(result, ts.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("list timestamps", err)
	}
	return result, nil
}
