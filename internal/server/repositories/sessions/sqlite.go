package sessions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, userID string) (*models.Session, error) {
	now := dbx.ToMillis(time.Now())
	s := &models.Session{ID: uuid.NewString(), UserID: userID, CreatedAt: dbx.FromMillis(now)}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at) VALUES (?, ?, ?)`, s.ID, userID, now)
	if err != nil {
		return nil, common.NewStorageError("create session", err)
	}
	return s, nil
}

func (r *SQLiteRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	query := `SELECT s.id, s.user_id, u.username, u.role, s.created_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.id = ?`

	s := &models.Session{}
	var (
		role string
		ms   int64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.UserName, &role, &ms)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStorageError("find session", err)
	}
	s.Role = models.Role(role)
	s.CreatedAt = dbx.FromMillis(ms)
	return s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return common.NewStorageError("delete session", err)
}
