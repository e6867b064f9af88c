package sessions

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string) (*models.Session, error) {
	query :=
		`INSERT INTO sessions (id, user_id)
		 VALUES ($1, $2)
		 RETURNING created_at
		 `

	s := &models.Session{ID: uuid.NewString(), UserID: userID}
	if err := r.db.QueryRowContext(ctx, query, s.ID, userID).Scan(&s.CreatedAt); err != nil {
		return nil, common.NewStorageError("create session", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}

func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	query :=
		`SELECT s.id, s.user_id, u.username, u.role, s.created_at
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.id = $1
		 `

	s := &models.Session{}
	var role string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.UserName, &role, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStorageError("find session", err)
	}
	s.Role = models.Role(role)
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return common.NewStorageError("delete session", err)
}
