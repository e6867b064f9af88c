package users

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

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (id, username, salt, secret_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	id := uuid.NewString()
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		id, user.UserName, user.Salt, user.SecretHash, string(user.Role), dbx.ToMillis(now))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, common.NewStorageError("create user", err)
	}

	user.ID = id
	user.CreatedAt = dbx.FromMillis(dbx.ToMillis(now))
	return user, nil
}

func (r *SQLiteRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query := `SELECT id, username, salt, secret_hash, role, created_at FROM users WHERE username = ?`

	user := &models.User{}
	var role string
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, userName).
		Scan(&user.ID, &user.UserName, &user.Salt, &user.SecretHash, &role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.NewStorageError("get user", err)
	}

	user.Role = models.Role(role)
	user.CreatedAt = dbx.FromMillis(createdAt)
	return user, nil
}
