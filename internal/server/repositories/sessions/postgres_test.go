package sessions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertSessionQuery = `(?s)^INSERT\s+INTO\s+sessions\s*\(id,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+created_at\s*$`
	findSessionQuery   = `(?s)^SELECT\s+s\.id,\s*s\.user_id,\s*u\.username,\s*u\.role,\s*s\.created_at\s+FROM\s+sessions\s+s\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*s\.user_id\s+WHERE\s+s\.id\s*=\s*\$1\s*$`
	deleteSessionQuery = `^DELETE FROM sessions WHERE id = \$1$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertSessionQuery).
		WithArgs(sqlmock.AnyArg(), "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	s, err := repo.Create(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "u-1", s.UserID)
	assert.Equal(t, now, s.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertSessionQuery).WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), "u-1")
	require.Error(t, err)
	assert.True(t, common.IsStorageError(err))
}

func TestPostgresFind(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(findSessionQuery).WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "role", "created_at"}).
			AddRow("s-1", "u-1", "admin", "admin", now))

	s, err := repo.Find(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, &models.Session{ID: "s-1", UserID: "u-1", UserName: "admin", Role: models.RoleAdmin, CreatedAt: now}, s)
}

func TestPostgresFind_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(findSessionQuery).WithArgs("gone").WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteSessionQuery).WithArgs("s-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "s-1"))

	mock.ExpectExec(deleteSessionQuery).WithArgs("s-1").WillReturnError(errors.New("down"))
	err := repo.Delete(context.Background(), "s-1")
	assert.True(t, common.IsStorageError(err))
}
