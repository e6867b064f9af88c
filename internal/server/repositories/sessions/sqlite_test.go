package sessions

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/users"
	"github.com/dmitrijs2005/rollcall/internal/server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSessionLifecycle(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	u, err := users.NewSQLiteRepository(db).Create(ctx, &models.User{
		UserName: "admin", Salt: []byte("s"), SecretHash: []byte("h"), Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)
	s1, err := repo.Create(ctx, u.ID)
	require.NoError(t, err)
	s2, err := repo.Create(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID, s2.ID)

	got, err := repo.Find(ctx, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.UserName)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.Equal(t, s1.CreatedAt, got.CreatedAt)

	require.NoError(t, repo.Delete(ctx, s1.ID))
	_, err = repo.Find(ctx, s1.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, repo.Delete(ctx, s1.ID), "second delete is a no-op")

	_, err = repo.Find(ctx, s2.ID)
	require.NoError(t, err, "other sessions of the same user stay live")
}
