package users

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteCreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{UserName: "Alice", Salt: []byte("s"), SecretHash: []byte("h"), Role: models.RoleMember})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	got, err := repo.GetUserByLogin(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, []byte("s"), got.Salt)
	assert.Equal(t, []byte("h"), got.SecretHash)
	assert.Equal(t, models.RoleMember, got.Role)
	assert.True(t, got.CreatedAt.Equal(u.CreatedAt))

	_, err = repo.GetUserByLogin(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrorNotFound, "usernames are case-sensitive")
}

func TestSQLiteCreate_Duplicate(t *testing.T) {
	repo := NewSQLiteRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{UserName: "bob", Salt: []byte("1"), SecretHash: []byte("1"), Role: models.RoleMember})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{UserName: "bob", Salt: []byte("2"), SecretHash: []byte("2"), Role: models.RoleMember})
	assert.ErrorIs(t, err, common.ErrDuplicateUsername)
}

func TestSQLiteCreate_ConcurrentSameUsernameOneWins(t *testing.T) {
	repo := NewSQLiteRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{UserName: "race", Salt: []byte("s"), SecretHash: []byte("h"), Role: models.RoleMember})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, common.ErrDuplicateUsername)
	}
	assert.Equal(t, 1, wins)
}
