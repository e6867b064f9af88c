package repomanager

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMemoryMigratesSchema(t *testing.T) {
	ctx := context.Background()
	db, rm, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	u, err := rm.Users(db).Create(ctx, &models.User{UserName: "admin", Salt: []byte("s"), SecretHash: []byte("h"), Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = rm.Sessions(db).Create(ctx, u.ID)
	require.NoError(t, err)

	events, err := rm.Attendance(db).Find(ctx, models.AttendanceFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "mysql", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(""))
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "file:x?mode=memory&cache=shared", sqliteDSN("file:x?mode=memory&cache=shared"))
	assert.Equal(t, "data/rollcall.db?"+sqlitePragmas, sqliteDSN("data/rollcall.db"))
	assert.Equal(t, "file:data.db?cache=shared&"+sqlitePragmas, sqliteDSN("file:data.db?cache=shared"))
}
