package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appdb "github.com/agrolink/farmmarket/internal/db"
	"github.com/agrolink/farmmarket/internal/models"
)

func TestIsDuplicateKey(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, appdb.Migrate(db))

	r := New(db)
	ctx := context.Background()

	require.NoError(t, r.CreateUser(ctx, &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleBuyer}))
	err = r.CreateUser(ctx, &models.User{Name: "Other", Email: "alice@example.com", Role: models.RoleBuyer})
	require.Error(t, err)
	require.True(t, IsDuplicateKey(err))

	require.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	require.True(t, IsDuplicateKey(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)))
	require.False(t, IsDuplicateKey(nil))
	require.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
}
