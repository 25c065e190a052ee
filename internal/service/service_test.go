package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appdb "github.com/agrolink/farmmarket/internal/db"
	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := appdb.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return repo.New(db)
}

func seedProduct(t *testing.T, r *repo.GormRepo, name, category string, quantity int, price float64) models.Product {
	t.Helper()

	p := models.Product{
		Name:     name,
		Category: category,
		Quantity: quantity,
		Price:    price,
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return p
}
