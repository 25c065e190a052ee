package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
// Drivers that do not translate onto gorm.ErrDuplicatedKey are matched
// by their constraint messages (postgres and sqlite).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Transaction runs fn against a transactional copy of the repo. Any
// error returned by fn rolls the whole transaction back.
func (r *GormRepo) Transaction(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}
