package repo

import (
	"context"

	"github.com/agrolink/farmmarket/internal/models"
)

func (r *GormRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

// ListComments returns the newest entries of a product's thread, at
// most limit of them. An untouched thread comes back empty, not as an
// error.
func (r *GormRepo) ListComments(ctx context.Context, productID uint, limit int) ([]models.Comment, error) {
	comments := make([]models.Comment, 0, limit)
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
