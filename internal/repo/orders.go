package repo

import (
	"context"

	"github.com/agrolink/farmmarket/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) ListOrders(ctx context.Context, buyerEmail string, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("buyer_email = ?", buyerEmail).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("buyer_email = ?", buyerEmail).
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}
