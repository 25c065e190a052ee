package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/agrolink/farmmarket/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) productQuery(ctx context.Context, term string, inStockOnly bool) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if inStockOnly {
		q = q.Where("quantity > 0")
	}
	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	}
	return q
}

// ListProducts pages products, optionally narrowed to a case-insensitive
// substring match against name or category. Returns the page plus the
// total matching count.
func (r *GormRepo) ListProducts(ctx context.Context, term string, offset, limit int, inStockOnly bool) (int64, []models.Product, error) {
	var total int64
	if err := r.productQuery(ctx, term, inStockOnly).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := r.productQuery(ctx, term, inStockOnly).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

// AllProducts streams the whole catalog, used by the search reindexer.
func (r *GormRepo) AllProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock performs the conditional decrement that guards
// checkout against oversell: the write only lands when at least the
// requested quantity is still on hand.
func (r *GormRepo) DecrementStock(ctx context.Context, productID uint, quantity int) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
