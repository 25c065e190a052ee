package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/repo"
	"github.com/agrolink/farmmarket/internal/transport"
	"github.com/agrolink/farmmarket/internal/util"
)

type CatalogService struct {
	Repo *repo.GormRepo

	// ShowOutOfStock keeps zero-stock products visible in listings and
	// search. Off by default.
	ShowOutOfStock bool
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: productName is required", ErrValidation)
	}
	if product.Category == "" {
		return fmt.Errorf("%w: productCategory is required", ErrValidation)
	}
	if product.Quantity < 0 {
		return fmt.Errorf("%w: productQuantity cannot be negative", ErrValidation)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: productPrice cannot be negative", ErrValidation)
	}
	return s.Repo.CreateProduct(ctx, product)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, page, size int) (*transport.ProductPage, error) {
	return s.page(ctx, "", page, size)
}

// SearchProducts narrows the listing to a case-insensitive substring
// match against product name or category.
func (s *CatalogService) SearchProducts(ctx context.Context, term string, page, size int) (*transport.ProductPage, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrValidation)
	}
	return s.page(ctx, term, page, size)
}

func (s *CatalogService) page(ctx context.Context, term string, page, size int) (*transport.ProductPage, error) {
	offset, limit := util.Calculate(page, size)
	total, items, err := s.Repo.ListProducts(ctx, term, offset, limit, !s.ShowOutOfStock)
	if err != nil {
		return nil, err
	}

	return &transport.ProductPage{
		Page:       offset/limit + 1,
		Limit:      limit,
		Total:      total,
		TotalPages: util.TotalPages(total, limit),
		Products:   items,
	}, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, apply func(*models.Product)) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(product)
	if product.Quantity < 0 {
		return nil, fmt.Errorf("%w: productQuantity cannot be negative", ErrValidation)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("%w: productPrice cannot be negative", ErrValidation)
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
