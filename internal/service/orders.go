package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrolink/farmmarket/internal/logging"
	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/repo"
	"github.com/agrolink/farmmarket/internal/transport"
	"github.com/agrolink/farmmarket/internal/util"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// PlaceOrder validates every cart line, decrements stock and records
// the order inside one transaction. A failure on any line rolls back
// every decrement made earlier in the same call, so no partial order
// or partial stock mutation is ever visible.
func (s *OrderService) PlaceOrder(ctx context.Context, buyerEmail string, lines []transport.CartLine) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "orders.place_order", "email", buyerEmail)

	if buyerEmail == "" {
		return nil, fmt.Errorf("%w: userEmail is required", ErrValidation)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}

	var order *models.Order
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var total float64
		items := make([]models.OrderItem, 0, len(lines))

		for _, line := range lines {
			product, err := tx.GetProduct(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
				}
				return err
			}

			ok, err := tx.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: not enough stock for %s", ErrInsufficientStock, product.Name)
			}

			lineTotal := product.Price * float64(line.Quantity)
			total += lineTotal
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				LineTotal: lineTotal,
			})
		}

		order = &models.Order{
			Reference:  uuid.NewString(),
			BuyerEmail: buyerEmail,
			Status:     models.OrderStatusPending,
			TotalPrice: total,
			Items:      items,
		}
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	l.Info("order_placed", "order_id", order.ID, "total", order.TotalPrice, "items", len(order.Items))
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, buyerEmail string, page, size int) (*transport.OrderPage, error) {
	if buyerEmail == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	offset, limit := util.Calculate(page, size)
	total, orders, err := s.Repo.ListOrders(ctx, buyerEmail, offset, limit)
	if err != nil {
		return nil, err
	}

	return &transport.OrderPage{
		Page:       offset/limit + 1,
		Limit:      limit,
		Total:      total,
		TotalPages: util.TotalPages(total, limit),
		Orders:     orders,
	}, nil
}
