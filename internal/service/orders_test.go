package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/transport"
)

func TestPlaceOrderSuccess(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	p1 := seedProduct(t, r, "Tomatoes", "vegetables", 5, 10)

	order, err := svc.PlaceOrder(context.Background(), "buyer@example.com", []transport.CartLine{
		{ProductID: p1.ID, Quantity: 2},
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, float64(20), order.TotalPrice)
	require.NotEmpty(t, order.Reference)
	require.Len(t, order.Items, 1)
	require.Equal(t, float64(10), order.Items[0].UnitPrice)

	stored, err := r.GetProduct(context.Background(), p1.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stored.Quantity)
}

func TestPlaceOrderTotalEqualsSumOfLines(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	p1 := seedProduct(t, r, "Tomatoes", "vegetables", 10, 2.5)
	p2 := seedProduct(t, r, "Eggs", "dairy", 30, 0.4)

	order, err := svc.PlaceOrder(context.Background(), "buyer@example.com", []transport.CartLine{
		{ProductID: p1.ID, Quantity: 4},
		{ProductID: p2.ID, Quantity: 12},
	})
	require.NoError(t, err)

	var sum float64
	for _, item := range order.Items {
		sum += item.LineTotal
	}
	require.Equal(t, sum, order.TotalPrice)
	require.Equal(t, 4*2.5+12*0.4, order.TotalPrice)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	p1 := seedProduct(t, r, "Tomatoes", "vegetables", 5, 10)

	_, err := svc.PlaceOrder(context.Background(), "buyer@example.com", []transport.CartLine{
		{ProductID: p1.ID, Quantity: 10},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Contains(t, err.Error(), "Tomatoes")

	stored, err := r.GetProduct(context.Background(), p1.ID)
	require.NoError(t, err)
	require.Equal(t, 5, stored.Quantity)
}

// A failure on a later cart line must roll back decrements already
// applied for earlier lines.
func TestPlaceOrderNoPartialDecrement(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	p1 := seedProduct(t, r, "Tomatoes", "vegetables", 5, 10)
	p2 := seedProduct(t, r, "Eggs", "dairy", 1, 3)

	_, err := svc.PlaceOrder(context.Background(), "buyer@example.com", []transport.CartLine{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 5},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	stored1, err := r.GetProduct(context.Background(), p1.ID)
	require.NoError(t, err)
	require.Equal(t, 5, stored1.Quantity)

	stored2, err := r.GetProduct(context.Background(), p2.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored2.Quantity)

	var orderCount int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	_, err := svc.PlaceOrder(context.Background(), "buyer@example.com", []transport.CartLine{
		{ProductID: 999, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	_, err := svc.PlaceOrder(context.Background(), "buyer@example.com", nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.PlaceOrder(context.Background(), "", []transport.CartLine{{ProductID: 1, Quantity: 1}})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderNonPositiveQuantity(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	p1 := seedProduct(t, r, "Tomatoes", "vegetables", 5, 10)

	_, err := svc.PlaceOrder(context.Background(), "buyer@example.com", []transport.CartLine{
		{ProductID: p1.ID, Quantity: 0},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderPriceSnapshotSurvivesPriceChange(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	p1 := seedProduct(t, r, "Tomatoes", "vegetables", 5, 10)

	order, err := svc.PlaceOrder(context.Background(), "buyer@example.com", []transport.CartLine{
		{ProductID: p1.ID, Quantity: 1},
	})
	require.NoError(t, err)

	stored, err := r.GetProduct(context.Background(), p1.ID)
	require.NoError(t, err)
	stored.Price = 99
	require.NoError(t, r.SaveProduct(context.Background(), stored))

	_, orders, err := r.ListOrders(context.Background(), "buyer@example.com", 0, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, order.ID, orders[0].ID)
	require.Equal(t, float64(10), orders[0].Items[0].UnitPrice)
}

func TestListOrdersPaged(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	p1 := seedProduct(t, r, "Tomatoes", "vegetables", 100, 1)
	for i := 0; i < 3; i++ {
		_, err := svc.PlaceOrder(context.Background(), "buyer@example.com", []transport.CartLine{
			{ProductID: p1.ID, Quantity: 1},
		})
		require.NoError(t, err)
	}

	page, err := svc.ListOrders(context.Background(), "buyer@example.com", 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total)
	require.Equal(t, int64(2), page.TotalPages)
	require.Len(t, page.Orders, 2)

	_, err = svc.ListOrders(context.Background(), "", 1, 2)
	require.ErrorIs(t, err, ErrValidation)
}
