package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/farmmarket/internal/events"
	"github.com/agrolink/farmmarket/internal/logging"
	"github.com/agrolink/farmmarket/internal/service"
	"github.com/agrolink/farmmarket/internal/transport"
	"github.com/agrolink/farmmarket/internal/util"
)

type OrderHandler struct {
	Orders    *service.OrderService
	Producer  *events.Producer
	JWTSecret []byte
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	buyer := callerIdentity(c, h.JWTSecret, req.UserEmail)
	order, err := h.Orders.PlaceOrder(ctx, service.NormalizeEmail(buyer), req.CartItems)
	if err != nil {
		l.Warn("checkout_error", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, order.Reference, map[string]any{
		"type":    "order_placed",
		"orderID": order.ID,
		"email":   order.BuyerEmail,
		"total":   order.TotalPrice,
	})

	l.Info("checkout_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Order placed successfully",
		"order":   order,
	})
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()

	email := service.NormalizeEmail(c.Param("email"))
	page := parseIntDefault(c.QueryParam("page"), 1)
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)

	result, err := h.Orders.ListOrders(ctx, email, page, limit)
	if err != nil {
		logging.FromContext(ctx).Warn("get_orders_error", "email", email, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}
