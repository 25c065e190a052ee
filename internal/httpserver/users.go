package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/farmmarket/internal/events"
	"github.com/agrolink/farmmarket/internal/logging"
	"github.com/agrolink/farmmarket/internal/service"
	"github.com/agrolink/farmmarket/internal/transport"
)

type UserHandler struct {
	Users    *service.UserService
	Producer *events.Producer
}

func (h *UserHandler) VerifyUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.verify")

	var req transport.VerifyUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("verify_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Users.VerifyUser(ctx, req.Email)
	if err != nil {
		l.Warn("verify_user_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Users.CreateUser(ctx, req)
	if err != nil {
		l.Warn("create_user_error", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicUserEvents, result.User.Email, map[string]any{
		"type":  "user_created",
		"email": result.User.Email,
		"role":  result.User.Role,
	})

	return c.JSON(http.StatusCreated, result)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.Users.GetUser(ctx, c.Param("email"))
	if err != nil {
		logging.FromContext(ctx).Warn("get_user_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Users.Login(ctx, req)
	if err != nil {
		l.Warn("login_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}
