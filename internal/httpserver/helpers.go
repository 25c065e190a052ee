package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/farmmarket/internal/auth"
	"github.com/agrolink/farmmarket/internal/events"
	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/service"
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return uint(v), nil
}

// httpError maps service sentinels onto transport status codes. Every
// failure reaches the client as a JSON body with a message field.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInsufficientStock):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func publish(c echo.Context, producer *events.Producer, topic, key string, event map[string]any) {
	if !producer.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	return ""
}

// callerIdentity resolves who is making the request: the access token
// subject when one is presented, otherwise the explicit fallback value
// (request field or header) for unauthenticated callers.
func callerIdentity(c echo.Context, secret []byte, fallback string) string {
	if token := bearerToken(c); token != "" {
		if claims, err := auth.ClaimsFromToken(token, secret); err == nil {
			return claims.Subject
		}
	}
	if fallback != "" {
		return fallback
	}
	return c.Request().Header.Get("X-Voter-Id")
}

func requireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}
			claims, err := auth.ClaimsFromToken(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
			if claims.Role != models.RoleAdministrator {
				return echo.NewHTTPError(http.StatusForbidden, "administrator role required")
			}
			return next(c)
		}
	}
}
