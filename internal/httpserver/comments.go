package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/farmmarket/internal/events"
	"github.com/agrolink/farmmarket/internal/logging"
	"github.com/agrolink/farmmarket/internal/service"
	"github.com/agrolink/farmmarket/internal/transport"
)

type CommentHandler struct {
	Comments *service.CommentService
	Producer *events.Producer
}

func (h *CommentHandler) AddComment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comments.add")

	var req struct {
		ProductID uint   `json:"productId"`
		User      string `json:"user"`
		Comment   string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_comment_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	thread, err := h.Comments.AddComment(ctx, transport.AddCommentRequest{
		ProductID: req.ProductID,
		User:      req.User,
		Comment:   req.Comment,
	})
	if err != nil {
		l.Warn("add_comment_error", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicCommentEvents, strconv.FormatUint(uint64(req.ProductID), 10), map[string]any{
		"type":      "comment_added",
		"productID": req.ProductID,
		"user":      req.User,
	})

	return c.JSON(http.StatusCreated, thread)
}

func (h *CommentHandler) GetComments(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := parseUintParam(c, "productId")
	if err != nil {
		return err
	}
	limit := parseIntDefault(c.QueryParam("limit"), service.DefaultCommentLimit)

	thread, err := h.Comments.GetComments(ctx, productID, limit)
	if err != nil {
		logging.FromContext(ctx).Error("get_comments_error", "product_id", productID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, thread)
}
