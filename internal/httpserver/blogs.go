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

type BlogHandler struct {
	Blog      *service.BlogService
	Producer  *events.Producer
	JWTSecret []byte
}

func (h *BlogHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blogs.create")

	var req transport.CreateBlogPostRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_blog_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	post, err := h.Blog.CreatePost(ctx, req)
	if err != nil {
		l.Warn("create_blog_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *BlogHandler) ListPosts(c echo.Context) error {
	ctx := c.Request().Context()

	limit := parseIntDefault(c.QueryParam("limit"), service.DefaultBlogLimit)
	posts, err := h.Blog.ListPosts(ctx, limit)
	if err != nil {
		logging.FromContext(ctx).Error("list_blogs_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// Vote toggles the caller's vote on a post. Identity comes from the
// access token when present, otherwise from the voterId field or the
// X-Voter-Id header.
func (h *BlogHandler) Vote(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blogs.vote")

	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	direction := c.Param("direction")

	var req struct {
		VoterID string `json:"voterId"`
	}
	_ = c.Bind(&req)

	voter := callerIdentity(c, h.JWTSecret, req.VoterID)
	view, err := h.Blog.Vote(ctx, postID, voter, direction)
	if err != nil {
		l.Warn("blog_vote_error", "post_id", postID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicBlogEvents, strconv.FormatUint(uint64(postID), 10), map[string]any{
		"type":      "blog_vote",
		"postID":    postID,
		"direction": direction,
		"userVote":  view.UserVote,
	})

	return c.JSON(http.StatusOK, view)
}
