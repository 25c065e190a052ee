package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	CommentHandler *CommentHandler
	UserHandler    *UserHandler
	BlogHandler    *BlogHandler
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/upload/products", d.ProductHandler.CreateProduct)
	e.GET("/get/products", d.ProductHandler.GetProducts)
	e.GET("/get/product/:id", d.ProductHandler.GetProduct)
	e.GET("/product_search", d.ProductHandler.SearchProducts)

	e.POST("/comments", d.CommentHandler.AddComment)
	e.GET("/comments/:productId", d.CommentHandler.GetComments)

	e.POST("/checkout", d.OrderHandler.Checkout)

	e.POST("/user_verification", d.UserHandler.VerifyUser)
	e.POST("/create_user", d.UserHandler.CreateUser)
	e.POST("/login", d.UserHandler.Login)

	api := e.Group("/api")
	api.GET("/user/:email", d.UserHandler.GetUser)
	api.GET("/orders/:email", d.OrderHandler.GetOrders)
	api.GET("/search", d.ProductHandler.FullTextSearch)

	api.POST("/blogs", d.BlogHandler.CreatePost)
	api.GET("/blogs", d.BlogHandler.ListPosts)
	api.POST("/blogs/:id/vote/:direction", d.BlogHandler.Vote)

	admin := api.Group("/products", requireAdmin(d.JWTSecret))
	admin.PATCH("/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/:id", d.ProductHandler.DeleteProduct)
}
