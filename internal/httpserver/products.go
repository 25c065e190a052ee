package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/farmmarket/internal/events"
	"github.com/agrolink/farmmarket/internal/imagehost"
	"github.com/agrolink/farmmarket/internal/logging"
	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/search"
	"github.com/agrolink/farmmarket/internal/service"
	"github.com/agrolink/farmmarket/internal/util"
)

const imageFolder = "farmer_products"

type ProductHandler struct {
	Catalog  *service.CatalogService
	Search   *search.Service
	Images   *imagehost.Client
	Producer *events.Producer
}

// CreateProduct accepts a multipart form with an optional productImg
// file. The image is uploaded to the external host before the record
// is persisted; an upload failure aborts the whole creation.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.create")

	product := models.Product{
		Name:        c.FormValue("productName"),
		Category:    c.FormValue("productCategory"),
		Description: c.FormValue("productDescription"),
	}
	if raw := c.FormValue("productQuantity"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "productQuantity must be an integer")
		}
		product.Quantity = qty
	}
	if raw := c.FormValue("productPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "productPrice must be a number")
		}
		product.Price = price
	}

	if file, err := c.FormFile("productImg"); err == nil && h.Images.Enabled() {
		url, err := h.Images.Upload(ctx, file, imageFolder)
		if err != nil {
			status := http.StatusInternalServerError
			reason := "image upload failed"
			if errors.Is(err, imagehost.ErrUploadTimeout) {
				status = http.StatusGatewayTimeout
				reason = "image upload timed out"
			}
			l.Error("create_product_error", "status", status, "reason", reason, "error", err)
			return echo.NewHTTPError(status, reason)
		}
		product.ImageURL = url
	}

	if err := h.Catalog.CreateProduct(ctx, &product); err != nil {
		l.Warn("create_product_error", "error", err)
		return httpError(err)
	}

	if err := h.Search.IndexProduct(ctx, &product); err != nil {
		l.Error("create_product_index_error", "error", err)
	}

	publish(c, h.Producer, events.TopicProductEvents, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Product added!",
		"product": product,
	})
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	page := parseIntDefault(c.QueryParam("page"), 1)
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)

	result, err := h.Catalog.ListProducts(ctx, page, limit)
	if err != nil {
		logging.FromContext(ctx).Error("get_products_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// SearchProducts serves the substring search over name and category.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.search")

	term := c.QueryParam("name")
	page := parseIntDefault(c.QueryParam("page"), 1)
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)

	result, err := h.Catalog.SearchProducts(ctx, term, page, limit)
	if err != nil {
		l.Warn("search_products_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Catalog.GetProduct(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Warn("get_product_error", "product_id", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.patch")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Name        *string  `json:"productName"`
		Category    *string  `json:"productCategory"`
		Quantity    *int     `json:"productQuantity"`
		Price       *float64 `json:"productPrice"`
		Description *string  `json:"productDescription"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Catalog.PatchProduct(ctx, id, func(p *models.Product) {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Quantity != nil {
			p.Quantity = *req.Quantity
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
	})
	if err != nil {
		l.Warn("patch_product_error", "product_id", id, "error", err)
		return httpError(err)
	}

	if err := h.Search.IndexProduct(ctx, product); err != nil {
		l.Error("patch_product_index_error", "error", err)
	}

	publish(c, h.Producer, events.TopicProductEvents, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":      "product_updated",
		"productID": id,
		"name":      product.Name,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.delete")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Catalog.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_error", "product_id", id, "error", err)
		return httpError(err)
	}

	if err := h.Search.DeleteProduct(ctx, id); err != nil {
		l.Error("delete_product_index_error", "error", err)
	}

	publish(c, h.Producer, events.TopicProductEvents, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

// FullTextSearch serves the Elasticsearch-backed fuzzy search.
func (h *ProductHandler) FullTextSearch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.fulltext_search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "search term is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := h.Search.Search(ctx, q, from, size)
	if err != nil {
		l.Error("fulltext_search_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
