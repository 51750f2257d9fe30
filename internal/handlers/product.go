package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"photofolio/internal/models"
	"photofolio/internal/store"
	"photofolio/internal/util"
)

type ProductHandler struct {
	Store store.Store
}

func (h *ProductHandler) List(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	page, offset, limit := util.Calculate(page, size)

	items, total, err := h.Store.ListProducts(c.Request().Context(), store.ProductFilter{
		Category:     strings.TrimSpace(c.QueryParam("category")),
		FeaturedOnly: util.ParseBool(c.QueryParam("featured"), false),
		Offset:       offset,
		Limit:        limit,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list products")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": pageMeta(page, limit, total, offset),
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.Store.GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load product")
	}
	if product == nil {
		return errorResponse(c, http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Price           float64                `json:"price"`
	Category        string                 `json:"category"`
	Stock           int                    `json:"stock"`
	ThumbnailURL    string                 `json:"thumbnailUrl"`
	PhotoIDs        []string               `json:"photos"`
	Tags            string                 `json:"tags"`
	DisplayFlags    models.DisplayFlags    `json:"displayFlags"`
	Type            string                 `json:"type"`
	DigitalDownload models.DigitalDownload `json:"digitalDownload"`
	PrintOptions    models.PrintOptions    `json:"printOptions"`
}

func validProductType(t string) bool {
	switch t {
	case models.ProductDigital, models.ProductPrint, models.ProductMixed:
		return true
	}
	return false
}

// Search matches name, description, tags and category. One-character
// queries are rejected, they match too broadly to be useful.
func (h *ProductHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if len(q) < 2 {
		return errorResponse(c, http.StatusBadRequest, "query parameter q must be at least 2 characters")
	}

	items, total, err := h.Store.ListProducts(c.Request().Context(), store.ProductFilter{
		Search: q,
		Limit:  util.DefaultPageSize,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to search products")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "data": items})
}

func (h *ProductHandler) ByTag(c echo.Context) error {
	items, _, err := h.Store.ListProducts(c.Request().Context(), store.ProductFilter{
		Tag: strings.ToLower(strings.TrimSpace(c.Param("tag"))),
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list products")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// Latest returns the newest products, newest first.
func (h *ProductHandler) Latest(c echo.Context) error {
	items, _, err := h.Store.ListProducts(c.Request().Context(), store.ProductFilter{
		Limit: util.DefaultPageSize,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list products")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errorResponse(c, http.StatusBadRequest, "name is required")
	}
	if req.Price < 0 {
		return errorResponse(c, http.StatusBadRequest, "price cannot be negative")
	}
	if !validProductType(req.Type) {
		return errorResponse(c, http.StatusBadRequest, "type must be digital, print or mixed")
	}
	// a digital product without a file has nothing to deliver
	if req.Type != models.ProductPrint && req.DigitalDownload.FileURL == "" {
		return errorResponse(c, http.StatusBadRequest, "digital products require a download fileUrl")
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     strings.TrimSpace(req.Description),
		Price:           req.Price,
		Category:        strings.TrimSpace(req.Category),
		Stock:           req.Stock,
		ThumbnailURL:    req.ThumbnailURL,
		PhotoIDs:        req.PhotoIDs,
		Tags:            util.ParseTags(req.Tags),
		DisplayFlags:    req.DisplayFlags,
		Type:            req.Type,
		DigitalDownload: req.DigitalDownload,
		PrintOptions:    req.PrintOptions,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.Store.CreateProduct(c.Request().Context(), product); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to create product")
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	var req struct {
		Name            string                  `json:"name"`
		Description     string                  `json:"description"`
		Price           float64                 `json:"price"`
		Category        string                  `json:"category"`
		Stock           *int                    `json:"stock"`
		ThumbnailURL    string                  `json:"thumbnailUrl"`
		PhotoIDs        []string                `json:"photos"`
		Tags            string                  `json:"tags"`
		DisplayFlags    *models.DisplayFlags    `json:"displayFlags"`
		Type            string                  `json:"type"`
		DigitalDownload *models.DigitalDownload `json:"digitalDownload"`
		PrintOptions    *models.PrintOptions    `json:"printOptions"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	product, err := h.Store.GetProductByID(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load product")
	}
	if product == nil {
		return errorResponse(c, http.StatusNotFound, "product not found")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		product.Name = name
	}
	if req.Description != "" {
		product.Description = strings.TrimSpace(req.Description)
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Category != "" {
		product.Category = strings.TrimSpace(req.Category)
	}
	if req.Stock != nil && *req.Stock >= 0 {
		product.Stock = *req.Stock
	}
	if req.ThumbnailURL != "" {
		product.ThumbnailURL = req.ThumbnailURL
	}
	if req.PhotoIDs != nil {
		product.PhotoIDs = req.PhotoIDs
	}
	if req.Tags != "" {
		product.Tags = util.ParseTags(req.Tags)
	}
	if req.DisplayFlags != nil {
		product.DisplayFlags = *req.DisplayFlags
	}
	if req.Type != "" {
		if !validProductType(req.Type) {
			return errorResponse(c, http.StatusBadRequest, "type must be digital, print or mixed")
		}
		product.Type = req.Type
	}
	if req.DigitalDownload != nil && req.DigitalDownload.FileURL != "" {
		product.DigitalDownload = *req.DigitalDownload
	}
	if req.PrintOptions != nil {
		product.PrintOptions = *req.PrintOptions
	}
	if product.Type != models.ProductPrint && product.DigitalDownload.FileURL == "" {
		return errorResponse(c, http.StatusBadRequest, "digital products require a download fileUrl")
	}
	product.UpdatedAt = time.Now().UTC()

	if err := h.Store.UpdateProduct(ctx, product); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to update product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	err := h.Store.DeleteProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, "product not found")
		}
		return errorResponse(c, http.StatusInternalServerError, "failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}
