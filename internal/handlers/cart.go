package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"photofolio/internal/middleware/auth"
	"photofolio/internal/models"
	"photofolio/internal/store"
)

type CartHandler struct {
	Store store.Store
}

// Get returns the caller's cart. A user who never added anything has no
// cart yet, which is a 404 rather than an empty cart.
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.Store.GetCartByUser(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load cart")
	}
	if cart == nil {
		return errorResponse(c, http.StatusNotFound, "cart is empty")
	}
	return c.JSON(http.StatusOK, cart)
}

// Add creates the cart lazily on first use and merges quantity when the
// same product with the same options is already present.
func (h *CartHandler) Add(c echo.Context) error {
	var req struct {
		ProductID       string                 `json:"productId"`
		Quantity        int                    `json:"quantity"`
		SelectedOptions models.SelectedOptions `json:"selectedOptions"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ProductID == "" {
		return errorResponse(c, http.StatusBadRequest, "productId is required")
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	ctx := c.Request().Context()

	product, err := h.Store.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load product")
	}
	if product == nil {
		return errorResponse(c, http.StatusNotFound, "product not found")
	}

	userID := auth.UserID(c)
	cart, err := h.Store.GetCartByUser(ctx, userID)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load cart")
	}
	now := time.Now().UTC()
	if cart == nil {
		cart = &models.Cart{
			ID:        uuid.NewString(),
			UserID:    userID,
			CreatedAt: now,
		}
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID && cart.Items[i].SelectedOptions == req.SelectedOptions {
			cart.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:       req.ProductID,
			Quantity:        req.Quantity,
			Type:            product.Type,
			SelectedOptions: req.SelectedOptions,
		})
	}
	cart.UpdatedAt = now

	if err := h.Store.SaveCart(ctx, cart); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to save cart")
	}
	return c.JSON(http.StatusOK, cart)
}

// Remove drops every line for the given product id. The cart document
// itself stays, even when emptied.
func (h *CartHandler) Remove(c echo.Context) error {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ProductID == "" {
		return errorResponse(c, http.StatusBadRequest, "productId is required")
	}

	ctx := c.Request().Context()
	cart, err := h.Store.GetCartByUser(ctx, auth.UserID(c))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load cart")
	}
	if cart == nil {
		return errorResponse(c, http.StatusNotFound, "cart is empty")
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != req.ProductID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	cart.UpdatedAt = time.Now().UTC()

	if err := h.Store.SaveCart(ctx, cart); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to save cart")
	}
	return c.JSON(http.StatusOK, cart)
}
