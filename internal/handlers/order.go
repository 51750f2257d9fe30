package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"photofolio/internal/events"
	"photofolio/internal/middleware/auth"
	"photofolio/internal/models"
	"photofolio/internal/store"
	"photofolio/internal/util"
)

// Orders above this total ship free.
const freeShippingThreshold = 100.0

type OrderHandler struct {
	Store    store.Store
	Producer events.Publisher
}

// Create turns the caller's cart into a pending order. Prices are
// snapshotted from the products at order time, digital items get their
// download link attached, and the cart is emptied afterwards.
func (h *OrderHandler) Create(c echo.Context) error {
	var req struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	userID := auth.UserID(c)

	cart, err := h.Store.GetCartByUser(ctx, userID)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load cart")
	}
	if cart == nil || len(cart.Items) == 0 {
		return errorResponse(c, http.StatusBadRequest, "cart is empty")
	}

	var (
		items      []models.OrderItem
		total      float64
		hasDigital bool
		hasPrint   bool
	)
	for _, ci := range cart.Items {
		product, err := h.Store.GetProductByID(ctx, ci.ProductID)
		if err != nil {
			return errorResponse(c, http.StatusInternalServerError, "failed to load product")
		}
		if product == nil {
			return errorResponse(c, http.StatusBadRequest, "cart references a product that no longer exists")
		}

		item := models.OrderItem{
			ProductID:       ci.ProductID,
			Quantity:        ci.Quantity,
			UnitPrice:       product.Price,
			SelectedOptions: ci.SelectedOptions,
		}
		if product.Type != models.ProductPrint {
			item.DownloadLink = product.DigitalDownload.FileURL
			hasDigital = true
		}
		if product.Type != models.ProductDigital {
			hasPrint = true
		}
		total += product.Price * float64(ci.Quantity)
		items = append(items, item)
	}

	orderType := models.ProductMixed
	switch {
	case hasDigital && !hasPrint:
		orderType = models.ProductDigital
	case hasPrint && !hasDigital:
		orderType = models.ProductPrint
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		Type:            orderType,
		TotalPrice:      total,
		Status:          models.OrderPending,
		FreeShipping:    total >= freeShippingThreshold || orderType == models.ProductDigital,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.Store.CreateOrder(ctx, order); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to create order")
	}

	cart.Items = []models.CartItem{}
	cart.UpdatedAt = now
	if err := h.Store.SaveCart(ctx, cart); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "order created but failed to empty cart")
	}

	publish(c, h.Producer, events.TopicOrderEvents, order.ID, map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"userID":  userID,
		"total":   order.TotalPrice,
	})

	return c.JSON(http.StatusCreated, order)
}

// Get enforces owner-or-admin access. A foreign order is reported as not
// found, not forbidden, so order ids cannot be probed.
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.Store.GetOrderByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load order")
	}
	if order == nil || (order.UserID != auth.UserID(c) && !auth.IsAdmin(c)) {
		return errorResponse(c, http.StatusNotFound, "order not found")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	orders, err := h.Store.ListOrders(c.Request().Context(), store.OrderFilter{
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list orders")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": orders})
}

// ---- admin ----

func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.Store.ListOrders(c.Request().Context(), store.OrderFilter{})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list orders")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": orders})
}

func (h *OrderHandler) ListByStatus(c echo.Context) error {
	status := c.Param("status")
	if !models.ValidOrderStatus(status) {
		return errorResponse(c, http.StatusBadRequest, "unknown order status")
	}
	orders, err := h.Store.ListOrders(c.Request().Context(), store.OrderFilter{Status: status})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list orders")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": orders})
}

// ListByUser looks up a customer's order history for support work.
func (h *OrderHandler) ListByUser(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return errorResponse(c, http.StatusBadRequest, "userId is required")
	}
	orders, err := h.Store.ListOrders(c.Request().Context(), store.OrderFilter{UserID: userID})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list orders")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": orders})
}

func (h *OrderHandler) Latest(c echo.Context) error {
	limit := util.ParseIntDefault(c.QueryParam("limit"), 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	orders, err := h.Store.ListOrders(c.Request().Context(), store.OrderFilter{Limit: limit})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list orders")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": orders})
}

// Update lets an admin correct shipping and payment details; items, totals
// and ownership are settled at creation and stay as they are.
func (h *OrderHandler) Update(c echo.Context) error {
	var req struct {
		ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
		PaymentInfo     *models.PaymentInfo     `json:"paymentInfo"`
		FreeShipping    *bool                   `json:"freeShipping"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	order, err := h.Store.GetOrderByID(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load order")
	}
	if order == nil {
		return errorResponse(c, http.StatusNotFound, "order not found")
	}

	if req.ShippingAddress != nil {
		order.ShippingAddress = *req.ShippingAddress
	}
	if req.PaymentInfo != nil {
		order.PaymentInfo = *req.PaymentInfo
	}
	if req.FreeShipping != nil {
		order.FreeShipping = *req.FreeShipping
	}
	order.UpdatedAt = time.Now().UTC()

	if err := h.Store.UpdateOrder(ctx, order); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to update order")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if !models.ValidOrderStatus(req.Status) {
		return errorResponse(c, http.StatusBadRequest, "unknown order status")
	}

	ctx := c.Request().Context()
	order, err := h.Store.GetOrderByID(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load order")
	}
	if order == nil {
		return errorResponse(c, http.StatusNotFound, "order not found")
	}

	order.Status = req.Status
	if req.Status == models.OrderPaid && order.PaymentInfo.PaidAt == nil {
		now := time.Now().UTC()
		order.PaymentInfo.PaidAt = &now
	}
	order.UpdatedAt = time.Now().UTC()

	if err := h.Store.UpdateOrder(ctx, order); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to update order")
	}

	publish(c, h.Producer, events.TopicOrderEvents, order.ID, map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	err := h.Store.DeleteOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, "order not found")
		}
		return errorResponse(c, http.StatusInternalServerError, "failed to delete order")
	}
	return c.NoContent(http.StatusNoContent)
}
