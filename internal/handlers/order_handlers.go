package handlers

import (
	"net/http"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
	}
}

// PlaceOrder handles POST /orders
func (h *OrderHandlers) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var draft models.OrderDraft
	if err := c.Bind(&draft); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.orderService.PlaceOrder(ctx, &draft)
	if err != nil {
		return respondError(c, "Order", "Failed to place order", err)
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetOrder(ctx, id)
	if err != nil {
		return respondError(c, "Order", "Failed to get order", err)
	}

	return c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /admin/orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListOrders(ctx, c.QueryParam("status"))
	if err != nil {
		return respondError(c, "Order", "Failed to list orders", err)
	}

	if orders == nil {
		orders = []*models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus handles PATCH /admin/orders/:id/status
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	requested, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return common.SendValidationError(c, "status", err.Error())
	}

	order, err := h.orderService.Transition(ctx, id, requested)
	if err != nil {
		return respondError(c, "Order", "Failed to update order status", err)
	}

	return c.JSON(http.StatusOK, order)
}
