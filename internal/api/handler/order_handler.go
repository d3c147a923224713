package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaffehuset/coffeeshop-api/internal/api/metrics"
	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

// OrderHandler handles checkout and order retrieval.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type checkoutResponse struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	Total       int64  `json:"total"`
	CreatedAt   string `json:"created_at"`
}

// Checkout handles POST /api/checkout — turns the caller's cart into an order.
//
// @Summary      Checkout the caller's cart
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string  false  "Idempotency key to prevent duplicate submissions"
// @Success      201              {object}  checkoutResponse
// @Failure      401              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/checkout [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	username, _ := c.Get("username").(string)
	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	result, err := h.service.Checkout(c.Request().Context(), username, idempotencyKey)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "shopping cart is empty"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create order"})
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	} else {
		metrics.OrdersCreatedTotal.Inc()
	}

	return c.JSON(status, checkoutResponse{
		OrderNumber: result.OrderNumber,
		Status:      result.Status,
		Total:       result.Total,
		CreatedAt:   result.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// List handles GET /api/orders — the caller's orders; admins see all.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  errorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	username, _ := c.Get("username").(string)
	admin, _ := c.Get("admin").(bool)

	orders, err := h.service.List(c.Request().Context(), username, admin)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:orderNumber.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderNumber  path      string  true  "Order number (e.g. CS-7A8B9C2D)"
// @Success      200          {object}  domain.Order
// @Failure      403          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /api/orders/{orderNumber} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	username, _ := c.Get("username").(string)
	admin, _ := c.Get("admin").(bool)

	order, err := h.service.Get(c.Request().Context(), username, admin, c.Param("orderNumber"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
		}
		return err
	}
	return c.JSON(http.StatusOK, order)
}
