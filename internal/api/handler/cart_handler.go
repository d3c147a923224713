package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

// CartHandler handles HTTP requests for the caller's shopping cart. All
// routes sit behind the strict Auth middleware, so the username claim is
// always present.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type cartPutRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity"   validate:"required,gt=0"`
}

// Items handles GET /api/cart.
//
// @Summary      List the caller's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CartItem
// @Failure      401  {object}  errorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Items(c echo.Context) error {
	username, _ := c.Get("username").(string)

	items, err := h.service.Items(c.Request().Context(), username)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.CartItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// Put handles POST /api/cart — sets the quantity for one product line.
//
// @Summary      Add or update a cart line
// @Tags         cart
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  cartPutRequest  true  "Cart line"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/cart [post]
func (h *CartHandler) Put(c echo.Context) error {
	username, _ := c.Get("username").(string)

	var req cartPutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.service.Put(c.Request().Context(), username, req.ProductID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove handles DELETE /api/cart/:productId.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Security     BearerAuth
// @Param        productId  path  int  true  "Product id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /api/cart/{productId} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	username, _ := c.Get("username").(string)

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
	}

	if err := h.service.Remove(c.Request().Context(), username, productID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
