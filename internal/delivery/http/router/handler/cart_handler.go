package handler

import (
	"net/http"

	"ecofinds/internal/delivery/http/response"
	"ecofinds/internal/domain/entity"
	"ecofinds/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// AddToCartRequest names the listing to copy into the cart.
type AddToCartRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// CartResponse is the cart contents with its total.
type CartResponse struct {
	Items []entity.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
}

// CartHandler serves the cart, checkout and purchase history.
type CartHandler struct {
	cartUC usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{cartUC: params.CartUC}
}

func (h *CartHandler) Get(c echo.Context) error {
	items, err := h.cartUC.Items(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	if items == nil {
		items = []entity.CartItem{}
	}

	return response.Success(c, http.StatusOK, CartResponse{
		Items: items,
		Total: entity.CartTotal(items),
	}, "")
}

func (h *CartHandler) Add(c echo.Context) error {
	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "product_id is required")
	}

	item, err := h.cartUC.Add(c.Request().Context(), req.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Added to cart")
}

func (h *CartHandler) Checkout(c echo.Context) error {
	receipt, err := h.cartUC.Checkout(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, receipt, "Checkout complete")
}

func (h *CartHandler) Purchases(c echo.Context) error {
	records, err := h.cartUC.Purchases(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	if records == nil {
		records = []entity.PurchaseRecord{}
	}

	return response.Success(c, http.StatusOK, records, "")
}
