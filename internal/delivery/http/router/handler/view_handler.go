package handler

import (
	"net/http"

	"ecofinds/internal/delivery/http/response"
	"ecofinds/internal/domain/entity"
	"ecofinds/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// NavigateRequest names the panel to switch to.
type NavigateRequest struct {
	View entity.View `json:"view" validate:"required"`
}

// ViewHandlerParams holds dependencies for ViewHandler, injected by Fx.
type ViewHandlerParams struct {
	fx.In

	ViewUC usecase.ViewUsecase
}

// ViewHandler exposes the screen state machine.
type ViewHandler struct {
	viewUC usecase.ViewUsecase
}

// NewViewHandler is the constructor for ViewHandler.
func NewViewHandler(params ViewHandlerParams) *ViewHandler {
	return &ViewHandler{viewUC: params.ViewUC}
}

func (h *ViewHandler) Snapshot(c echo.Context) error {
	snap, err := h.viewUC.Snapshot(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, snap, "")
}

func (h *ViewHandler) Navigate(c echo.Context) error {
	var req NavigateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid navigation input")
	}

	snap, err := h.viewUC.Navigate(c.Request().Context(), req.View)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, snap, "")
}

// BeginEdit loads the listing into the edit form.
func (h *ViewHandler) BeginEdit(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	editing, err := h.viewUC.BeginEdit(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, editing, "")
}

func (h *ViewHandler) CancelEdit(c echo.Context) error {
	if err := h.viewUC.CancelEdit(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Edit cancelled")
}

// SubmitDraft saves the form: an update in edit mode, a new listing otherwise.
func (h *ViewHandler) SubmitDraft(c echo.Context) error {
	var draft entity.ProductDraft
	if err := c.Bind(&draft); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.viewUC.SubmitDraft(c.Request().Context(), &draft)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product saved")
}
