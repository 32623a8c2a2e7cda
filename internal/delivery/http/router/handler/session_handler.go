package handler

import (
	"net/http"

	"ecofinds/internal/delivery/http/response"
	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	ViewUC    usecase.ViewUsecase
}

// SessionHandler serves login, logout and the current user.
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
	viewUC    usecase.ViewUsecase
}

// NewSessionHandler is the constructor for SessionHandler.
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		sessionUC: params.SessionUC,
		viewUC:    params.ViewUC,
	}
}

// Login stores the user and moves the view to the dashboard.
func (h *SessionHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	snap, err := h.viewUC.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, snap, "Login successful")
}

// Logout removes the user and returns the view to entry.
func (h *SessionHandler) Logout(c echo.Context) error {
	snap, err := h.viewUC.Logout(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, snap, "Logout successful")
}

// Current returns the stored user.
func (h *SessionHandler) Current(c echo.Context) error {
	user, err := h.sessionUC.CurrentUser(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}
