package middleware

import (
	deliverycontext "ecofinds/internal/delivery/context"
	"ecofinds/internal/delivery/http/response"
	"ecofinds/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionMiddlewareParams holds dependencies for SessionMiddleware, injected by Fx.
type SessionMiddlewareParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
}

// SessionMiddleware rejects requests made while nobody is logged in.
type SessionMiddleware struct {
	sessionUC usecase.SessionUsecase
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(params SessionMiddlewareParams) *SessionMiddleware {
	return &SessionMiddleware{sessionUC: params.SessionUC}
}

// RequireSession loads the stored user into the echo.Context or answers 401 NO_SESSION.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.sessionUC.CurrentUser(c.Request().Context())
		if err != nil {
			return response.AppError(c, err)
		}
		deliverycontext.SetUser(c, user)

		return next(c)
	}
}
