package handler

import (
	"strconv"

	domainerrors "ecofinds/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// productIDParam reads the :id path parameter.
func productIDParam(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("invalid product id: " + raw)
	}

	return id, nil
}
