package handler

import (
	"net/http"

	"ecofinds/internal/delivery/http/response"
	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/service"
	"ecofinds/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	QRCode    service.QRCodeService
}

// ProductHandler serves the catalog.
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
	qrCode    service.QRCodeService
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		catalogUC: params.CatalogUC,
		qrCode:    params.QRCode,
	}
}

// List returns the listings matching the q query parameter.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalogUC.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}
	if products == nil {
		products = []entity.Product{}
	}

	return response.Success(c, http.StatusOK, products, "")
}

func (h *ProductHandler) Create(c echo.Context) error {
	var draft entity.ProductDraft
	if err := c.Bind(&draft); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.catalogUC.Create(c.Request().Context(), &draft)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created")
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	product, err := h.catalogUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// Update applies the fields present in the body. Absent fields keep their value.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var patch entity.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.catalogUC.Update(c.Request().Context(), id, &patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated")
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.catalogUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted")
}

// QRCode renders the listing's share link as a PNG.
func (h *ProductHandler) QRCode(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := h.catalogUC.Get(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrCode.GenerateListingQR(id)
	if err != nil {
		return errors.Wrap(err, "failed to generate listing QR code")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
