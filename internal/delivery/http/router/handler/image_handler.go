package handler

import (
	"net/http"
	"strings"

	"ecofinds/config"
	"ecofinds/internal/delivery/http/response"
	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/domain/service"
	"ecofinds/internal/usecase"
	"ecofinds/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// imageFormField is the multipart field carrying the upload.
const imageFormField = "image"

// multipartOverhead allows for boundaries and headers around the file part.
const multipartOverhead = 64 << 10

// ImageHandlerParams holds dependencies for ImageHandler, injected by Fx.
type ImageHandlerParams struct {
	fx.In

	Config *config.Config
	ViewUC usecase.ViewUsecase
	Images service.ImageStorage
}

// ImageHandler accepts listing image uploads and serves stored images.
type ImageHandler struct {
	maxUploadSize int64
	viewUC        usecase.ViewUsecase
	images        service.ImageStorage
}

// NewImageHandler is the constructor for ImageHandler.
func NewImageHandler(params ImageHandlerParams) *ImageHandler {
	return &ImageHandler{
		maxUploadSize: params.Config.Images.MaxUploadSize,
		viewUC:        params.ViewUC,
		images:        params.Images,
	}
}

// Upload stages an image for the form being filled in.
func (h *ImageHandler) Upload(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxUploadSize+multipartOverhead)

	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.WithStack(h.tooLarge())
		}

		return response.BindingError(c, "INVALID_INPUT", "Missing image file")
	}
	if fileHeader.Size > h.maxUploadSize {
		return errors.WithStack(h.tooLarge())
	}

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unsupported content type: " + contentType))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	stored, err := h.viewUC.UploadImage(req.Context(), file, contentType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, stored, "Image uploaded")
}

func (h *ImageHandler) tooLarge() error {
	return domainerrors.ErrImageTooLarge.WithDetails("limit is " + util.FormatBytes(h.maxUploadSize))
}

// Download streams a stored image.
func (h *ImageHandler) Download(c echo.Context) error {
	rc, contentType, err := h.images.Open(c.Request().Context(), c.Param("key"))
	if errors.Is(err, service.ErrImageNotFound) {
		return errors.WithStack(domainerrors.ErrImageNotFound)
	}
	if err != nil {
		return errors.WithStack(err)
	}
	defer rc.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")

	return c.Stream(http.StatusOK, contentType, rc)
}
