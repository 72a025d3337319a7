package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bagibarang-its/inventory-api/internal/api/metrics"
	"github.com/bagibarang-its/inventory-api/internal/core/domain"
	"github.com/bagibarang-its/inventory-api/internal/infrastructure/imaging"
)

// PhotoStore persists a normalised photo and returns its public URL.
type PhotoStore interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
}

// UploadHandler accepts item photos.
type UploadHandler struct {
	store    PhotoStore
	maxBytes int64
	log      zerolog.Logger
}

func NewUploadHandler(store PhotoStore, maxBytes int64, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{store: store, maxBytes: maxBytes, log: log}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /upload.
//
// @Summary      Upload an item photo
// @Description  JPEG or PNG only. The stored copy is a JPEG no larger than 1024px on either side.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Photo"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if _, err := ctxOrganization(c); err != nil {
		return err
	}

	data, err := h.readFile(c)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	photo, err := imaging.Normalize(data)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		if errors.Is(err, imaging.ErrCorrupt) {
			return domain.Invalid(imaging.ErrCorrupt.Error())
		}
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return domain.Invalid(imaging.ErrUnsupportedFormat.Error())
		}
		return err
	}

	url, err := h.store.Save(c.Request().Context(), photo.Data, ".jpg")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("store photo: %w", err)
	}

	h.log.Info().
		Str("url", url).
		Str("content_type", photo.ContentType()).
		Int("width", photo.Width).
		Int("height", photo.Height).
		Msg("photo stored")
	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}

func (h *UploadHandler) readFile(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, domain.Invalid("file is required")
	}
	if fh.Size > h.maxBytes {
		return nil, domain.Invalid(fmt.Sprintf("file must be at most %d bytes", h.maxBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, domain.Invalid(fmt.Sprintf("file must be at most %d bytes", h.maxBytes))
	}
	return data, nil
}
