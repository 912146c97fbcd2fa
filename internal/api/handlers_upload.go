// handlers_upload.go - Stored upload metadata handlers
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agrodetect/backend/internal/models"
	"github.com/agrodetect/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	store storage.Store
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(store storage.Store) UploadHandler {
	return &UploadHandlerImpl{store: store}
}

// HandleGetRecentUploads returns the most recently stored leaf images
func (h *UploadHandlerImpl) HandleGetRecentUploads(c echo.Context) error {
	limit := defaultRecentLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return NewBadRequestError("limit must be a positive integer", err)
		}
		limit = min(n, maxRecentLimit)
	}

	files, err := h.store.List(limit)
	if err != nil {
		return NewInternalError("failed to list uploads", err)
	}
	if files == nil {
		files = []*models.FileInfo{}
	}

	return c.JSON(http.StatusOK, files)
}

// HandleGetUpload returns metadata for a specific upload
func (h *UploadHandlerImpl) HandleGetUpload(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("upload", id)
	}

	return c.JSON(http.StatusOK, info)
}

// HandleDeleteUpload removes a stored upload
func (h *UploadHandlerImpl) HandleDeleteUpload(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NewNotFoundError("upload", id)
		}
		return NewInternalError("failed to delete upload", err)
	}

	return c.NoContent(http.StatusNoContent)
}
