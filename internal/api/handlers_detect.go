// handlers_detect.go - Leaf upload and disease lookup
package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/agrodetect/backend/internal/catalog"
	"github.com/agrodetect/backend/internal/models"
	"github.com/agrodetect/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	leafField     = "leaf"
	languageField = "language"
)

// DetectHandlerImpl implements the DetectHandler interface
type DetectHandlerImpl struct {
	catalog *catalog.Catalog
	store   storage.Store
	log     logrus.FieldLogger
}

// NewDetectHandler creates a new detect handler
func NewDetectHandler(cat *catalog.Catalog, store storage.Store, log logrus.FieldLogger) DetectHandler {
	return &DetectHandlerImpl{
		catalog: cat,
		store:   store,
		log:     log,
	}
}

// HandleDetect stores the uploaded leaf image and answers with the disease
// records selected by its stored filename. Missing files, unknown languages
// and storage failures are tolerated; the response is always 200.
func (h *DetectHandlerImpl) HandleDetect(c echo.Context) error {
	lang := h.catalog.Resolve(c.FormValue(languageField))

	var fileName string
	file, err := c.FormFile(leafField)
	switch {
	case err == nil:
		fileName = h.saveLeaf(file)
	case !errors.Is(err, http.ErrMissingFile):
		h.log.WithError(err).Debug("detect request without readable upload")
	}

	diseases := h.catalog.Classify(lang, strings.ToLower(fileName))

	return c.JSON(http.StatusOK, models.DetectResponse{
		Success:  true,
		Diseases: diseases,
	})
}

// saveLeaf persists the upload and returns its stored name. When the write
// fails the name it would have been stored under is returned instead.
func (h *DetectHandlerImpl) saveLeaf(file *multipart.FileHeader) string {
	entry := h.log.WithField("file", file.Filename)

	src, err := file.Open()
	if err != nil {
		entry.WithError(err).Warn("failed to open uploaded file")
		return storage.StoredName(time.Now(), file.Filename)
	}
	defer src.Close()

	info, err := h.store.Save(file.Filename, src)
	if err != nil {
		entry.WithError(err).Warn("failed to save uploaded file")
		return storage.StoredName(time.Now(), file.Filename)
	}

	entry.WithFields(logrus.Fields{
		"id":     info.ID,
		"stored": info.StoredName,
		"size":   info.Size,
	}).Debug("leaf stored")

	return info.StoredName
}
