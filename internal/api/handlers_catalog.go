// handlers_catalog.go - Read-only catalog endpoints
package api

import (
	"net/http"

	"github.com/agrodetect/backend/internal/catalog"
	"github.com/agrodetect/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// CatalogHandlerImpl implements the CatalogHandler interface
type CatalogHandlerImpl struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog) CatalogHandler {
	return &CatalogHandlerImpl{catalog: cat}
}

// HandleGetLanguages lists the supported languages and the fallback
func (h *CatalogHandlerImpl) HandleGetLanguages(c echo.Context) error {
	return c.JSON(http.StatusOK, models.LanguagesResponse{
		Languages: h.catalog.Languages(),
		Default:   h.catalog.Fallback(),
	})
}

// HandleGetCatalog returns the full table for a language, falling back
// like the detect endpoint does
func (h *CatalogHandlerImpl) HandleGetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.resolve(c))
}

// HandleGetCatalogMsgpack returns the same table encoded as MessagePack
func (h *CatalogHandlerImpl) HandleGetCatalogMsgpack(c echo.Context) error {
	data, err := msgpack.Marshal(h.resolve(c))
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}

	return c.Blob(http.StatusOK, "application/msgpack", data)
}

func (h *CatalogHandlerImpl) resolve(c echo.Context) models.CatalogResponse {
	lang, table := h.catalog.Table(c.Param("language"))
	return models.CatalogResponse{
		Language: lang,
		Diseases: table,
	}
}
