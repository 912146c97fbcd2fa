// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// DetectHandler handles leaf uploads and returns matching disease records
type DetectHandler interface {
	HandleDetect(c echo.Context) error
}

// CatalogHandler exposes the disease catalog read-only
type CatalogHandler interface {
	HandleGetLanguages(c echo.Context) error
	HandleGetCatalog(c echo.Context) error
	HandleGetCatalogMsgpack(c echo.Context) error
}

// UploadHandler handles stored upload metadata
type UploadHandler interface {
	HandleGetRecentUploads(c echo.Context) error
	HandleGetUpload(c echo.Context) error
	HandleDeleteUpload(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
