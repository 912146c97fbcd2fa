// routes.go - Route registration helpers
package api

import (
	"net/http"
	"strings"

	"github.com/agrodetect/backend/internal/catalog"
	"github.com/agrodetect/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store   storage.Store
	Catalog *catalog.Catalog
	Log     logrus.FieldLogger
	Version string
}

// Handlers holds all handler instances
type Handlers struct {
	Health  HealthHandler
	Detect  DetectHandler
	Catalog CatalogHandler
	Upload  UploadHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Version),
		Detect:  NewDetectHandler(deps.Catalog, deps.Store, deps.Log),
		Catalog: NewCatalogHandler(deps.Catalog),
		Upload:  NewUploadHandler(deps.Store),
	}
}

// RouteOptions toggles optional routes
type RouteOptions struct {
	AllowFileDeletion bool
}

// RegisterRoutes registers all routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers, opts RouteOptions) {
	e.POST("/detect", handlers.Detect.HandleDetect)

	apiGroup := e.Group("/api")
	apiGroup.GET("/health", handlers.Health.HandleHealth)
	apiGroup.POST("/detect", handlers.Detect.HandleDetect)

	apiGroup.GET("/languages", handlers.Catalog.HandleGetLanguages)
	apiGroup.GET("/catalog/:language", handlers.Catalog.HandleGetCatalog)
	apiGroup.GET("/catalog/:language/msgpack", handlers.Catalog.HandleGetCatalogMsgpack)

	apiGroup.GET("/uploads/recent", handlers.Upload.HandleGetRecentUploads)
	apiGroup.GET("/uploads/:id", handlers.Upload.HandleGetUpload)
	if opts.AllowFileDeletion {
		apiGroup.DELETE("/uploads/:id", handlers.Upload.HandleDeleteUpload)
	}
}

// MiddlewareOptions configures SetupMiddleware
type MiddlewareOptions struct {
	RequestLogging   bool
	BodyLimit        string // empty disables the limit
	Compression      bool
	CompressionLevel int
}

// SetupMiddleware configures common middleware. CORS is open to every origin.
func SetupMiddleware(e *echo.Echo, opts MiddlewareOptions) {
	e.HTTPErrorHandler = ErrorHandler

	if opts.RequestLogging {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Skipper: func(c echo.Context) bool {
				return strings.HasSuffix(c.Request().URL.Path, "/health")
			},
		}))
	}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	if opts.Compression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: opts.CompressionLevel,
		}))
	}

	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
}
