package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/agrodetect/backend/internal/api"
	"github.com/agrodetect/backend/internal/catalog"
	"github.com/agrodetect/backend/internal/config"
	"github.com/agrodetect/backend/internal/storage"
	"github.com/agrodetect/backend/internal/upload"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const configFileName = "agrodetect.config.xml"

func main() {
	log := logrus.New()

	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		log.WithError(err).Fatal("failed to get executable path")
	}
	configPath := filepath.Join(filepath.Dir(exePath), configFileName)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Advanced.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.Advanced.LogLevel).Warn("unknown log level, using info")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		log.WithError(err).Fatal("failed to create directories")
	}

	diseases, err := loadCatalog(cfg)
	if err != nil {
		log.WithError(err).WithField("file", cfg.Catalog.File).Fatal("failed to load disease catalog")
	}

	store, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	janitor := upload.NewJanitor(store,
		time.Duration(cfg.Storage.RetentionHours)*time.Hour,
		time.Duration(cfg.Storage.CleanupIntervalMinutes)*time.Minute,
		log)
	go janitor.Run(ctx)

	e := echo.New()
	e.HideBanner = true

	api.SetupMiddleware(e, api.MiddlewareOptions{
		RequestLogging:   cfg.Advanced.EnableRequestLogging,
		BodyLimit:        cfg.Server.BodyLimit,
		Compression:      cfg.Server.EnableCompression,
		CompressionLevel: cfg.Server.CompressionLevel,
	})

	handlers := api.NewHandlers(&api.Dependencies{
		Store:   store,
		Catalog: diseases,
		Log:     log,
		Version: Version,
	})
	api.RegisterRoutes(e, handlers, api.RouteOptions{
		AllowFileDeletion: cfg.Security.AllowFileDeletion,
	})

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	log.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"config":     configPath,
		"listen":     fmt.Sprintf("http://%s", cfg.GetServerAddr()),
		"uploads":    cfg.GetUploadDir(),
		"languages":  diseases.Languages(),
		"retention":  janitor.Enabled(),
	}).Info("AgroDetect backend starting")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	if err := e.StartServer(s); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server stopped")
}

// loadCatalog returns the configured YAML catalog or the built-in tables.
func loadCatalog(cfg *config.AppConfig) (*catalog.Catalog, error) {
	if cfg.Catalog.File == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.Catalog.File)
}
