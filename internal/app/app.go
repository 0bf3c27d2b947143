package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/assetbake/internal/ctxlog"
	"github.com/vk/assetbake/internal/manifest"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	manifest   *manifest.Config
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and loaded manifest.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	m, err := manifest.Load(ctx, appConfig.ManifestPath)
	if err != nil {
		// A failure to load the manifest is a fatal startup error.
		panic(fmt.Errorf("failed to load bake manifest: %w", err))
	}
	logger.Debug("Bake manifest loaded.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		manifest: m,
	}
}

// Manifest returns the loaded bake manifest. This is primarily for testing.
func (a *App) Manifest() *manifest.Config {
	return a.manifest
}
