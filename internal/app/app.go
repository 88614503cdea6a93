// Package app runs the insight receiver: HTTP server plus worker pool.
package app

import (
	"log/slog"

	"github.com/sevigo/mamba-review/internal/config"
	"github.com/sevigo/mamba-review/internal/core"
	"github.com/sevigo/mamba-review/internal/server"
)

// App holds the long-running components of `mamba serve`.
type App struct {
	cfg        *config.Config
	server     *server.Server
	dispatcher core.InsightDispatcher
	logger     *slog.Logger
}

func NewApp(cfg *config.Config, srv *server.Server, dispatcher core.InsightDispatcher, logger *slog.Logger) *App {
	return &App{cfg: cfg, server: srv, dispatcher: dispatcher, logger: logger}
}

// Start blocks while the HTTP server runs.
func (a *App) Start() error {
	a.logger.Info("starting insight receiver", "port", a.cfg.Server.Port, "max_workers", a.cfg.Server.MaxWorkers)
	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts the server down first so no new insights arrive, then drains
// the worker pool.
func (a *App) Stop() error {
	a.logger.Info("shutting down insight receiver")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.dispatcher.Stop()

	if serverErr != nil {
		return serverErr
	}
	a.logger.Info("insight receiver stopped")
	return nil
}
