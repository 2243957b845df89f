package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/atlasagency/server/internal/config"
	"codeberg.org/atlasagency/server/internal/logger"
)

// @title Atlas Agency API
// @version 1.0
// @description Trip itinerary generation with a free first day and a license-gated remainder
// @description
// @description Features:
// @description - Itinerary generation from trip preferences
// @description - Day 1 preview, remaining days and budget summary unlocked by a license key
// @description - Per-visitor sessions carried in a signed cookie

// @contact.name API Support
// @contact.url https://codeberg.org/atlasagency/server

func main() {
	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	logger.SetDefault(logger.New(cfg.Environment))
	logger.Info("starting atlas server", "environment", cfg.Environment, "provider", cfg.Generator.Provider)

	// create server with all dependencies
	srv, err := NewServer(context.Background(), cfg)
	if err != nil {
		logger.FatalErr(err, "failed to create server")
	}

	logger.Info("text generator ready", "model", srv.services.Generator.Model())

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     srv.router,
		ReadTimeout: 15 * time.Second,
		// generation of long trips can take minutes
		WriteTimeout: 200 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalErr(err, "server failed to start")
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// close session store
	srv.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown

	logger.Info("server stopped")
}
