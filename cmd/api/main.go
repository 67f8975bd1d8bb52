// Command api serves the LynxATS HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/GameXcalibur/LynxATS/internal/auth"
	"github.com/GameXcalibur/LynxATS/internal/config"
	"github.com/GameXcalibur/LynxATS/internal/database"
	"github.com/GameXcalibur/LynxATS/internal/logger"
	"github.com/GameXcalibur/LynxATS/internal/server"
)

func main() {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Setup(cfg.Logger); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logger.Cleanup()

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := auth.New(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to set up authentication: %v", err)
	}

	backend, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout)
	if err := backend.Warm(warmCtx); err != nil {
		log.Warnf("Database not reachable at startup, will connect on first use: %v", err)
	}
	cancelWarm()
	backend.StartWatchdog()

	srv := server.New(cfg, backend, tokens, started).NewHTTPServer()

	go func() {
		defer logger.Recover("http server")
		log.Infof("Server starting on %s (driver %s)", srv.Addr, backend.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("Received %s, shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	if err := backend.Close(ctx); err != nil {
		log.Errorf("Error closing database: %v", err)
	}

	log.Info("Server exited")
}
