// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/GameXcalibur/LynxATS/internal/auth"
	"github.com/GameXcalibur/LynxATS/internal/config"
	"github.com/GameXcalibur/LynxATS/internal/connection"
	"github.com/GameXcalibur/LynxATS/internal/dashboard"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

// Backend is the storage the routes are served from, plus the connection
// state the health endpoint reports.
type Backend interface {
	store.Store
	State() connection.State
}

// MyServer holds what route handlers need
type MyServer struct {
	cfg     *config.Config
	db      Backend
	tokens  *auth.JWT
	boards  *dashboard.Service
	started time.Time
}

// New constructs a MyServer. started is reported as the start of uptime.
func New(cfg *config.Config, db Backend, tokens *auth.JWT, started time.Time) *MyServer {
	return &MyServer{
		cfg:     cfg,
		db:      db,
		tokens:  tokens,
		boards:  dashboard.NewService(db, cfg.Dashboard.CacheTTL),
		started: started,
	}
}

// NewHTTPServer wraps the routes of s in an http.Server listening on the
// configured port.
func (s *MyServer) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.RegisterRoutes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
