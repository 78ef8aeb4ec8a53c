package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arrosage/arrosage/engine/command"
	"github.com/arrosage/arrosage/engine/mode"
	"github.com/arrosage/arrosage/engine/status"
	"github.com/arrosage/arrosage/pkg/config"
	"github.com/arrosage/arrosage/pkg/logger"
)

// Server exposes the mode/status/pause/resume API over plain HTTP.
type Server struct {
	cfg      *config.ServerConfig
	modes    *mode.Repository
	statuses *status.Repository
	cmds     *command.Commands
	router   *gin.Engine
}

// New builds the server and its routes.
func New(
	cfg *config.ServerConfig,
	modes *mode.Repository,
	statuses *status.Repository,
	cmds *command.Commands,
) *Server {
	s := &Server{cfg: cfg, modes: modes, statuses: statuses, cmds: cmds}
	s.buildRouter()
	return s
}

func (s *Server) buildRouter() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware())
	s.registerRoutes(r)
	s.router = r
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until SIGINT/SIGTERM or context cancellation, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP API listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	case <-quit:
	}
	log.Info("shutting down HTTP API")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
