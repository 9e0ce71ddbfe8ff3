// Package server hosts the daemon's HTTP surface: static assets, health,
// and whatever query routes the caller registers on Engine.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aevon-lab/thermod/internal/core/config"
	httperr "github.com/aevon-lab/thermod/internal/core/errors"
	"github.com/gin-gonic/gin"
)

const (
	shutdownTimeout = 5 * time.Second
	healthTimeout   = 2 * time.Second

	fallbackPage = "<html><body><h1>Hello, World!</h1></body></html>"
)

// assets maps request paths to files under ServerConfig.AssetsDir.
var assets = []struct {
	route       string
	file        string
	contentType string
}{
	{"/", "index.html", "text/html"},
	{"/style.css", "style.css", "text/css"},
	{"/script.js", "script.js", "application/javascript"},
}

// HealthChecker is an interface for components that can report their health status.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	Engine *gin.Engine
	Addr   string

	assetsDir string
	health    HealthChecker
	logger    *slog.Logger
}

// New builds the engine with the common middleware, the asset routes, /health
// and the fallback page. health may be nil.
func New(cfg config.ServerConfig, health HealthChecker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	// Set Gin mode based on configuration
	if cfg.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(logger), noCache(), contentLength())

	s := &Server{
		Engine:    r,
		Addr:      cfg.Addr(),
		assetsDir: cfg.AssetsDir,
		health:    health,
		logger:    logger,
	}

	for _, a := range assets {
		r.GET(a.route, s.assetHandler(a.file, a.contentType))
	}
	r.GET("/health", s.healthHandler)
	r.NoRoute(func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html", []byte(fallbackPage))
	})

	return s
}

func (s *Server) assetHandler(name, contentType string) gin.HandlerFunc {
	path := filepath.Join(s.assetsDir, name)
	return func(c *gin.Context) {
		body, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("[Server] Asset unavailable", "file", path, "error", err)
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{Error: httperr.HttpAssetMissing})
			return
		}
		c.Data(http.StatusOK, contentType, body)
	}
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if s.health != nil {
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Error("[Server] Health check failed: store unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  httperr.HttpUnavailableError,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// Run listens on s.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("[Server] Starting HTTP Server...", "address", ln.Addr().String())

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info("[Server] Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("[Server] HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.Serve(lenientListener{ln}); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped
	return nil
}
