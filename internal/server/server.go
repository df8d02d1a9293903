package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	healthPingTimeout = 2 * time.Second
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// HealthChecker reports whether the event store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server owns the gin engine shared by every route group of hybridd.
type Server struct {
	Engine *gin.Engine
	Addr   string
	store  HealthChecker
}

type healthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// New builds the engine and registers /health. A nil store always reports ok.
func New(addr string, store HealthChecker, mode string) *Server {
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Engine: gin.Default(),
		Addr:   addr,
		store:  store,
	}
	s.Engine.GET("/health", s.healthHandler)
	return s
}

func (s *Server) healthHandler(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, healthResponse{OK: true})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		slog.Error("[Server] Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, healthResponse{Error: "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, healthResponse{OK: true})
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		slog.Info("[Server] Shutting down", "address", s.Addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("[Server] Forced shutdown", "error", err)
		}
	}()

	slog.Info("[Server] Listening", "address", s.Addr)
	err := httpSrv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped
	return nil
}
