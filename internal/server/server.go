// Package server wraps gin with the middleware stack, health endpoints and
// lifecycle handling used by the admin API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

const (
	drainTimeout = 30 * time.Second
	corsMaxAge   = 12 * time.Hour
)

// defaultListener fills what config.ServerConfig leaves unset.
var defaultListener = config.ServerConfig{
	ReadTimeout:  30 * time.Second,
	WriteTimeout: 60 * time.Second,
	IdleTimeout:  120 * time.Second,
	CORSOrigins:  []string{"http://localhost:3000"},
}

// identity names the running API in health responses and logs.
type identity struct {
	name    string
	version string
	debug   bool
}

// Server is the admin API listener.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    logger.Logger
	id     identity
}

func newServer(id identity, listen config.ServerConfig, log logger.Logger, mount func(*gin.Engine)) *Server {
	mode := gin.ReleaseMode
	if id.debug {
		mode = gin.DebugMode
	}
	gin.SetMode(mode)

	engine := gin.New()
	engine.Use(
		RecoveryMiddleware(log),
		RequestIDLoggerMiddleware(log),
		LoggerMiddleware(log),
		CORSMiddleware(listen.CORSOrigins),
	)
	mount(engine)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:         net.JoinHostPort(listen.Host, strconv.Itoa(listen.Port)),
			Handler:      engine,
			ReadTimeout:  listen.ReadTimeout,
			WriteTimeout: listen.WriteTimeout,
			IdleTimeout:  listen.IdleTimeout,
		},
		log: log,
		id:  id,
	}
}

// Router exposes the engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start blocks until the listener closes.
func (s *Server) Start() error {
	s.log.Info("Admin API listening",
		logger.String("address", s.http.Addr),
		logger.String("service", s.id.name),
		logger.String("version", s.id.version),
	)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}
	return nil
}

// Shutdown stops accepting requests and waits up to 30s for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("drain admin api: %w", err)
	}
	s.log.Info("Admin API stopped")
	return nil
}

// RunWithGracefulShutdown serves until SIGINT, SIGTERM or ctx is done.
func (s *Server) RunWithGracefulShutdown(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		s.log.Info("Stopping admin API", logger.Error(context.Cause(ctx)))
	}

	//nolint:contextcheck // ctx is already done here
	return s.Shutdown(context.Background())
}
