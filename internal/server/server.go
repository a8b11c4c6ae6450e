// Package server exposes the conversion pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/roboco-io/jww2dxf/internal/config"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP adapter.
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	log     *zap.Logger
	version string
}

// New creates a server with every route registered. cfg supplies the
// default pipeline options and the upload limit.
func New(cfg *config.Config, log *zap.Logger, version string) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	s := &Server{echo: e, cfg: cfg, log: log, version: version}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         4 << 10,
		DisablePrintStack: true,
	}))
	e.Use(RequestID())
	e.Use(Logger(log))

	e.GET("/health", s.handleHealth)

	api := e.Group("/api", middleware.BodyLimit(strconv.FormatInt(cfg.Server.MaxUploadBytes, 10)))
	api.POST("/convert", s.handleConvert)
	api.POST("/parse", s.handleParse)

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.cfg.Server.Addr))
		errCh <- s.echo.Start(s.cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("server shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
