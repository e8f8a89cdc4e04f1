package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"
)

// HealthServer is the liveness probe for external uptime monitors. It
// answers on "/" and "/health" with a fixed body and also exposes the
// relay counters on "/metrics".
type HealthServer struct {
	echo   *echo.Echo
	addr   string
	logger *slog.Logger
}

// NewHealthServer creates a new health server.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(slogecho.New(logger.With("system", "health")))
	e.Use(middleware.Recover())

	e.GET("/", handleHealthCheck)
	e.GET("/health", handleHealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &HealthServer{
		echo:   e,
		addr:   addr,
		logger: logger.With("system", "health"),
	}
}

// Start serves until Shutdown. It blocks.
func (s *HealthServer) Start() error {
	s.logger.Info("health server listening", "addr", s.addr)
	err := s.echo.Start(s.addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *HealthServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func handleHealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
