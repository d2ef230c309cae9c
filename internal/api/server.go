// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/platform-engineering-labs/tickd/internal/api/model"
	"github.com/platform-engineering-labs/tickd/internal/clock"
	"github.com/platform-engineering-labs/tickd/internal/config"
	"github.com/platform-engineering-labs/tickd/internal/health"
	"github.com/platform-engineering-labs/tickd/internal/logging"
	"github.com/platform-engineering-labs/tickd/internal/quality"
	"github.com/platform-engineering-labs/tickd/internal/tz"
)

const (
	RootRoute    = "/"
	TimesRoute   = "/times"
	HealthRoute  = "/health"
	ReadyRoute   = "/ready"
	MetricsRoute = "/metrics"

	// Requests carry at most a query string; anything bigger is noise.
	requestBodyLimit = "10K"
	requestTimeout   = 5 * time.Second
)

type Server struct {
	echo           *echo.Echo
	ctx            context.Context
	clock          clock.Clock
	tracker        quality.Source
	serverConfig   *config.ServerConfig
	metricsHandler http.Handler
}

func NewServer(ctx context.Context, clk clock.Clock, tracker quality.Source, serverConfig *config.ServerConfig, metricsHandler http.Handler) *Server {
	server := &Server{
		ctx:            ctx,
		clock:          clk,
		tracker:        tracker,
		serverConfig:   serverConfig,
		metricsHandler: metricsHandler,
	}

	server.echo = server.configureEcho()

	return server
}

// Start launches the server in a separate goroutine and blocks until the
// server context is canceled.
func (s *Server) Start() {
	go func() {
		listen := fmt.Sprintf("%s:%d", s.serverConfig.Host, s.serverConfig.Port)

		if s.serverConfig.TLSCert != "" && s.serverConfig.TLSKey != "" {
			if err := s.echo.StartTLS(listen, s.serverConfig.TLSCert, s.serverConfig.TLSKey); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.echo.Logger.Error(err)
			}
		} else {
			if err := s.echo.Start(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.echo.Logger.Error(err)
			}
		}
	}()
	<-s.ctx.Done()
	s.Stop(false)
}

// Stop gracefully shuts down the server, waiting for ongoing requests to complete
func (s *Server) Stop(_ bool) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	slog.Info("API server received shutdown")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		slog.Info("API server error when shutting down", "error", err)
	}
	slog.Info("API server successfully shutdown")
}

func (s *Server) configureEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Logger = logging.NewEchoLogger()
	e.StdLogger = log.Default()
	e.JSONSerializer = jsonSerializer{}

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'; style-src 'unsafe-inline'",
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	e.Use(middleware.BodyLimit(requestBodyLimit))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: requestTimeout,
	}))
	e.Use(requestMetrics())

	// API docs landing page
	e.GET(RootRoute, s.Root)

	// Time query endpoint
	e.GET(TimesRoute, s.Times)

	// Health endpoints
	e.GET(HealthRoute, s.Health)
	e.GET(ReadyRoute, s.Ready)

	// Prometheus metrics endpoint (if enabled)
	if s.metricsHandler != nil {
		e.GET(MetricsRoute, echo.WrapHandler(s.metricsHandler))
	}

	return e
}

// Times answers GET /times: the current unix timestamp plus, for every
// requested IANA zone identifier, the local wall-clock time and UTC offset.
// All zones in one response are derived from a single captured instant.
func (s *Server) Times(c echo.Context) error {
	names := tz.ParseZoneList(c.QueryParams()["tz"])
	includeQuality := getOptionalBool(c, "include_quality", false)

	// One snapshot per request, truncated to the second the unix field reports.
	now := time.Unix(s.clock.Now().Unix(), 0).UTC()

	zones, err := tz.Convert(now, names)
	if err != nil {
		return mapError(c, err)
	}

	var timeQuality *quality.TimeQuality
	if includeQuality {
		timeQuality = s.tracker.Quality()
	}

	return c.JSON(http.StatusOK, model.TimesResponse{
		Unix:        now.Unix(),
		Zones:       zones,
		TimeQuality: timeQuality,
	})
}

// Health answers GET /health with the full health report, 503 when unhealthy.
func (s *Server) Health(c echo.Context) error {
	report := health.Evaluate(s.clock, s.tracker)

	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, report)
}

// Ready answers GET /ready: if we can respond at all, we are ready.
func (s *Server) Ready(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// getOptionalBool retrieves a boolean query value, returning a default if not present or invalid
func getOptionalBool(c echo.Context, key string, defaultValue bool) bool {
	valStr := c.QueryParam(key)

	if valStr == "" {
		return defaultValue
	}

	parsedVal, err := strconv.ParseBool(valStr)
	if err != nil {
		c.Logger().Warnf("Query param '%s' found with invalid boolean value '%s'. Defaulting to %t. Error: %v", key, valStr, defaultValue, err)
		return defaultValue
	}

	return parsedVal
}

// mapError maps conversion errors to client-facing responses
func mapError(c echo.Context, err error) error {
	var unrecognized tz.UnrecognizedZoneError
	if errors.As(err, &unrecognized) {
		return apiError(c, http.StatusBadRequest, unrecognized.Error())
	}

	var tooMany tz.TooManyZonesError
	if errors.As(err, &tooMany) {
		return apiError(c, http.StatusBadRequest, tooMany.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// apiError writes the detail-style error body every error response shares
func apiError(c echo.Context, status int, detail string) error {
	return c.JSON(status, model.ErrorResponse{Detail: detail})
}
