// Package http provides the HTTP server, its middleware and the health endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/cardwatch/internal/auth"
	"github.com/allisson/cardwatch/internal/config"
	customerHTTP "github.com/allisson/cardwatch/internal/customer/http"
	"github.com/allisson/cardwatch/internal/metrics"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new Server. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db: db,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// SetupRouter registers middleware and routes. Probes stay outside authentication and
// rate limiting; everything under /v1 is protected by both when configured.
func (s *Server) SetupRouter(
	cfg *config.Config,
	customerHandler *customerHTTP.CustomerHandler,
	syncHandler *customerHTTP.SyncHandler,
	reportHandler *customerHTTP.ReportHandler,
	tokenVerifier auth.TokenVerifier,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.AllowOrigins(), s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			metricsProvider.MeterProvider(), cfg.MetricsNamespace, "/health", "/ready"))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if tokenVerifier != nil && tokenVerifier.Enabled() {
		v1.Use(AuthenticationMiddleware(tokenVerifier, s.logger))
	} else {
		s.logger.Warn("API_TOKEN_HASH is not set - /v1 routes are not authenticated")
	}
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	customers := v1.Group("/customers")
	{
		customers.GET("", customerHandler.ListHandler)
		customers.GET("/:currency/:id", customerHandler.GetHandler)
	}

	worklist := v1.Group("/worklist")
	{
		worklist.GET("/action-required", customerHandler.ActionRequiredHandler)
		worklist.GET("/client-status", customerHandler.ClientStatusHandler)
	}

	v1.GET("/summary", customerHandler.SummaryHandler)

	sync := v1.Group("/sync")
	{
		sync.POST("", syncHandler.SyncHandler)
		sync.GET("/runs", syncHandler.RunsHandler)
	}

	v1.GET("/reports/expiration.pdf", reportHandler.ExpirationPDFHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it is shut down.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured: call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start http server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports that the process is alive.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
