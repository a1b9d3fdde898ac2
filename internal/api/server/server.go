package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "docpod/docs" // generated swagger docs
	"docpod/internal/api/middleware"
	"docpod/internal/api/v1/dto"
	v1routes "docpod/internal/api/v1/routes"
	"docpod/internal/app/worker"
	"docpod/internal/config"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// WorkerStats exposes the worker pool state
type WorkerStats interface {
	Stats() worker.Stats
}

// Options carries the collaborators of the server
type Options struct {
	Services *v1routes.ServiceContainer
	Database Pinger
	Workers  WorkerStats
	Gatherer prometheus.Gatherer
}

// Server represents the API server
type Server struct {
	config     config.ServerConfig
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, environment string, opts Options, logger *zap.Logger) *Server {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	router.GET("/health", healthHandler(opts))

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	v1routes.RegisterRoutes(v1, opts.Services)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":       "docpod API",
			"version":       "1.0",
			"documentation": "/swagger/index.html",
			"endpoints": gin.H{
				"health":   "/health",
				"metrics":  "/metrics",
				"auth":     "/api/v1/auth",
				"podcasts": "/api/v1/podcasts",
			},
		})
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		config:     cfg,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

func healthHandler(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := dto.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().Unix(),
			Checks:    map[string]string{},
		}
		status := http.StatusOK

		if opts.Database != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := opts.Database.Ping(ctx)
			cancel()
			if err != nil {
				resp.Status = "unhealthy"
				resp.Checks["database"] = err.Error()
				status = http.StatusServiceUnavailable
			} else {
				resp.Checks["database"] = "ok"
			}
		}

		if opts.Workers != nil {
			stats := opts.Workers.Stats()
			resp.Workers = &stats
			if stats.Running {
				resp.Checks["workers"] = "ok"
			} else {
				resp.Checks["workers"] = "stopped"
				if resp.Status == "healthy" {
					resp.Status = "degraded"
				}
			}
		}

		c.JSON(status, resp)
	}
}

// Start serves in the background. Listen errors are delivered on the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)

	s.logger.Info("starting API server", zap.String("address", s.httpServer.Addr))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("API server failed", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()

	return errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
