package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/analytics"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/forecast"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// requestIDHeader carries the per-request id in both directions.
const requestIDHeader = "X-Request-ID"

// Options configures a Server.
type Options struct {
	Port     int
	DevMode  bool
	Analysis analytics.Options
}

// Server exposes the forecasting engine over HTTP. The historical dataset is
// loaded once and never modified; every request is handled independently.
type Server struct {
	history    []ward.Record
	forecaster *forecast.Forecaster
	opts       Options
	logger     *zap.Logger
	router     *gin.Engine
}

// New creates a server over the given historical records.
func New(history []ward.Record, f *forecast.Forecaster, opts Options, logger *zap.Logger) *Server {
	if !opts.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if f == nil {
		f = forecast.New(nil)
	}

	s := &Server{
		history:    history,
		forecaster: f,
		opts:       opts,
		logger:     logger,
		router:     gin.New(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), s.requestID(), s.accessLog(), cors())

	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)
	s.router.POST("/predict", s.handlePredict)

	api := s.router.Group("/api")
	{
		api.GET("/wards", s.handleWards)
		api.GET("/dataset", s.handleDataset)
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/forecast/batch", s.handleBatch)
		api.POST("/evaluate", s.handleEvaluate)
		api.POST("/outliers", s.handleOutliers)
		api.POST("/optimize", s.handleOptimize)
		api.POST("/ingest", s.handleIngest)
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("wardcast server starting",
		zap.String("addr", fmt.Sprintf("http://localhost%s", srv.Addr)),
		zap.Int("records", len(s.history)),
		zap.Int("wards", len(ward.Wards(s.history))))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("wardcast server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")))
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
