// SPDX-License-Identifier: MIT

// Package server exposes accessibility scoring over HTTP.
//
// Routes:
//
//	POST /v1/accessibility   score an OD table sent as JSON
//	GET  /healthz            liveness
//	GET  /metrics            prometheus metrics
//
// Every response carries an X-Request-ID header. /v1 routes share one
// token-bucket rate limiter; identical request bodies are answered from a
// TTL cache.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/spatialacc/internal/config"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP surface. Create it with New.
type Server struct {
	cfg     config.Config
	logger  logr.Logger
	engine  *gin.Engine
	metrics *Metrics
	cache   *Cache
	limiter *rate.Limiter // nil when rate limiting is disabled
}

// New builds a Server from a validated configuration. Metrics are
// registered on reg; a nil reg uses a fresh registry.
func New(cfg *config.Config, logger logr.Logger, reg *prometheus.Registry) *Server {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		cfg:     *cfg,
		logger:  logger.WithName("server"),
		metrics: NewMetrics(reg),
		cache:   NewCache(cfg.Server.CacheTTL),
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.Burst)
	}

	e := gin.New()
	e.Use(gin.Recovery(), requestID(), accessLog(s.logger))
	e.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := e.Group("/v1", s.rateLimit())
	v1.POST("/accessibility", s.handleCompute)

	s.engine = e

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Cache exposes the response cache.
func (s *Server) Cache() *Cache { return s.cache }

// Run serves on cfg.Server.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", srv.Addr)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
