// Package server exposes the ingredient tracker over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/logger"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/monitoring"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/report"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/session"
)

// Server holds the router and the collaborators the handlers need.
type Server struct {
	Router     *gin.Engine
	store      session.Store
	metrics    *monitoring.Collector
	log        *logger.Logger
	thresholds report.Thresholds
	ttl        time.Duration
}

// New creates a server with all routes registered. A zero ttl falls back to
// the session store default.
func New(store session.Store, metrics *monitoring.Collector, log *logger.Logger, thresholds report.Thresholds, ttl time.Duration) *Server {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		Router:     router,
		store:      store,
		metrics:    metrics,
		log:        log,
		thresholds: thresholds.Normalize(),
		ttl:        ttl,
	}

	router.Use(s.requestLog())
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints.
func (s *Server) setupRoutes() {
	s.Router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.Router.Group("/api")
	{
		api.POST("/reports", s.CreateReport)
		api.GET("/reports/:id", s.GetReport)
		api.GET("/reports/:id/export/:format", s.ExportReport)
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
