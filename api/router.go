// Package api wires the HTTP surface: routes, middleware, handlers.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gistworks/skim/api/handler"
	"github.com/gistworks/skim/api/middleware"
	"github.com/gistworks/skim/cache"
	"github.com/gistworks/skim/config"
	"github.com/gistworks/skim/scraper"
	"github.com/gistworks/skim/store"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → RequestID
//	API:     Auth (if enabled) → RateLimit
//
// Health is intentionally outside auth so monitoring probes always work.
func NewRouter(sc *scraper.Scraper, cfg *config.Config, cc *cache.Cache, sinks []store.Sink, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/scrape", handler.Scrape(sc, cc, sinks, cfg.Summary.Sentences))

	return r
}
