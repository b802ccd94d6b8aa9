package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/config"
	"github.com/oksasatya/go-portfolio-api/internal/container"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
)

// NewEngine builds the HTTP engine: global middleware, static uploads and
// every API module.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	errs := middleware.NewErrorResponder(cfg.Env, c.Logger)

	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.Use(errs.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP(cfg.TrustProxy))
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	r.Use(cors.New(corsConfig(cfg)))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}
	r.NoRoute(errs.NotFound())
	if cfg.StorageDriver != "gcs" {
		r.Static(container.StoragePrefix, cfg.StorageDir+"/projects")
	}

	reg := NewRegistry(r)
	InitModules(reg, c, errs)
	reg.RegisterAll()
	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader, "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		cc.AllowOrigins = origins
	} else {
		cc.AllowAllOrigins = true
	}
	return cc
}
