// Package http assembles the HTTP interface: routing, middleware and the
// server lifecycle.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/prometheus"
	"github.com/agrabowski5/TaxonomyViewing/internal/interfaces/http/handlers"
	"github.com/agrabowski5/TaxonomyViewing/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and infrastructure dependencies the
// route tree needs.
type RouterConfig struct {
	TaxonomyHandler *handlers.TaxonomyHandler
	MappingHandler  *handlers.MappingHandler
	EnvironHandler  *handlers.EnvironHandler
	BuilderHandler  *handlers.BuilderHandler
	HealthHandler   *handlers.HealthHandler

	Logger      logging.Logger
	Metrics     *prometheus.Metrics
	MetricsPath string
	Mode        string
}

// NewRouter builds the complete route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogger(cfg.Logger))
	}
	r.Use(middleware.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Healthz)
		r.GET("/readyz", cfg.HealthHandler.Readyz)
	}
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.Metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		if cfg.TaxonomyHandler != nil {
			v1.GET("/taxonomies", cfg.TaxonomyHandler.List)
			v1.GET("/taxonomies/:taxonomy/tree", cfg.TaxonomyHandler.Tree)
			v1.GET("/taxonomies/:taxonomy/nodes/:nodeId/ancestors", cfg.TaxonomyHandler.Ancestors)
		}
		if cfg.MappingHandler != nil {
			v1.GET("/taxonomies/:taxonomy/codes/:code/mappings", cfg.MappingHandler.Resolve)
			v1.GET("/taxonomies/:taxonomy/codes/:code/concordance", cfg.MappingHandler.Concordance)
		}
		if cfg.EnvironHandler != nil {
			v1.GET("/taxonomies/:taxonomy/codes/:code/factors", cfg.EnvironHandler.Factors)
		}
		if cfg.BuilderHandler != nil {
			v1.GET("/taxonomies/:taxonomy/codes/:code/trees", cfg.BuilderHandler.Referencing)
			trees := v1.Group("/builder/trees")
			trees.POST("", cfg.BuilderHandler.Create)
			trees.GET("", cfg.BuilderHandler.List)
			trees.GET("/:treeId", cfg.BuilderHandler.Get)
			trees.PUT("/:treeId", cfg.BuilderHandler.Update)
			trees.DELETE("/:treeId", cfg.BuilderHandler.Delete)
			trees.GET("/:treeId/nodes/:nodeId/mappings", cfg.BuilderHandler.ResolveNode)
		}
	}

	return r
}
