// Package http wires the handlers and middleware into the route tree and
// hosts the HTTP server.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/prometheus"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/http/handlers"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	CustomerHandler  *handlers.CustomerHandler
	SubsidyHandler   *handlers.SubsidyHandler
	DashboardHandler *handlers.DashboardHandler
	SessionHandler   *handlers.SessionHandler
	HealthHandler    *handlers.HealthHandler

	// Middleware
	CORS    *middleware.CORSConfig
	Logging *middleware.LoggingConfig

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration.  It wires global middleware, public health endpoints, and
// the API v1 resource groups into a single http.Handler suitable for use
// with http.Server.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// ─── Global middleware (applied to every request) ───
	r.Use(middleware.RequestID())

	logCfg := middleware.DefaultLoggingConfig()
	if cfg.Logging != nil {
		logCfg = *cfg.Logging
	}
	r.Use(middleware.RequestLogging(log, logCfg))
	r.Use(middleware.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	if cfg.CORS != nil {
		corsCfg = *cfg.CORS
	}
	r.Use(middleware.CORS(corsCfg))

	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// ─── Public probe endpoints ───
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Healthz)
		r.GET("/readyz", cfg.HealthHandler.Readyz)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	// ─── API v1 ───
	api := r.Group("/api/v1")
	registerCustomerRoutes(api, cfg.CustomerHandler)
	registerSubsidyRoutes(api, cfg.SubsidyHandler)
	registerDashboardRoutes(api, cfg.DashboardHandler)
	registerSessionRoutes(api, cfg.SessionHandler)

	return r
}

// registerCustomerRoutes mounts the customer endpoints under /customers.
func registerCustomerRoutes(r *gin.RouterGroup, h *handlers.CustomerHandler) {
	if h == nil {
		return
	}
	g := r.Group("/customers")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Replace)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/subsidies", h.Subsidies)
}

// registerSubsidyRoutes mounts the subsidy endpoints under /subsidies.
// The static segments come before the :id routes so gin does not treat
// "archive" or "export.csv" as record ids.
func registerSubsidyRoutes(r *gin.RouterGroup, h *handlers.SubsidyHandler) {
	if h == nil {
		return
	}
	g := r.Group("/subsidies")
	g.GET("", h.List)
	g.GET("/archive", h.Archive)
	g.GET("/facets", h.Facets)
	g.GET("/export.csv", h.ExportCSV)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Replace)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/customers", h.Customers)
	g.POST("/:id/proposal", h.Proposal)
}

// registerDashboardRoutes mounts the dashboard endpoints under /dashboard.
func registerDashboardRoutes(r *gin.RouterGroup, h *handlers.DashboardHandler) {
	if h == nil {
		return
	}
	g := r.Group("/dashboard")
	g.GET("/summary", h.Summary)
	g.GET("/categories", h.Categories)
}

// registerSessionRoutes mounts the demo session endpoints under /session.
func registerSessionRoutes(r *gin.RouterGroup, h *handlers.SessionHandler) {
	if h == nil {
		return
	}
	g := r.Group("/session")
	g.POST("", h.Login)
	g.GET("", h.Current)
	g.POST("/reset", h.Reset)
}
