package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/cache"
	prom "github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/prometheus"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/types/common"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	cache   cache.Cache
	metrics *prom.AppMetrics
	version string
}

// NewHealthHandler builds the handler.  metrics may be nil.
func NewHealthHandler(c cache.Cache, m *prom.AppMetrics, version string) *HealthHandler {
	return &HealthHandler{cache: c, metrics: m, version: version}
}

// Healthz is the liveness probe: the process is up.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": common.HealthUp, "version": h.version})
}

// Readyz checks every dependency and reports per-component health.  The
// store is in-process memory so only the cache can actually degrade.
func (h *HealthHandler) Readyz(c *gin.Context) {
	components := []common.ComponentHealth{h.checkCache(c)}

	status := common.HealthUp
	httpStatus := http.StatusOK
	for _, comp := range components {
		if comp.Status == common.HealthDown {
			status = common.HealthDegraded
			httpStatus = http.StatusServiceUnavailable
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":     status,
		"version":    h.version,
		"components": components,
	})
}

func (h *HealthHandler) checkCache(c *gin.Context) common.ComponentHealth {
	comp := common.ComponentHealth{Name: "cache", Status: common.HealthUp}

	start := time.Now()
	err := h.cache.Ping(c.Request.Context())
	comp.Latency = time.Since(start)
	if err != nil {
		comp.Status = common.HealthDown
		comp.Message = err.Error()
	}

	if h.metrics != nil {
		v := 1.0
		if comp.Status != common.HealthUp {
			v = 0
		}
		h.metrics.HealthCheckStatus.WithLabelValues(comp.Name).Set(v)
	}
	return comp
}
