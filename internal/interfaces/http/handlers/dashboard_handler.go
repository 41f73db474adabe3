package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
)

// DashboardHandler serves the aggregated dashboard views.
type DashboardHandler struct {
	matching *matching.Service
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(m *matching.Service) *DashboardHandler {
	return &DashboardHandler{matching: m}
}

// Summary returns the newest subsidies, the expiring-soon list, and the top
// matched categories in one payload.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.matching.DashboardSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, summary)
}

// Categories returns the full matched-category tally.
func (h *DashboardHandler) Categories(c *gin.Context) {
	tally, err := h.matching.CategoryTally(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, tally)
}
