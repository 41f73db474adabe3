package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/export"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/proposal"
	subsidyapp "github.com/hiroba-develop/GrantsDB-Demo/internal/application/subsidy"
	domain "github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// SubsidyHandler serves the subsidy search, archive, CRUD, export, and
// proposal endpoints.
type SubsidyHandler struct {
	search    *subsidyapp.Service
	subsidies domain.Repository
	matching  *matching.Service
	proposals *proposal.Service
	exports   *export.Service
}

// NewSubsidyHandler builds the handler.
func NewSubsidyHandler(
	search *subsidyapp.Service,
	subsidies domain.Repository,
	m *matching.Service,
	p *proposal.Service,
	e *export.Service,
) *SubsidyHandler {
	return &SubsidyHandler{
		search:    search,
		subsidies: subsidies,
		matching:  m,
		proposals: p,
		exports:   e,
	}
}

// List returns subsidies filtered by the query parameters, active entries
// first.
func (h *SubsidyHandler) List(c *gin.Context) {
	f := subsidyapp.Filter{
		Term:       c.Query("q"),
		Prefecture: c.Query("prefecture"),
		Industry:   c.Query("industry"),
		Purpose:    c.Query("purpose"),
	}
	items, err := h.search.Search(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, items)
}

// Archive returns all subsidies newest deadline first, closed entries
// included.
func (h *SubsidyHandler) Archive(c *gin.Context) {
	respondOK(c, h.search.SearchArchive(c.Request.Context(), c.Query("q")))
}

// Facets returns the filter vocabularies derived from the current dataset.
func (h *SubsidyHandler) Facets(c *gin.Context) {
	respondOK(c, h.search.Facets(c.Request.Context()))
}

// Get returns one subsidy with its schedule classification.
func (h *SubsidyHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.search.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, item)
}

// Replace overwrites the whole subsidy record.  The path id wins over any
// id in the body.
func (h *SubsidyHandler) Replace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var rec domain.Subsidy
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondError(c, errors.InvalidParam("request body is not a valid subsidy record"))
		return
	}
	rec.ID = id

	if err := h.subsidies.Replace(c.Request.Context(), rec); err != nil {
		respondError(c, err)
		return
	}
	h.matching.InvalidateTally(c.Request.Context())
	respondOK(c, rec)
}

// Delete removes the subsidy; its relations go with it.  Idempotent.
func (h *SubsidyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.subsidies.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.matching.InvalidateTally(c.Request.Context())
	respondOK(c, gin.H{"deleted": id})
}

// Customers returns the customers matched to the subsidy.
func (h *SubsidyHandler) Customers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	matches, err := h.matching.CustomersForSubsidy(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, matches)
}

// ExportCSV streams the full subsidy table as a UTF-8 CSV download.
func (h *SubsidyHandler) ExportCSV(c *gin.Context) {
	data, err := h.exports.SubsidiesCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="subsidies.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

type proposalRequest struct {
	CustomerID int `json:"customer_id"`
}

// Proposal renders the customer-specific proposal PDF for the subsidy.
func (h *SubsidyHandler) Proposal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CustomerID <= 0 {
		respondError(c, errors.InvalidParam("customer_id must be a positive integer"))
		return
	}

	pdf, err := h.proposals.Generate(c.Request.Context(), req.CustomerID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="proposal_%d_%d.pdf"`, req.CustomerID, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
