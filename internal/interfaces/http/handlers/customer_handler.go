package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/customer"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// CustomerHandler serves the customer CRUD surface and the by-customer join.
type CustomerHandler struct {
	customers customer.Repository
	matching  *matching.Service
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(customers customer.Repository, m *matching.Service) *CustomerHandler {
	return &CustomerHandler{customers: customers, matching: m}
}

// List returns every customer.
func (h *CustomerHandler) List(c *gin.Context) {
	respondOK(c, h.customers.List(c.Request.Context()))
}

// Get returns one customer by id.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rec, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, rec)
}

// Replace overwrites the whole customer record.  The path id wins over any
// id in the body.
func (h *CustomerHandler) Replace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var rec customer.Customer
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondError(c, errors.InvalidParam("request body is not a valid customer record"))
		return
	}
	rec.ID = id

	if err := h.customers.Replace(c.Request.Context(), rec); err != nil {
		respondError(c, err)
		return
	}
	h.matching.InvalidateTally(c.Request.Context())
	respondOK(c, rec)
}

// Delete removes the customer; its relations go with it.  Idempotent.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.matching.InvalidateTally(c.Request.Context())
	respondOK(c, gin.H{"deleted": id})
}

// Subsidies returns the subsidies matched to the customer.
func (h *CustomerHandler) Subsidies(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	matches, err := h.matching.SubsidiesForCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, matches)
}
