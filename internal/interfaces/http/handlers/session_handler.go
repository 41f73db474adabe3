package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/auth"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// Resetter restores the record store to its seed dataset.
type Resetter interface {
	Reset(ctx context.Context)
}

// SessionHandler serves the demo login and the demo-data reset.
type SessionHandler struct {
	auth     auth.Authenticator
	store    Resetter
	matching *matching.Service
}

// NewSessionHandler builds the handler.
func NewSessionHandler(a auth.Authenticator, store Resetter, m *matching.Service) *SessionHandler {
	return &SessionHandler{auth: a, store: store, matching: m}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login issues a demo session for any credentials.
func (h *SessionHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("request body is not a valid login request"))
		return
	}
	sess, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, sess)
}

// Current returns the fixed demo identity.
func (h *SessionHandler) Current(c *gin.Context) {
	respondOK(c, h.auth.CurrentIdentity())
}

// Reset discards every edit and restores the seed dataset.
func (h *SessionHandler) Reset(c *gin.Context) {
	h.store.Reset(c.Request.Context())
	h.matching.InvalidateTally(c.Request.Context())
	respondOK(c, gin.H{"reset": true})
}
