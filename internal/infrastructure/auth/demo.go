// Package auth provides the demo session boundary.  The service has no real
// user accounts: any login attempt succeeds and yields the fixed demo
// identity.  Display-only; nothing is authorized against it.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
)

// Identity is the logged-in persona shown in the UI header.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	Identity  Identity  `json:"identity"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticator is the session provider contract.
type Authenticator interface {
	// Login establishes a session for the given credentials.
	Login(ctx context.Context, email, password string) (Session, error)

	// CurrentIdentity returns the identity sessions resolve to.
	CurrentIdentity() Identity
}

// demoIdentity is what every login resolves to.
var demoIdentity = Identity{
	Email:       "demo@example.com",
	DisplayName: "デモユーザー",
}

const sessionLifetime = 24 * time.Hour

// DemoAuthenticator accepts any credentials.
type DemoAuthenticator struct {
	log logging.Logger
	now func() time.Time
}

// NewDemoAuthenticator builds the always-succeeds session provider.
func NewDemoAuthenticator(log logging.Logger) *DemoAuthenticator {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &DemoAuthenticator{log: log, now: time.Now}
}

// Login ignores the credentials and returns a fresh session for the demo
// identity.  The supplied email is logged for the access trail only.
func (a *DemoAuthenticator) Login(ctx context.Context, email, password string) (Session, error) {
	issued := a.now()
	s := Session{
		Token:     uuid.NewString(),
		Identity:  demoIdentity,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(sessionLifetime),
	}
	a.log.Info("demo login", logging.String("requested_email", email))
	return s, nil
}

// CurrentIdentity returns the fixed demo identity.
func (a *DemoAuthenticator) CurrentIdentity() Identity {
	return demoIdentity
}
