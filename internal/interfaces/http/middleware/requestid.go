// Package middleware holds the gin middleware chain: request IDs, request
// logging, panic recovery, CORS, and Prometheus instrumentation.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hiroba-develop/GrantsDB-Demo/pkg/types/common"
)

// HeaderRequestID carries the request identifier on both sides.
const HeaderRequestID = "X-Request-ID"

// contextKeyRequestID is the gin context key the ID is stored under.
const contextKeyRequestID = string(common.ContextKeyRequestID)

// RequestID assigns every request an identifier: an incoming X-Request-ID is
// trusted and echoed, otherwise a fresh one is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = common.NewRequestID()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the request's identifier, empty if the middleware did
// not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}
