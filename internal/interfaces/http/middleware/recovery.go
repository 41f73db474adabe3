package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/types/common"
)

// Recovery converts handler panics into a 500 envelope instead of tearing
// down the connection.
func Recovery(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					logging.Any("panic", r),
					logging.String("path", c.Request.URL.Path),
					logging.String("request_id", GetRequestID(c)),
					logging.String("stack", string(debug.Stack())))

				resp := common.NewErrorResponse(
					string(errors.CodeInternal), "internal server error")
				resp.RequestID = GetRequestID(c)
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
