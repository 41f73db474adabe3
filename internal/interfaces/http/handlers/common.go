// Package handlers implements the HTTP endpoints.  Every JSON response uses
// the common.APIResponse envelope; binary endpoints (CSV, PDF) stream raw
// bytes with a Content-Disposition header.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/http/middleware"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/types/common"
)

// respondOK writes a 200 envelope.
func respondOK(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, data)
}

func respond(c *gin.Context, status int, data interface{}) {
	resp := common.NewSuccessResponse(data)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(status, resp)
}

// respondError maps the error's code to an HTTP status and writes the error
// envelope.  Raw internal errors are masked.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = errors.DefaultMessageForCode(errors.CodeInternal)
		code = errors.CodeInternal
	}

	resp := common.NewErrorResponse(string(code), message)
	resp.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(status, resp)
}

// pathID parses the numeric :id segment.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondError(c, errors.InvalidParam("path parameter "+name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}
