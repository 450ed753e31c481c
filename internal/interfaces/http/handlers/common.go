// Common helpers shared by the HTTP handlers.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError maps an application error onto its HTTP status and writes the
// structured body.  Server-side failures are masked; the original message is
// only exposed for client errors.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	resp := ErrorResponse{Code: string(code)}
	if errors.IsServerError(code) {
		resp.Message = errors.DefaultMessageForCode(code)
		if resp.Message == "" {
			resp.Message = http.StatusText(status)
		}
	} else {
		resp.Message = err.Error()
		if appErr, ok := err.(*errors.AppError); ok {
			resp.Message = appErr.Message
			resp.Detail = appErr.Detail
		}
	}
	c.AbortWithStatusJSON(status, resp)
}
