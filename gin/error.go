package gin

import (
	"net/http"

	"github.com/fwojciec/referent"
	"github.com/gin-gonic/gin"
)

// codes maps error codes to HTTP status codes when no upstream status is
// carried by the error.
var codes = map[string]int{
	referent.EINVALID:      http.StatusBadRequest,
	referent.ENOTFOUND:     http.StatusNotFound,
	referent.EUNAUTHORIZED: http.StatusUnauthorized,
	referent.EFORBIDDEN:    http.StatusForbidden,
	referent.ERATELIMIT:    http.StatusTooManyRequests,
	referent.EUNAVAILABLE:  http.StatusServiceUnavailable,
	referent.ETIMEOUT:      http.StatusGatewayTimeout,
	referent.ENETWORK:      http.StatusBadGateway,
	referent.EMALFORMED:    http.StatusBadGateway,
	referent.EUPSTREAM:     http.StatusBadGateway,
	referent.EINTERNAL:     http.StatusInternalServerError,
}

// StatusCode returns the HTTP status for err. An upstream status carried
// by the error is forwarded as is.
func StatusCode(err error) int {
	if status := referent.ErrorStatus(err); status >= 400 && status <= 599 {
		return status
	}
	if status, ok := codes[referent.ErrorCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// writeError renders err and records it for the request log.
func (s *Server) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	resp := ErrorResponse{
		Error: referent.UserMessage(err),
		Code:  referent.ErrorCode(err),
	}
	if s.Dev {
		resp.Details = referent.ErrorDetails(err)
		if resp.Details == "" {
			resp.Details = err.Error()
		}
	}
	c.AbortWithStatusJSON(StatusCode(err), resp)
}
