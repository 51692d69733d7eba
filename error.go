package referent

import (
	"errors"
	"fmt"
	"net/http"
)

// Application error codes.
const (
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EUNAUTHORIZED = "unauthorized"
	EFORBIDDEN    = "forbidden"
	ERATELIMIT    = "rate_limited"
	EUNAVAILABLE  = "unavailable"
	EMALFORMED    = "malformed_response"
	ENETWORK      = "network"
	ETIMEOUT      = "timeout"
	EUPSTREAM     = "upstream"
)

// Error represents an application-specific error.
//
// Status holds the HTTP status returned by an upstream service, if any.
// Details holds the raw upstream error payload for diagnostics.
type Error struct {
	Code    string
	Message string
	Status  int
	Details string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("referent error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// UpstreamErrorf returns an Error describing a failed call to an external
// service. The code is derived from the upstream HTTP status.
func UpstreamErrorf(status int, details string, format string, args ...any) *Error {
	return &Error{
		Code:    CodeForStatus(status),
		Message: fmt.Sprintf(format, args...),
		Status:  status,
		Details: details,
	}
}

// CodeForStatus maps an upstream HTTP status to an error code.
func CodeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return EUNAUTHORIZED
	case status == http.StatusForbidden:
		return EFORBIDDEN
	case status == http.StatusNotFound:
		return ENOTFOUND
	case status == http.StatusTooManyRequests:
		return ERATELIMIT
	case status == http.StatusGone:
		return EUNAVAILABLE
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ETIMEOUT
	case status >= 500:
		return EUNAVAILABLE
	case status >= 400:
		return EUPSTREAM
	default:
		return EINTERNAL
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorStatus returns the upstream HTTP status carried by err, or 0.
func ErrorStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// ErrorDetails returns the raw upstream payload carried by err, or "".
func ErrorDetails(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return ""
}

// UserMessage returns a human-readable description of err suitable for
// display in an error panel. Validation errors keep their own message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch ErrorCode(err) {
	case EINVALID, ENOTFOUND:
		return ErrorMessage(err)
	case EUNAUTHORIZED:
		return "API authentication failed. Check the API key configuration."
	case EFORBIDDEN:
		return "Access denied. Check the permissions of the API key."
	case ERATELIMIT:
		return "API rate limit exceeded. Please wait a little and try again."
	case EUNAVAILABLE:
		return "The service is temporarily unavailable. Please try again later."
	case EMALFORMED:
		return "Received an invalid response from the API."
	case ETIMEOUT:
		return "The request timed out. Please try again."
	case ENETWORK:
		return "Network error. Check the URL and your connection."
	case EUPSTREAM:
		return fmt.Sprintf("API error: %s", ErrorMessage(err))
	default:
		return ErrorMessage(err)
	}
}
