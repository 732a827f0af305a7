package custody

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError reports a failure signaled by the custody service itself, either
// through a non-2xx HTTP status or an explicit failure flag in the response
// envelope. Raw preserves the decoded response body (or the raw text when the
// body was not JSON) for caller inspection; the client never consults it.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Raw        any
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("custody api error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("custody api error (status %d): %s", e.StatusCode, e.Message)
}

// NetworkError reports that the custody service was not reached or did not
// respond in time. Timeouts carry a message stating the configured timeout;
// there is no separate timeout kind.
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string { return e.Message }

func (e *NetworkError) Unwrap() error { return e.Cause }

// AsAPIError unwraps err as an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsNetworkError unwraps err as a *NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}

// IsAPIError reports whether err is an *APIError.
func IsAPIError(err error) bool {
	_, ok := AsAPIError(err)
	return ok
}

// IsNetworkError reports whether err is a *NetworkError.
func IsNetworkError(err error) bool {
	_, ok := AsNetworkError(err)
	return ok
}

// IsAuthError reports whether err is an APIError with an authentication or
// authorization status.
func IsAuthError(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is an APIError for a missing resource.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}
