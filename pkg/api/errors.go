package api

import (
	"errors"
	"fmt"
)

// ValidationError marks input rejected before any network call. It is never
// retried and never degraded to the fallback store.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s is required", e.Field)
}

// NetworkError wraps a transport-level failure (DNS, connection refused,
// timeout). It is the only error class that triggers fallback degradation.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response whose body carried a server message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// MalformedResponseError is a non-2xx response whose body was not JSON,
// typically an HTML error page from a misrouted request. The raw markup is
// never surfaced.
type MalformedResponseError struct {
	StatusCode int
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("HTTP %d: server returned a non-JSON error page; check backend routing", e.StatusCode)
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsRetryable reports whether err is worth retrying: transport failures and
// 5xx responses. Client errors (4xx) are doomed requests and are not retried.
func IsRetryable(err error) bool {
	if IsNetworkError(err) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return malformed.StatusCode >= 500
	}
	return false
}
