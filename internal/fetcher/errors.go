package fetcher

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fetch failures.
type ErrorKind int

const (
	// KindConnection covers DNS failures, refused connections, and other
	// transport errors.
	KindConnection ErrorKind = iota
	// KindTimeout covers deadline and timeout failures.
	KindTimeout
	// KindHTTPStatus covers non-2xx responses.
	KindHTTPStatus
)

// String returns a short label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	default:
		return "connection"
	}
}

// Error is a typed fetch failure. The orchestrator treats every kind as
// recoverable; no retries happen at this layer.
type Error struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a fetch timeout.
func IsTimeout(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindTimeout
}

// StatusCode returns the HTTP status of a status-kind fetch error, or 0.
func StatusCode(err error) int {
	var fe *Error
	if errors.As(err, &fe) && fe.Kind == KindHTTPStatus {
		return fe.StatusCode
	}
	return 0
}
