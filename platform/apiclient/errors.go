package apiclient

import (
	"fmt"
	"time"
)

// TimeoutError reports a call cancelled because its time budget ran out.
type TimeoutError struct {
	Method  string
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s %s: request timed out after %s", e.Method, e.URL, e.Timeout)
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: upstream status %d", e.Method, e.URL, e.StatusCode)
}

// RequestError reports a call that failed before a response arrived.
type RequestError struct {
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
