package twitter

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// APIError is the platform's structured error body (RFC 7807 style on the
// v2 endpoints).
type APIError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (ae *APIError) Error() string {
	if ae.Detail != "" {
		return fmt.Sprintf("%s: %s", ae.Title, ae.Detail)
	}
	if len(ae.Errors) > 0 {
		msgs := make([]string, 0, len(ae.Errors))
		for _, e := range ae.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Sprintf("%s: %s", ae.Title, strings.Join(msgs, "; "))
	}
	return ae.Title
}

// Error wraps any non-2xx response, carrying the status code and whatever
// rate-limit headers came back with it.
type Error struct {
	StatusCode int
	Wrapped    error
	Ratelimit  *RatelimitInfo
}

func (e *Error) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("API ERROR %d", e.StatusCode)
	}
	if e.StatusCode == http.StatusTooManyRequests && e.Ratelimit != nil {
		return fmt.Sprintf("API ERROR %d: %s (throttled until %s)", e.StatusCode, e.Wrapped, e.Ratelimit.Reset.UTC().Format(time.RFC3339))
	}
	return fmt.Sprintf("API ERROR %d: %s", e.StatusCode, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

func (e *Error) IsThrottled() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// RatelimitInfo mirrors the x-rate-limit-* response headers; Reset is the
// moment the window reopens.
type RatelimitInfo struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

func errorFromHTTPResponse(resp *http.Response, err error) error {
	r := &Error{
		StatusCode: resp.StatusCode,
		Wrapped:    err,
	}
	if resp.Header.Get("x-rate-limit-limit") != "" {
		r.Ratelimit = &RatelimitInfo{}
		if n, err := strconv.ParseInt(resp.Header.Get("x-rate-limit-limit"), 10, 64); err == nil {
			r.Ratelimit.Limit = int(n)
		}
		if n, err := strconv.ParseInt(resp.Header.Get("x-rate-limit-remaining"), 10, 64); err == nil {
			r.Ratelimit.Remaining = int(n)
		}
		if n, err := strconv.ParseInt(resp.Header.Get("x-rate-limit-reset"), 10, 64); err == nil {
			r.Ratelimit.Reset = time.Unix(n, 0)
		}
	}
	return r
}
