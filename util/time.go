package util

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// ParseRemoteTimestamp parses a timestamp string from a remote API without
// assuming a single layout. Platform endpoints return RFC 3339, but billing
// and marketplace responses have been observed with space-separated and
// fractional variants, so parsing is lenient. The result is normalized to
// UTC.
func ParseRemoteTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %q as timestamp: %w", s, err)
	}
	return t.UTC(), nil
}

// ParseUnixSeconds parses an epoch-seconds string, as found in rate-limit
// reset headers.
func ParseUnixSeconds(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %q as epoch seconds: %w", s, err)
	}
	return time.Unix(sec, 0).UTC(), nil
}
