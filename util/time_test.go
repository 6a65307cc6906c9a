package util

import (
	"testing"
	"time"
)

func TestParseRemoteTimestamp(t *testing.T) {
	good := []string{
		"2024-03-19T21:54:14.165Z",
		"2024-03-19T21:54:14Z",
		"2024-03-19 21:52:02",
		"2024-03-19T21:52:02+09:00",
		"2024-03-19T21:52:02.123456+00:00",
	}

	for _, g := range good {
		ts, err := ParseRemoteTimestamp(g)
		if err != nil {
			t.Fatal(err)
		}
		if ts.Location() != time.UTC {
			t.Fatalf("expected UTC, got %s", ts.Location())
		}
	}

	bad := []string{"", "not a time", "yesterday-ish"}
	for _, b := range bad {
		if _, err := ParseRemoteTimestamp(b); err == nil {
			t.Fatalf("expected error for %q", b)
		}
	}
}

func TestParseUnixSeconds(t *testing.T) {
	ts, err := ParseUnixSeconds("1700000000")
	if err != nil {
		t.Fatal(err)
	}
	if ts.Year() != 2023 {
		t.Fatalf("unexpected year %d", ts.Year())
	}

	if _, err := ParseUnixSeconds("soon"); err == nil {
		t.Fatal("expected error")
	}
}
