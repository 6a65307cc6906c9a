// Package cursor persists named last-seen positions, so a restarted agent
// picks up mention and DM polling where it left off instead of replaying
// old items.
package cursor

import "context"

// Store is a tiny named key-value surface. Monotonicity is the caller's
// concern; stores just remember the last value written.
type Store interface {
	// Get returns the stored value for name, or "" when none is set.
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
}
