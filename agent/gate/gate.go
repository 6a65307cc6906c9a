// Package gate enforces the daily posting budget. A Gate wraps a CountStore
// with day-bucketed keys, so "reset at midnight UTC" falls out of the key
// schema rather than any stored reset timestamp.
package gate

import (
	"context"
	"sync"
	"time"
)

type Gate struct {
	Store    CountStore
	Name     string
	DailyMax int

	// Now is the clock used for day bucketing. Override in tests to cross
	// day boundaries.
	Now func() time.Time

	mu sync.Mutex
}

func New(store CountStore, name string, dailyMax int) *Gate {
	return &Gate{
		Store:    store,
		Name:     name,
		DailyMax: dailyMax,
		Now:      time.Now,
	}
}

// Allow reports whether one more action fits in today's budget, consuming a
// slot when it does. A false result with nil error is a normal denial, not a
// failure. The read-modify-write runs under a single mutex so concurrent
// callers cannot overshoot the budget.
func (g *Gate) Allow(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.Now()
	c, err := g.Store.GetCount(ctx, g.Name, PeriodDay, now)
	if err != nil {
		return false, err
	}
	if c >= g.DailyMax {
		return false, nil
	}
	if err := g.Store.Increment(ctx, g.Name, now); err != nil {
		return false, err
	}
	return true, nil
}

// Used returns how many slots today's budget has consumed.
func (g *Gate) Used(ctx context.Context) (int, error) {
	return g.Store.GetCount(ctx, g.Name, PeriodDay, g.Now())
}

// Remaining returns how many slots are left today, never negative.
func (g *Gate) Remaining(ctx context.Context) (int, error) {
	used, err := g.Used(ctx)
	if err != nil {
		return 0, err
	}
	if used >= g.DailyMax {
		return 0, nil
	}
	return g.DailyMax - used, nil
}
