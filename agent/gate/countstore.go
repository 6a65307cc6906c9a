package gate

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	PeriodTotal = "total"
	PeriodDay   = "day"
	PeriodHour  = "hour"
)

// CountStore tracks named action counters bucketed by time period. The
// caller supplies the reference time so day boundaries are testable; all
// bucketing is done in UTC.
type CountStore interface {
	GetCount(ctx context.Context, name, period string, at time.Time) (int, error)
	Increment(ctx context.Context, name string, at time.Time) error
}

func periodBucket(name, period string, at time.Time) string {
	switch period {
	case PeriodTotal:
		return name
	case PeriodDay:
		return fmt.Sprintf("%s/%s", name, at.UTC().Format(time.DateOnly))
	case PeriodHour:
		return fmt.Sprintf("%s/%s", name, at.UTC().Format(time.RFC3339)[0:13])
	default:
		slog.Warn("unhandled counter period", "period", period)
		return name
	}
}
