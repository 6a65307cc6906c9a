package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemCountStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cs := NewMemCountStore()
	at := time.Date(2024, 3, 19, 15, 30, 0, 0, time.UTC)

	c, err := cs.GetCount(ctx, "posts", PeriodTotal, at)
	assert.NoError(err)
	assert.Equal(0, c)

	assert.NoError(cs.Increment(ctx, "posts", at))
	assert.NoError(cs.Increment(ctx, "posts", at))

	for _, period := range []string{PeriodTotal, PeriodDay, PeriodHour} {
		c, err = cs.GetCount(ctx, "posts", period, at)
		assert.NoError(err)
		assert.Equal(2, c)
	}

	// a different day bucket is untouched; the total carries over
	nextDay := at.Add(24 * time.Hour)
	c, err = cs.GetCount(ctx, "posts", PeriodDay, nextDay)
	assert.NoError(err)
	assert.Equal(0, c)
	c, err = cs.GetCount(ctx, "posts", PeriodTotal, nextDay)
	assert.NoError(err)
	assert.Equal(2, c)

	// an hour later within the same day
	nextHour := at.Add(time.Hour)
	c, err = cs.GetCount(ctx, "posts", PeriodHour, nextHour)
	assert.NoError(err)
	assert.Equal(0, c)
	c, err = cs.GetCount(ctx, "posts", PeriodDay, nextHour)
	assert.NoError(err)
	assert.Equal(2, c)
}

func TestMemCountStoreConcurrent(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cs := NewMemCountStore()
	at := time.Date(2024, 3, 19, 15, 30, 0, 0, time.UTC)

	// Increment two counters from four goroutines while two more read.
	// Run with `-race`; the sleeps interleave reads with writes.
	var wg sync.WaitGroup
	fnInc := func(name string, times int) {
		for i := 0; i < times; i++ {
			assert.NoError(cs.Increment(ctx, name, at))
			time.Sleep(time.Nanosecond)
		}
		wg.Done()
	}
	fnRead := func(name string, times int) {
		for i := 0; i < times; i++ {
			_, err := cs.GetCount(ctx, name, PeriodTotal, at)
			assert.NoError(err)
			time.Sleep(time.Nanosecond)
		}
	}
	wg.Add(4)
	go fnInc("posts", 10)
	go fnInc("posts", 10)
	go fnRead("posts", 10)
	go fnInc("replies", 6)
	go fnInc("replies", 6)
	go fnRead("replies", 6)
	wg.Wait()

	c, err := cs.GetCount(ctx, "posts", PeriodTotal, at)
	assert.NoError(err)
	assert.Equal(20, c)
	c, err = cs.GetCount(ctx, "replies", PeriodDay, at)
	assert.NoError(err)
	assert.Equal(12, c)
}
