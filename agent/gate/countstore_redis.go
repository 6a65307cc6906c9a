package gate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisCountPrefix = "magpie/count/"

// RedisCountStore keeps counters in redis so a restarted process does not
// forget how much of the daily budget is already spent. Period buckets carry
// a TTL comfortably past their window; the total counter never expires.
type RedisCountStore struct {
	Client *redis.Client
}

func NewRedisCountStore(redisURL string) (*RedisCountStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.TODO()).Result(); err != nil {
		return nil, err
	}
	return &RedisCountStore{Client: rdb}, nil
}

func (s *RedisCountStore) GetCount(ctx context.Context, name, period string, at time.Time) (int, error) {
	key := redisCountPrefix + periodBucket(name, period, at)
	c, err := s.Client.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return c, nil
}

func (s *RedisCountStore) Increment(ctx context.Context, name string, at time.Time) error {
	// increment all periods in a single round-trip
	multi := s.Client.Pipeline()

	key := redisCountPrefix + periodBucket(name, PeriodHour, at)
	multi.Incr(ctx, key)
	multi.Expire(ctx, key, 2*time.Hour)

	key = redisCountPrefix + periodBucket(name, PeriodDay, at)
	multi.Incr(ctx, key)
	multi.Expire(ctx, key, 48*time.Hour)

	key = redisCountPrefix + periodBucket(name, PeriodTotal, at)
	multi.Incr(ctx, key)

	_, err := multi.Exec(ctx)
	return err
}
