package cursor

import (
	"context"

	"github.com/redis/go-redis/v9"
)

var redisCursorPrefix = "magpie/cursor/"

// RedisStore shares cursors through redis, surviving restarts and host
// moves.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.TODO()).Result(); err != nil {
		return nil, err
	}
	return &RedisStore{Client: rdb}, nil
}

func (s *RedisStore) Get(ctx context.Context, name string) (string, error) {
	v, err := s.Client.Get(ctx, redisCursorPrefix+name).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, name, value string) error {
	return s.Client.Set(ctx, redisCursorPrefix+name, value, 0).Err()
}
