package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "settings:"

// RedisStore keeps one hash per namespace.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to a redis:// URL and pings it.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return NewRedisStore(client), nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, namespace string) (Values, error) {
	values, err := s.client.HGetAll(ctx, redisKeyPrefix+namespace).Result()
	if err != nil {
		return nil, err
	}
	return Values(values), nil
}

func (s *RedisStore) Set(ctx context.Context, namespace string, values Values) error {
	if len(values) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(values))
	for k, v := range values {
		fields[k] = v
	}
	return s.client.HSet(ctx, redisKeyPrefix+namespace, fields).Err()
}

func (s *RedisStore) Close() error { return s.client.Close() }
