package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"tour-route-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tour:matrix:"

// RedisMatrixCache stores distance matrices as a hash of size and packed payload.
// Entries expire after TTL; zero keeps them forever.
type RedisMatrixCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMatrixCache(client *redis.Client, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{Client: client, TTL: ttl}
}

// NewRedisMatrixCacheFromURL parses a redis:// URL and verifies the connection.
func NewRedisMatrixCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisMatrixCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis matrix cache: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis matrix cache: ping: %w", err)
	}
	return NewRedisMatrixCache(client, ttl), nil
}

func (r *RedisMatrixCache) Get(ctx context.Context, key string) (_ []float64, _ bool, err error) {
	defer obs.Time(ctx, "matrix.cache.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("matrix cache: redis client is nil")
	}
	if key == "" {
		return nil, false, errors.New("get matrix cache: key must not be empty")
	}

	fields, err := r.Client.HGetAll(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache: hgetall: %w", err)
	}
	if len(fields) == 0 {
		return nil, false, nil
	}

	n, err := strconv.Atoi(fields["n"])
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache key=%q: parse n: %w", key, err)
	}
	values, err := decodeTriangle(n, []byte(fields["payload"]))
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache key=%q: %w", key, err)
	}

	return values, true, nil
}

func (r *RedisMatrixCache) Put(ctx context.Context, key string, n int, values []float64) (err error) {
	defer obs.Time(ctx, "matrix.cache.Put")(&err)

	if r.Client == nil {
		return errors.New("matrix cache: redis client is nil")
	}
	if err := checkEntry(key, n, values); err != nil {
		return fmt.Errorf("insert matrix cache: %w", err)
	}

	k := redisKeyPrefix + key
	_, err = r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.HSet(ctx, k, "n", n, "payload", encodeTriangle(values))
		if r.TTL > 0 {
			pipe.Expire(ctx, k, r.TTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert matrix cache key=%q: %w", key, err)
	}

	return nil
}

func (r *RedisMatrixCache) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
