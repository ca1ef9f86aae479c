package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// RedisOptions configures a RedisRepository.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix is prepended to every key, e.g. "records:".
	KeyPrefix string
	// ConnectRetries is how many times the initial ping is retried.
	ConnectRetries uint64
	// RetryBase is the first backoff delay; it doubles each attempt.
	RetryBase time.Duration
}

type RedisRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRepository wraps an existing client.
func NewRedisRepository(client redis.UniversalClient, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

// DialRedis connects to Redis and waits until it answers PING, retrying
// with exponential backoff.
func DialRedis(ctx context.Context, opts RedisOptions, log logging.Logger) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	base := opts.RetryBase
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	backoff := retry.WithMaxRetries(opts.ConnectRetries, retry.NewExponential(base))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "redis ping failed", "addr", opts.Addr, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}

	return NewRedisRepository(client, opts.KeyPrefix), nil
}

func (r *RedisRepository) key(k string) string { return r.prefix + k }

func (r *RedisRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
