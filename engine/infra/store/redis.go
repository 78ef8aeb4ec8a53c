package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arrosage/arrosage/pkg/config"
	"github.com/arrosage/arrosage/pkg/logger"
)

// Interface defines the minimal Redis surface the data layers need.
// This allows both the real client and mocks to be used.
type Interface interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// Store wraps a Redis client with connection lifecycle handling.
type Store struct {
	client redis.UniversalClient
	config *config.RedisConfig
	once   sync.Once // guarantees idempotent, race-free Close
}

const fallbackPingTimeout = 10 * time.Second

// New connects to Redis using the provided configuration and verifies the
// connection with a ping before returning. Connection and authentication
// failures surface here, before any data operation is attempted.
func New(ctx context.Context, cfg *config.RedisConfig) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = fallbackPingTimeout
	}
	if err := ping(ctx, client, timeout); err != nil {
		client.Close()
		return nil, err
	}
	logger.FromContext(ctx).With(
		"host", cfg.Host,
		"port", cfg.Port,
		"db", cfg.DB,
	).Info("Redis connection established")
	return &Store{client: client, config: cfg}, nil
}

// ping validates connectivity within the configured timeout.
func ping(ctx context.Context, client redis.UniversalClient, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if IsAuthError(err) {
			return fmt.Errorf("authenticating to Redis: %w", err)
		}
		return fmt.Errorf("connecting to Redis (timeout=%s): %w", timeout, err)
	}
	return nil
}

// Close shuts down the Redis connection.
func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		err = s.client.Close()
	})
	return err
}

// Client returns the underlying Redis client.
func (s *Store) Client() redis.UniversalClient {
	return s.client
}

// Ping checks if the Redis server is reachable.
func (s *Store) Ping(ctx context.Context) *redis.StatusCmd {
	return s.client.Ping(ctx)
}

// Set stores a key-value pair with optional expiration.
func (s *Store) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	return s.client.Set(ctx, key, value, expiration)
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) *redis.StringCmd {
	return s.client.Get(ctx, key)
}

// Del deletes one or more keys.
func (s *Store) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return s.client.Del(ctx, keys...)
}

// GetString fetches the raw string value at key, mapping the missing-key
// reply to ErrNotFound.
func GetString(ctx context.Context, client Interface, key string) (string, error) {
	val, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("reading key %q: %w", key, err)
	}
	return val, nil
}
