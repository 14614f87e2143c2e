package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/distrocart/backend/pkg/config"
	"github.com/distrocart/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace       = "dc"
	alternativesPrefix = "cart_alternatives"
	tagPrefix          = "tag"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
	SAdd(context.Context, string, ...any) *redis.IntCmd
	SMembers(context.Context, string) *redis.StringSliceCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
}

// Client wraps the redis connection helpers needed by the platform.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Set stores a string value with an optional TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// Get returns a string value stored at key. A missing key returns
// redis.Nil, which callers translate into a cache miss.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.store == nil {
		return "", errors.New("redis client not initialized")
	}
	return c.store.Get(ctx, key).Result()
}

// Del removes the provided keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Del(ctx, keys...).Err()
}

// SAdd adds members to the set stored at key.
func (c *Client) SAdd(ctx context.Context, key string, members ...any) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.SAdd(ctx, key, members...).Err()
}

// SMembers returns all members of the set stored at key.
func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	if c.store == nil {
		return nil, errors.New("redis client not initialized")
	}
	return c.store.SMembers(ctx, key).Result()
}

// Expire sets a TTL on the given key.
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Expire(ctx, key, ttl).Err()
}

// IsNil reports whether the error is the redis cache-miss sentinel.
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// AlternativesKey returns a namespaced key for a cached alternative set.
func (c *Client) AlternativesKey(fingerprint string) string {
	return c.buildKey(alternativesPrefix, fingerprint)
}

// TagKey returns a namespaced key for a cache invalidation tag index.
func (c *Client) TagKey(tag string) string {
	return c.buildKey(tagPrefix, tag)
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) buildKey(parts ...string) string {
	if len(parts) == 0 {
		return keyNamespace
	}
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
