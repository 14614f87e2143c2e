package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/distrocart/backend/pkg/redis"
)

// RedisStore implements Store on the shared redis client. Tag indexes live
// in redis sets keyed per tag; their TTL outlives the entries they cover so
// an index never disappears before its members.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore binds a tag-aware cache to the provided redis client.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisStore{client: client}, nil
}

// Get returns the cached value at key, reporting a miss on redis.Nil.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, true, nil
}

// SetWithTags stores the value and registers the key under every tag index.
func (s *RedisStore) SetWithTags(ctx context.Context, key, value string, ttl time.Duration, tags []string) error {
	if err := s.client.Set(ctx, key, value, ttl); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	for _, tag := range tags {
		tagKey := s.client.TagKey(tag)
		if err := s.client.SAdd(ctx, tagKey, key); err != nil {
			return fmt.Errorf("cache tag %s: %w", tag, err)
		}
		if ttl > 0 {
			if err := s.client.Expire(ctx, tagKey, 2*ttl); err != nil {
				return fmt.Errorf("cache tag expire %s: %w", tag, err)
			}
		}
	}
	return nil
}

// InvalidateTag deletes every key registered under tag, then the index itself.
func (s *RedisStore) InvalidateTag(ctx context.Context, tag string) error {
	tagKey := s.client.TagKey(tag)
	keys, err := s.client.SMembers(ctx, tagKey)
	if err != nil {
		return fmt.Errorf("cache tag members %s: %w", tag, err)
	}
	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...); err != nil {
			return fmt.Errorf("cache tag purge %s: %w", tag, err)
		}
	}
	if err := s.client.Del(ctx, tagKey); err != nil {
		return fmt.Errorf("cache tag index purge %s: %w", tag, err)
	}
	return nil
}
