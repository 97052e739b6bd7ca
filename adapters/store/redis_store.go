package store

import (
	"context"
	"fmt"
	"time"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/ports"
	"github.com/redis/go-redis/v9"
)

// RedisBlocklist is a Redis implementation of the Blocklist interface.
// Every entry is written with the same TTL, which must be at least the
// refresh token lifetime so that no token can outlive its revocation record.
type RedisBlocklist struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisBlocklist creates a new Redis blocklist
func NewRedisBlocklist(client *redis.Client, ttl time.Duration) ports.Blocklist {
	return &RedisBlocklist{
		client: client,
		prefix: "bookly:blocklist:",
		ttl:    ttl,
	}
}

// Revoke marks a jti as revoked in Redis
func (s *RedisBlocklist) Revoke(ctx context.Context, jti string) error {
	key := s.prefix + jti

	if err := s.client.Set(ctx, key, "", s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	return nil
}

// IsRevoked checks whether a jti is revoked in Redis
func (s *RedisBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	key := s.prefix + jti

	val, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	return val > 0, nil
}
