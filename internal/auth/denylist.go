package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const denylistPrefix = "auth:denylist:"

// TokenDenylist records revoked token IDs until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	Revoked(ctx context.Context, jti string) bool
}

// Denylist tracks revoked token IDs in Redis until their natural expiry.
// Tokens stay stateless otherwise; only logout writes here.
type Denylist struct {
	client *redis.Client
	logger *zap.Logger
}

// NewDenylist builds a denylist over an existing Redis client.
func NewDenylist(client *redis.Client, logger *zap.Logger) *Denylist {
	return &Denylist{client: client, logger: logger}
}

// Revoke marks a token ID revoked for the token's remaining lifetime.
func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if d == nil || d.client == nil {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistPrefix+jti, "revoked", ttl).Err()
}

// Revoked reports whether the token ID has been revoked. Redis outages fail
// open with a warning so stateless validation keeps working.
func (d *Denylist) Revoked(ctx context.Context, jti string) bool {
	if d == nil || d.client == nil {
		return false
	}
	_, err := d.client.Get(ctx, denylistPrefix+jti).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		d.logger.Warn("denylist lookup failed", zap.Error(err))
		return false
	}
	return true
}
