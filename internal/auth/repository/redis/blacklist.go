package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	autherror "github.com/studymodules/auth-service/internal/errors"
)

const keyPrefix = "blacklist:"

// Blacklist stores revoked tokens as redis keys whose TTL mirrors the token's
// own expiry, so redis reclaims entries on its own.
type Blacklist struct {
	client *goredis.Client
}

func NewBlacklist(client *goredis.Client) *Blacklist {
	return &Blacklist{client: client}
}

func (b *Blacklist) Add(ctx context.Context, token string, expiresAt time.Time) error {
	key := keyPrefix + token

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// The token is already dead; make sure no stale entry lingers.
		if err := b.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to blacklist token: %w", err)
		}
		return nil
	}

	value := strconv.FormatInt(expiresAt.Unix(), 10)
	if err := b.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

func (b *Blacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	key := keyPrefix + token

	value, err := b.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		// Lookup failures must surface as errors so the caller denies access.
		return false, fmt.Errorf("%w: %v", autherror.ErrBlacklistUnavailable, err)
	}

	expiresAt, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// An unreadable entry still marks the token as revoked.
		return true, nil
	}

	if time.Now().Unix() >= expiresAt {
		// Belt and braces next to the key TTL: reclaim on lookup as well.
		_ = b.client.Del(ctx, key).Err()
		return false, nil
	}

	return true, nil
}

// SweepExpired is a no-op for the redis backend: every entry carries a key TTL
// matching its expiry, so redis reclaims expired entries itself.
func (b *Blacklist) SweepExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
