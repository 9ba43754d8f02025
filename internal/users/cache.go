package users

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/faciam-dev/formfields/pkg/formfield"
	"github.com/faciam-dev/formfields/pkg/metrics"
)

const (
	defaultCacheTTL    = 5 * time.Minute
	defaultCachePrefix = "ff:user:"
)

// CachedLookup remembers registered addresses in Redis. Only positive
// answers are cached so a newly registered user is accepted at once.
// Redis failures fall back to the wrapped lookup.
type CachedLookup struct {
	Next   formfield.UserLookup
	Client *redis.Client
	TTL    time.Duration
	Prefix string
	Logger *zap.SugaredLogger
}

// NewCachedLookup wraps next with a cache at redisURL. An empty URL returns
// next unchanged.
func NewCachedLookup(next formfield.UserLookup, redisURL string, ttl time.Duration, logger *zap.SugaredLogger) (formfield.UserLookup, error) {
	if redisURL == "" {
		return next, nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &CachedLookup{Next: next, Client: redis.NewClient(opt), TTL: ttl, Logger: logger}, nil
}

func (c *CachedLookup) key(email string) string {
	p := c.Prefix
	if p == "" {
		p = defaultCachePrefix
	}
	return p + email
}

func (c *CachedLookup) logger() *zap.SugaredLogger {
	if c.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return c.Logger
}

// ExistsByEmail answers from Redis when possible.
func (c *CachedLookup) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if c.Next == nil {
		return false, errNotInitialized
	}
	if c.Client != nil {
		err := c.Client.Get(ctx, c.key(email)).Err()
		switch {
		case err == nil:
			metrics.CacheHits.Inc()
			return true, nil
		case errors.Is(err, redis.Nil):
			metrics.CacheMisses.Inc()
		default:
			c.logger().Warnw("user cache get failed", "email", email, "err", err)
		}
	}
	ok, err := c.Next.ExistsByEmail(ctx, email)
	if err != nil || !ok || c.Client == nil {
		return ok, err
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if err := c.Client.Set(ctx, c.key(email), "1", ttl).Err(); err != nil {
		c.logger().Warnw("user cache set failed", "email", email, "err", err)
	}
	return true, nil
}

// Forget drops a cached address, e.g. after the user was deleted.
func (c *CachedLookup) Forget(ctx context.Context, email string) error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Del(ctx, c.key(email)).Err()
}

// Close releases the Redis connection pool. The wrapped lookup is left open.
func (c *CachedLookup) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
