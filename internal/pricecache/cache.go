package pricecache

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xeroscommerce/pricing-service/pkg/logger"
	"github.com/xeroscommerce/pricing-service/pkg/metrics"
	"github.com/xeroscommerce/pricing-service/pkg/money"
	"github.com/xeroscommerce/pricing-service/pkg/redis"
)

// Backend is the Redis surface the cache needs.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	PriceKey(customerKey string, productID int64) string
}

// Cache memoizes resolved unit prices per (customer, product) key for a
// bounded TTL. It is an optimization only: every failure path falls back to
// computing, and a stored value is a plain decimal string so a corrupt entry
// degrades to a miss.
type Cache struct {
	backend Backend
	ttl     time.Duration
	metrics *metrics.PricingMetrics
	logg    *logger.Logger
}

// New builds the cache. A nil backend yields a pass-through cache.
func New(backend Backend, ttl time.Duration, m *metrics.PricingMetrics, logg *logger.Logger) *Cache {
	return &Cache{backend: backend, ttl: ttl, metrics: m, logg: logg}
}

// GetOrCompute returns the cached price for the key pair or invokes compute,
// stores the result, and returns it. Concurrent callers may compute the same
// key twice; the resolution is idempotent so last write wins harmlessly.
func (c *Cache) GetOrCompute(ctx context.Context, customerKey string, productID int64, compute func(context.Context) (decimal.Decimal, error)) (decimal.Decimal, error) {
	if c == nil || c.backend == nil {
		return compute(ctx)
	}

	key := c.backend.PriceKey(customerKey, productID)

	raw, err := c.backend.Get(ctx, key)
	if err == nil {
		if cached, parseErr := money.Parse(raw); parseErr == nil {
			c.metrics.IncCacheHit()
			return cached, nil
		}
		c.warn(ctx, "discarding unparsable price cache entry", key)
	} else if !errors.Is(err, redis.Nil) {
		c.warn(ctx, "price cache read failed", key)
	}

	c.metrics.IncCacheMiss()
	price, err := compute(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.backend.Set(ctx, key, price.String(), c.ttl); err != nil {
		c.warn(ctx, "price cache write failed", key)
	}
	return price, nil
}

func (c *Cache) warn(ctx context.Context, msg, key string) {
	if c.logg == nil {
		return
	}
	c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), msg)
}
