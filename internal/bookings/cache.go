package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"airline-assist/internal/common/logger"
	"airline-assist/internal/common/metrics"
	"airline-assist/internal/models"
)

const cacheKeyPrefix = "bookings:email:"

// CachedSource is a Redis read-through cache in front of another Source.
// Cache errors are logged and never fail a lookup. Empty results are not
// cached so a newly made booking shows up on the next attempt.
type CachedSource struct {
	next   Source
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(next Source, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedSource {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &CachedSource{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "booking-cache"}),
	}
}

func CacheKey(email string) string {
	return cacheKeyPrefix + normalizeEmail(email)
}

func (c *CachedSource) FindByEmail(ctx context.Context, email string) ([]models.BookingRecord, error) {
	key := CacheKey(email)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []models.BookingRecord
		if jerr := json.Unmarshal(raw, &cached); jerr == nil {
			metrics.BookingCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
		c.logger.Warn("discarding unreadable cache entry", map[string]interface{}{"key": key})
	case errors.Is(err, redis.Nil):
		metrics.BookingCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.BookingCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("booking cache read failed", map[string]interface{}{"error": err})
	}

	records, err := c.next.FindByEmail(ctx, email)
	if err != nil || len(records) == 0 {
		return records, err
	}

	if payload, jerr := json.Marshal(records); jerr == nil {
		if serr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.logger.Warn("booking cache write failed", map[string]interface{}{"error": serr})
		}
	}
	return records, nil
}

// Invalidate drops the cached bookings for email, e.g. after a refund write.
func (c *CachedSource) Invalidate(ctx context.Context, email string) {
	if err := c.rdb.Del(ctx, CacheKey(email)).Err(); err != nil {
		c.logger.Warn("booking cache invalidate failed", map[string]interface{}{"error": err})
	}
}
