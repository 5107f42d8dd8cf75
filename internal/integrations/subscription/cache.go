package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "subscription:access:"

// CachedChecker кэширует решения Checker в Redis.
// Недоступность Redis не ломает проверку: запрос уходит напрямую в сервис подписок.
type CachedChecker struct {
	next  Checker
	redis redis.Cmdable
	ttl   time.Duration
	log   Logger
}

// NewCachedChecker создает кэширующую обертку
func NewCachedChecker(next Checker, rdb redis.Cmdable, ttl time.Duration, log Logger) *CachedChecker {
	return &CachedChecker{
		next:  next,
		redis: rdb,
		ttl:   ttl,
		log:   log,
	}
}

// CheckAccess возвращает решение из кэша или запрашивает его у сервиса подписок
func (c *CachedChecker) CheckAccess(ctx context.Context, shopID uuid.UUID) (*Access, error) {
	key := cacheKey(shopID)

	cached, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var access Access
		if jsonErr := json.Unmarshal(cached, &access); jsonErr == nil {
			return &access, nil
		}
		c.log.Warn("Subscription cache: corrupted entry for shop_id=%s, refetching", shopID)
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("Subscription cache: get failed for shop_id=%s: %v", shopID, err)
	}

	access, err := c.next.CheckAccess(ctx, shopID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(access)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode access: %v", ErrInternal, err)
	}

	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("Subscription cache: set failed for shop_id=%s: %v", shopID, err)
	}

	return access, nil
}

func cacheKey(shopID uuid.UUID) string {
	return cacheKeyPrefix + shopID.String()
}
