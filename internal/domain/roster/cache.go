package roster

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	holidayIndexKey      = "hr:holidays:keys"
	holidayGenerationKey = "hr:holidays:gen"
)

// HolidayCacheKey names the entry for a range within one cache generation.
func HolidayCacheKey(gen int64, w Window) string {
	return "hr:holidays:" + strconv.FormatInt(gen, 10) + ":" + formatDate(w.From) + ":" + formatDate(w.To)
}

// HolidayCache keeps holiday unions in Redis per date range. A nil client disables caching;
// concurrent misses for one range share a single load. Entries are keyed by a generation
// counter that Invalidate bumps, so a load that was in flight during an invalidation
// writes under the old generation and is never read again.
type HolidayCache struct {
	rdb redis.Cmdable
	ttl time.Duration
	sf  singleflight.Group
}

func NewHolidayCache(rdb redis.Cmdable, ttl time.Duration) *HolidayCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &HolidayCache{rdb: rdb, ttl: ttl}
}

func (c *HolidayCache) Get(ctx context.Context, w Window, load func(context.Context) ([]HolidayEntry, error)) ([]HolidayEntry, error) {
	if c.rdb == nil {
		return load(ctx)
	}
	gen, err := c.generation(ctx)
	if err != nil {
		slog.Warn("holiday cache generation read failed", "err", err)
		return load(ctx)
	}
	key := HolidayCacheKey(gen, w)
	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var out []HolidayEntry
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
		slog.Warn("holiday cache entry unreadable", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("holiday cache read failed", "key", key, "err", err)
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		entries, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, entries)
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]HolidayEntry), nil
}

func (c *HolidayCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, holidayGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *HolidayCache) store(ctx context.Context, key string, entries []HolidayEntry) {
	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("holiday cache write failed", "key", key, "err", err)
		return
	}
	if err := c.rdb.SAdd(ctx, holidayIndexKey, key).Err(); err != nil {
		slog.Warn("holiday cache index write failed", "key", key, "err", err)
	}
}

// Invalidate moves readers to a fresh generation and drops the ranges cached so far.
// Failures are logged; entries still expire by TTL.
func (c *HolidayCache) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, holidayGenerationKey).Err(); err != nil {
		slog.Warn("holiday cache generation bump failed", "err", err)
	}
	keys, err := c.rdb.SMembers(ctx, holidayIndexKey).Result()
	if err != nil {
		slog.Warn("holiday cache index read failed", "err", err)
		return
	}
	keys = append(keys, holidayIndexKey)
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("holiday cache invalidate failed", "err", err)
	}
}
