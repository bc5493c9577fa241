package redis

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	ticketCountKey    = "tickets:count"
	ticketCountGenKey = "tickets:count:gen"
	ticketCountTTL    = 30 * time.Second

	// unknownGeneration never matches, so SetCount becomes a no-op.
	unknownGeneration = -1
)

// setCountScript stores the count only while the generation is still the one
// the caller read before querying the database.
var setCountScript = goredis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[2] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// CountCache keeps the admin ticket total for a short TTL. Redis errors are
// logged and treated as a miss so the database stays authoritative.
type CountCache struct {
	client *goredis.Client
}

func NewCountCache(client *goredis.Client) *CountCache {
	return &CountCache{client: client}
}

func (c *CountCache) GetCount(ctx context.Context) (int64, int64, bool) {
	vals, err := c.client.MGet(ctx, ticketCountKey, ticketCountGenKey).Result()
	if err != nil || len(vals) != 2 {
		slog.Warn("c.client.MGet()", "key", ticketCountKey, "error", err)
		return 0, unknownGeneration, false
	}

	generation := int64(0)
	if vals[1] != nil {
		gen, ok := parseInt(vals[1])
		if !ok {
			return 0, unknownGeneration, false
		}
		generation = gen
	}

	count, ok := parseInt(vals[0])
	if !ok {
		return 0, generation, false
	}
	return count, generation, true
}

func (c *CountCache) SetCount(ctx context.Context, count int64, generation int64) {
	if generation < 0 {
		return
	}

	keys := []string{ticketCountKey, ticketCountGenKey}
	err := setCountScript.Run(ctx, c.client, keys, count, generation, ticketCountTTL.Milliseconds()).Err()
	if err != nil {
		slog.Warn("setCountScript.Run()", "key", ticketCountKey, "error", err)
	}
}

// Invalidate bumps the generation before dropping the value, so a read that
// started earlier cannot store its total afterwards.
func (c *CountCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, ticketCountGenKey).Err(); err != nil {
		slog.Warn("c.client.Incr()", "key", ticketCountGenKey, "error", err)
	}
	if err := c.client.Del(ctx, ticketCountKey).Err(); err != nil {
		slog.Warn("c.client.Del()", "key", ticketCountKey, "error", err)
	}
}

func parseInt(v interface{}) (int64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
