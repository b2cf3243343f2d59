package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces rate-limit counters within the shared store.
const keyPrefix = "rate_limit:"

// incrWindowScript increments the key and starts the window TTL only when
// the key was just created, in one atomic round-trip.
var incrWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisCounter implements Counter on a Redis instance.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(addr string) *RedisCounter {
	return &RedisCounter{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *RedisCounter) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	return incrWindowScript.Run(ctx, c.client, []string{keyPrefix + key}, window.Milliseconds()).Int64()
}

func (c *RedisCounter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCounter) Close() error {
	return c.client.Close()
}
