package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for cached advice bodies
	entryKeyPrefix = "advice:entry:"

	// List holding keys in insertion order, oldest at the head
	orderKey = "advice:order"
)

// Redis is a FIFO cache shared between processes. Each Put runs as one
// server-side script, so the capacity bound holds across writers.
type Redis struct {
	client   *redis.Client
	capacity int
	counters
}

// NewRedis connects to addr and verifies the connection with a ping.
func NewRedis(addr, password string, capacity int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewRedisWithClient(client, capacity), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, capacity int) *Redis {
	return &Redis{client: client, capacity: capacity}
}

func (c *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, entryKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		c.record(false)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	c.record(true)
	return val, true, nil
}

// putScript stores an entry, appends new keys to the order list and evicts
// from its head in one atomic step, so an entry is never resident without its
// place in the order list.
//
// KEYS[1] entry key, KEYS[2] order list; ARGV: value, cache key, capacity, entry prefix.
var putScript = redis.NewScript(`
if not redis.call('SET', KEYS[1], ARGV[1], 'NX') then
	redis.call('SET', KEYS[1], ARGV[1])
	return 0
end
redis.call('RPUSH', KEYS[2], ARGV[2])
local capacity = tonumber(ARGV[3])
if capacity > 0 then
	while redis.call('LLEN', KEYS[2]) > capacity do
		local oldest = redis.call('LPOP', KEYS[2])
		redis.call('DEL', ARGV[4] .. oldest)
	end
end
return 1
`)

func (c *Redis) Put(ctx context.Context, key, value string) error {
	keys := []string{entryKeyPrefix + key, orderKey}
	return putScript.Run(ctx, c.client, keys, value, key, c.capacity, entryKeyPrefix).Err()
}

func (c *Redis) Len(ctx context.Context) (int, error) {
	n, err := c.client.LLen(ctx, orderKey).Result()
	return int(n), err
}

func (c *Redis) Stats() Stats {
	return c.stats()
}

// Close closes the cache connection
func (c *Redis) Close() error {
	return c.client.Close()
}
