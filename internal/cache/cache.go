package cache

import (
	"context"
	"sync/atomic"
)

// Cache is an exact-match key/value store for generated advice.
//
// Implementations with a positive capacity evict in insertion order: when a new
// key would push the resident count past capacity, the key inserted earliest is
// removed first. Reads never change eviction order.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put stores value under key. An existing key keeps its insertion position.
	Put(ctx context.Context, key, value string) error

	// Len reports the number of resident entries.
	Len(ctx context.Context) (int, error)

	// Stats returns hit/miss counters since construction.
	Stats() Stats

	// Close releases any underlying connection.
	Close() error
}

// Stats reports cache performance metrics.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

type counters struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (c *counters) record(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
}

func (c *counters) stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
