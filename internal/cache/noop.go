package cache

import "context"

// NoOpCache is a cache implementation that does nothing.
// All operations succeed but no actual caching occurs (always cache miss).
type NoOpCache struct {
	counters
}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always reports a miss
func (c *NoOpCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.record(false)
	return "", false, nil
}

// Put does nothing and always succeeds
func (c *NoOpCache) Put(ctx context.Context, key, value string) error {
	return nil
}

func (c *NoOpCache) Len(ctx context.Context) (int, error) {
	return 0, nil
}

func (c *NoOpCache) Stats() Stats {
	return c.stats()
}

// Close does nothing and always succeeds
func (c *NoOpCache) Close() error {
	return nil
}
