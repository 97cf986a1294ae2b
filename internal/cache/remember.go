package cache

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// Remember returns the value cached under key, computing and storing it on a
// miss. A failed computation is returned as is and leaves the cache untouched.
func Remember[T any](ctx context.Context, c *Cache, key string, compute func(context.Context) (T, error)) (T, error) {
	if blob, ok := c.Get(key); ok {
		var cached T
		err := json.Unmarshal(blob, &cached)
		if err == nil {
			return cached, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key, "error", err)
		c.DeleteMany(key)
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	blob, err := json.Marshal(value)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("encode %s: %w", key, err)
	}
	c.Set(key, blob)

	return value, nil
}
