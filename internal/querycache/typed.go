package querycache

import (
	"context"
	"fmt"
)

// Fetch is the typed front door to EnsureFresh: the caller's fetch
// function fixes the value type, so call sites never handle raw any.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.EnsureFresh(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return assert[T](key, v)
}

// Refresh is the typed front door to Refetch (forced revalidation).
func Refresh[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Refetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return assert[T](key, v)
}

// Get returns the cached data for key as T, when present and typed as
// expected. It never fetches.
func Get[T any](c *Cache, key Key) (T, bool) {
	var zero T
	e, ok := c.Get(key)
	if !ok || !e.HasData() {
		return zero, false
	}
	t, ok := e.Data.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

func assert[T any](key Key, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T, want %T", key, v, zero)
	}
	return t, nil
}
