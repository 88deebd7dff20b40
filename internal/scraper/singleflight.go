package scraper

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// FetchGroup deduplicates concurrent fetches of the same URL. Multiple
// goroutines asking for one page while a fetch is in flight share the
// single result instead of hammering the portal.
type FetchGroup struct {
	group singleflight.Group
}

// Do executes fn under key, sharing the result with concurrent callers.
// shared reports whether this caller piggybacked on another's fetch.
func (g *FetchGroup) Do(ctx context.Context, key string, fn func() (any, error)) (v any, shared bool, err error) {
	v, err, shared = g.group.Do(key, func() (any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		return fn()
	})
	return v, shared, err
}

// Forget removes a key, letting the next request execute fresh.
func (g *FetchGroup) Forget(key string) {
	g.group.Forget(key)
}
