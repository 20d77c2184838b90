// Package memo caches expensive constructors (embedding models, chunk stores)
// keyed by the configuration that produced them.
package memo

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Group memoizes the result of a loader per key. Concurrent callers for the
// same key share one load. Only successful loads are cached, so a failed load
// is retried on the next call.
type Group[K comparable, V any] struct {
	mu    sync.Mutex
	cache map[K]V
	sf    singleflight.Group
}

// Get returns the cached value for key, calling load once if there is none.
func (g *Group[K, V]) Get(key K, load func() (V, error)) (V, error) {
	g.mu.Lock()
	if v, ok := g.cache[key]; ok {
		g.mu.Unlock()
		return v, nil
	}
	g.mu.Unlock()

	res, err, _ := g.sf.Do(fmt.Sprintf("%#v", key), func() (any, error) {
		g.mu.Lock()
		if v, ok := g.cache[key]; ok {
			g.mu.Unlock()
			return v, nil
		}
		g.mu.Unlock()

		v, err := load()
		if err != nil {
			return v, err
		}
		g.mu.Lock()
		if g.cache == nil {
			g.cache = make(map[K]V)
		}
		g.cache[key] = v
		g.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Forget drops the cached value for key.
func (g *Group[K, V]) Forget(key K) {
	g.mu.Lock()
	delete(g.cache, key)
	g.mu.Unlock()
}
