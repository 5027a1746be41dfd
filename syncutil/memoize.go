package syncutil

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/utilkit/cache"
)

// ExpiringMemoize caches the results of a keyed loader for a fixed period.
//
// Entries expire Expiry after they were stored; reading an entry does not
// extend its life. Concurrent misses for the same key share one loader
// call. Loader errors are returned to every waiting caller and are not
// cached.
//
// The shared load runs on a context detached from the cancellation and
// deadline of the caller that started it. A caller whose own context ends
// first returns its context error while the load carries on for the rest.
//
// The underlying store runs a cleanup goroutine for the life of the process.
type ExpiringMemoize[K comparable, V any] struct {
	fn    cache.Loader[K, V]
	store *expirable.LRU[K, V]
	group singleflight.Group
	keyer cache.Keyer
}

// NewExpiringMemoize wraps fn. A non-positive maxSize leaves the store
// unbounded; a non-positive expiry keeps entries until evicted.
func NewExpiringMemoize[K comparable, V any](fn cache.Loader[K, V], maxSize int, expiry time.Duration) (*ExpiringMemoize[K, V], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if maxSize < 0 {
		maxSize = 0
	}
	return &ExpiringMemoize[K, V]{
		fn:    fn,
		store: expirable.NewLRU[K, V](maxSize, nil, expiry),
		keyer: cache.NewDefaultKeyer(true),
	}, nil
}

// Call returns the live cached value for key or loads a fresh one.
func (m *ExpiringMemoize[K, V]) Call(ctx context.Context, key K) (V, error) {
	if v, ok := m.store.Get(key); ok {
		return v, nil
	}

	flight, err := m.keyer.Key(cache.Args{Pos: []any{key}})
	if err != nil {
		var zero V
		return zero, fmt.Errorf("syncutil: key %v: %w", key, err)
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := m.group.DoChan(flight, func() (any, error) {
		if v, ok := m.store.Get(key); ok {
			return v, nil
		}
		v, err := m.fn(loadCtx, key)
		if err != nil {
			return nil, err
		}
		m.store.Add(key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		v, _ := r.Val.(V)
		return v, nil
	}
}

// Forget drops the entry for key.
func (m *ExpiringMemoize[K, V]) Forget(key K) bool {
	return m.store.Remove(key)
}

// Len returns the number of stored entries, including any expired ones
// not yet swept.
func (m *ExpiringMemoize[K, V]) Len() int {
	return m.store.Len()
}

// Clear drops every entry.
func (m *ExpiringMemoize[K, V]) Clear() {
	m.store.Purge()
}
