package cache

import (
	"context"
	"sync"
)

// Memo wraps a Loader so repeated calls with an equal key return the
// stored result instead of invoking the loader again.
//
// The lock guards the store and the counters only. It is released before
// the loader runs and taken again to publish the result, so a loader may
// call back into the same Memo.
type Memo[K comparable, V any] struct {
	fn  Loader[K, V]
	cfg Config

	mu     sync.Mutex
	store  *LRU[K, V]
	hits   int64
	misses int64
}

// New wraps fn with a memoizing cache configured by cfg.
func New[K comparable, V any](fn Loader[K, V], cfg Config) (*Memo[K, V], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := newMemo[K, V](cfg)
	m.fn = fn
	return m, nil
}

func newMemo[K comparable, V any](cfg Config) *Memo[K, V] {
	return &Memo[K, V]{
		cfg:   cfg,
		store: NewLRU[K, V](cfg.MaxSize),
	}
}

// MustNew is like New but panics on a configuration error.
func MustNew[K comparable, V any](fn Loader[K, V], cfg Config) *Memo[K, V] {
	m, err := New(fn, cfg)
	if err != nil {
		panic(err)
	}
	return m
}

// Call returns the cached result for key, invoking the loader on a miss.
//
// Loader errors are returned unchanged and leave both the store and the
// counters untouched. When a concurrent caller stored key while this
// call's loader was running, the stored value wins but this call still
// counts a miss and returns its own result.
func (m *Memo[K, V]) Call(ctx context.Context, key K) (V, error) {
	return m.lookup(key, func() (V, error) { return m.fn(ctx, key) })
}

func (m *Memo[K, V]) lookup(key K, load func() (V, error)) (V, error) {
	if !m.cfg.ShouldCache() {
		v, err := load()
		if err != nil {
			return v, err
		}
		m.mu.Lock()
		m.misses++
		m.mu.Unlock()
		return v, nil
	}

	m.mu.Lock()
	if v, ok := m.store.Get(key); ok {
		m.hits++
		m.mu.Unlock()
		return v, nil
	}
	m.mu.Unlock()

	v, err := load()
	if err != nil {
		return v, err
	}

	m.mu.Lock()
	if !m.store.Contains(key) {
		m.store.Add(key, v)
	}
	m.misses++
	m.mu.Unlock()
	return v, nil
}

// Bypass invokes the loader directly without reading or populating the cache.
func (m *Memo[K, V]) Bypass(ctx context.Context, key K) (V, error) {
	return m.fn(ctx, key)
}

// Forget drops the entry for key, if any.
func (m *Memo[K, V]) Forget(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Remove(key)
}

// Keys returns the cached keys from least to most recently used.
func (m *Memo[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Keys()
}

// Info returns a consistent snapshot of the statistics.
func (m *Memo[K, V]) Info() Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Info{
		Hits:     m.hits,
		Misses:   m.misses,
		MaxSize:  m.cfg.MaxSize,
		CurrSize: m.store.Len(),
	}
}

// Clear removes every entry and resets the counters.
func (m *Memo[K, V]) Clear() {
	m.mu.Lock()
	m.store.Purge()
	m.hits = 0
	m.misses = 0
	m.mu.Unlock()
}

var _ Memoizer = (*Memo[string, int])(nil)
