package cache

import (
	"context"
	"errors"
)

// Unbounded is the MaxSize value for a cache that never evicts.
const Unbounded = -1

// Sentinel errors for cache operations.
var (
	ErrNilFunc        = errors.New("cache: wrapped function is nil")
	ErrInvalidMaxSize = errors.New("cache: max size must be Unbounded, zero or positive")
	ErrUnhashable     = errors.New("cache: argument is not hashable")
)

// Info is a point-in-time snapshot of memoizer statistics.
type Info struct {
	Hits     int64
	Misses   int64
	MaxSize  int
	CurrSize int
}

// Store is the storage contract a memoizer drives.
//
// Contract:
//   - Concurrency: implementations need not be safe for concurrent use;
//     callers serialize access.
//   - Ordering: Get promotes the entry to most recently used, Peek does not.
//   - Capacity: Add evicts the least recently used entry when full and
//     reports whether an eviction happened.
type Store[K comparable, V any] interface {
	Get(key K) (V, bool)
	Peek(key K) (V, bool)
	Contains(key K) bool
	Add(key K, value V) (evicted bool)
	Remove(key K) bool
	Len() int
	Purge()
}

// Memoizer is the common surface of Memo and Func.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Locking: the wrapped function is never invoked while a lock is held.
//   - Errors: errors from the wrapped function are returned unchanged and never cached.
type Memoizer interface {
	Info() Info
	Clear()
}

// Loader is the signature of a function wrapped by Memo.
type Loader[K comparable, V any] func(ctx context.Context, key K) (V, error)
