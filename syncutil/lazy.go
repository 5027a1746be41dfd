package syncutil

import "sync"

// Lazy holds a value computed on first use.
//
// The function runs under a lock, so concurrent first callers wait for a
// single evaluation. A failed evaluation is not remembered and the next
// Get tries again.
type Lazy[T any] struct {
	fn func() (T, error)

	mu   sync.Mutex
	done bool
	val  T
}

// NewLazy returns a Lazy backed by fn.
func NewLazy[T any](fn func() (T, error)) *Lazy[T] {
	return &Lazy[T]{fn: fn}
}

// Get returns the memoized value, computing it if needed.
func (l *Lazy[T]) Get() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return l.val, nil
	}
	if l.fn == nil {
		var zero T
		return zero, ErrNilFunc
	}
	v, err := l.fn()
	if err != nil {
		return v, err
	}
	l.val, l.done = v, true
	return v, nil
}

// Done reports whether a value has been stored.
func (l *Lazy[T]) Done() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Reset forgets the stored value.
func (l *Lazy[T]) Reset() {
	l.mu.Lock()
	var zero T
	l.val, l.done = zero, false
	l.mu.Unlock()
}
