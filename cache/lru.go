package cache

// LRU is a size-bounded least recently used store.
//
// Entries live in a map for lookup and in a circular doubly linked list
// threaded through a sentinel root. root.next is the least recently used
// entry and root.prev the most recently used one.
//
// LRU is not safe for concurrent use.
type LRU[K comparable, V any] struct {
	maxSize int
	items   map[K]*entry[K, V]
	root    entry[K, V]
}

type entry[K comparable, V any] struct {
	next, prev *entry[K, V]
	key        K
	value      V
}

// NewLRU creates a store holding at most maxSize entries.
// Unbounded disables eviction and zero makes Add a no-op.
func NewLRU[K comparable, V any](maxSize int) *LRU[K, V] {
	l := &LRU[K, V]{
		maxSize: maxSize,
		items:   make(map[K]*entry[K, V]),
	}
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

// Get returns the value for key and marks it most recently used.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	e, ok := l.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	l.moveToBack(e)
	return e.value, true
}

// Peek returns the value for key without touching recency.
func (l *LRU[K, V]) Peek(key K) (V, bool) {
	e, ok := l.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Contains reports whether key is stored, without touching recency.
func (l *LRU[K, V]) Contains(key K) bool {
	_, ok := l.items[key]
	return ok
}

// Add stores value under key as the most recently used entry.
// An existing entry is updated in place. When the store is full the
// least recently used entry is evicted first.
func (l *LRU[K, V]) Add(key K, value V) (evicted bool) {
	if l.maxSize == 0 {
		return false
	}
	if e, ok := l.items[key]; ok {
		e.value = value
		l.moveToBack(e)
		return false
	}
	if l.maxSize > 0 && len(l.items) >= l.maxSize {
		l.removeEntry(l.root.next)
		evicted = true
	}
	e := &entry[K, V]{key: key, value: value}
	l.insertBack(e)
	l.items[key] = e
	return evicted
}

// Remove deletes key and reports whether it was present.
func (l *LRU[K, V]) Remove(key K) bool {
	e, ok := l.items[key]
	if !ok {
		return false
	}
	l.removeEntry(e)
	return true
}

// Oldest returns the least recently used entry.
func (l *LRU[K, V]) Oldest() (key K, value V, ok bool) {
	if len(l.items) == 0 {
		return key, value, false
	}
	e := l.root.next
	return e.key, e.value, true
}

// Keys returns the stored keys from least to most recently used.
func (l *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, len(l.items))
	for e := l.root.next; e != &l.root; e = e.next {
		keys = append(keys, e.key)
	}
	return keys
}

// Len returns the number of stored entries.
func (l *LRU[K, V]) Len() int {
	return len(l.items)
}

// MaxSize returns the configured bound.
func (l *LRU[K, V]) MaxSize() int {
	return l.maxSize
}

// Purge removes every entry.
func (l *LRU[K, V]) Purge() {
	clear(l.items)
	l.root.next = &l.root
	l.root.prev = &l.root
}

func (l *LRU[K, V]) insertBack(e *entry[K, V]) {
	last := l.root.prev
	e.prev = last
	e.next = &l.root
	last.next = e
	l.root.prev = e
}

func (l *LRU[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil
	e.prev = nil
}

func (l *LRU[K, V]) moveToBack(e *entry[K, V]) {
	if l.root.prev == e {
		return
	}
	l.unlink(e)
	l.insertBack(e)
}

func (l *LRU[K, V]) removeEntry(e *entry[K, V]) {
	l.unlink(e)
	delete(l.items, e.key)
}

var _ Store[string, int] = (*LRU[string, int])(nil)
