// Package cache provides memoizing wrappers backed by a size-bounded
// least recently used store.
//
// Memo wraps a function of one comparable key. Func wraps a function of
// dynamic positional and keyword arguments and derives keys with a Keyer.
// Both keep hit and miss counters, support explicit invalidation and never
// hold their lock while the wrapped function runs, so wrapped functions
// may recurse into their own memoizer.
package cache
