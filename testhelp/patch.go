package testhelp

import (
	"sync/atomic"
	"testing"
)

// Patch sets *target to value and restores the previous value when the
// test finishes.
func Patch[T any](tb testing.TB, target *T, value T) {
	tb.Helper()
	old := *target
	*target = value
	tb.Cleanup(func() { *target = old })
}

// CallCounter counts calls to the functions it hands out. It is safe for
// concurrent use.
type CallCounter struct {
	n atomic.Int64
}

// Incr records a call and returns the new count.
func (c *CallCounter) Incr() int {
	return int(c.n.Add(1))
}

// Count returns the number of calls so far.
func (c *CallCounter) Count() int {
	return int(c.n.Load())
}

// NoParams returns a func() that counts its calls.
func (c *CallCounter) NoParams() func() {
	return func() { c.Incr() }
}

// AllParams returns a variadic func that counts its calls and ignores
// its arguments.
func (c *CallCounter) AllParams() func(...any) {
	return func(...any) { c.Incr() }
}
