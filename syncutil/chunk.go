package syncutil

import (
	"context"
	"iter"
	"sync/atomic"
)

// DefaultChunkSize is the chunk length used when NewChunkIter gets size <= 0.
const DefaultChunkSize = 50

// ChunkIter drains a sequence on a background goroutine and emits the
// items on Chunks in slices of a fixed size. The last chunk holds the
// leftovers. Iteration starts when the ChunkIter is created.
type ChunkIter[T any] struct {
	// Chunks fires once per completed chunk, on the worker goroutine.
	Chunks *Signal[[]T]

	cancel   context.CancelFunc
	done     chan struct{}
	finished atomic.Bool
	fired    atomic.Int64
}

// NewChunkIter starts iterating seq. callback, when non-nil, is connected
// to Chunks before the first item is read.
func NewChunkIter[T any](ctx context.Context, seq iter.Seq[T], size int, callback func([]T), opts ...SignalOption) *ChunkIter[T] {
	if size <= 0 {
		size = DefaultChunkSize
	}
	ctx, cancel := context.WithCancel(ctx)
	c := &ChunkIter[T]{
		Chunks: NewSignal[[]T](opts...),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.Chunks.Connect(callback)
	go c.run(ctx, seq, size)
	return c
}

func (c *ChunkIter[T]) run(ctx context.Context, seq iter.Seq[T], size int) {
	defer c.cancel()
	defer close(c.done)
	defer c.finished.Store(true)

	chunk := make([]T, 0, size)
	for item := range seq {
		chunk = append(chunk, item)
		if len(chunk) == size {
			c.emit(chunk)
			chunk = make([]T, 0, size)
		}
		if ctx.Err() != nil {
			return
		}
	}
	if len(chunk) > 0 && ctx.Err() == nil {
		c.emit(chunk)
	}
}

func (c *ChunkIter[T]) emit(chunk []T) {
	c.Chunks.Emit(chunk)
	c.fired.Add(1)
}

// Wait blocks until iteration finishes or ctx is done.
func (c *ChunkIter[T]) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ChunksEmitted returns how many chunks have been reported so far.
func (c *ChunkIter[T]) ChunksEmitted() int {
	return int(c.fired.Load())
}

// Finished reports whether iteration has ended.
func (c *ChunkIter[T]) Finished() bool {
	return c.finished.Load()
}

// Cancel asks the worker to stop after the current item.
func (c *ChunkIter[T]) Cancel() {
	c.cancel()
}
