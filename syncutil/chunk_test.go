package syncutil

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkIter_ReportsChunks(t *testing.T) {
	var mu sync.Mutex
	var chunks [][]int
	c := NewChunkIter(context.Background(), slices.Values([]int{1, 2, 3, 4, 5, 6, 7}), 3, func(chunk []int) {
		mu.Lock()
		chunks = append(chunks, chunk)
		mu.Unlock()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Wait(ctx))

	assert.True(t, c.Finished())
	assert.Equal(t, 3, c.ChunksEmitted())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7}}, chunks)
}

func TestChunkIter_DefaultSize(t *testing.T) {
	var sizes []int
	c := NewChunkIter(context.Background(), func(yield func(int) bool) {
		for i := range 120 {
			if !yield(i) {
				return
			}
		}
	}, 0, func(chunk []int) { sizes = append(sizes, len(chunk)) })

	require.NoError(t, c.Wait(context.Background()))
	assert.Equal(t, []int{DefaultChunkSize, DefaultChunkSize, 20}, sizes)
}

func TestChunkIter_Cancel(t *testing.T) {
	gate := make(chan struct{})
	var emitted [][]int
	seq := func(yield func(int) bool) {
		for i := 0; ; i++ {
			if i == 2 {
				<-gate
			}
			if !yield(i) {
				return
			}
		}
	}
	c := NewChunkIter(context.Background(), seq, 2, func(chunk []int) { emitted = append(emitted, chunk) })

	c.Cancel()
	close(gate)
	require.NoError(t, c.Wait(context.Background()))

	assert.True(t, c.Finished())
	assert.LessOrEqual(t, len(emitted), 2)
}

func TestChunkIter_WaitHonoursContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	c := NewChunkIter(context.Background(), func(yield func(int) bool) {
		<-block
	}, 1, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Wait(ctx), context.DeadlineExceeded)
	assert.False(t, c.Finished())
}
