package syncutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiringMemoize_CachesWithinExpiry(t *testing.T) {
	var calls atomic.Int32
	m, err := NewExpiringMemoize(func(_ context.Context, k string) (int, error) {
		calls.Add(1)
		return len(k), nil
	}, 0, time.Hour)
	require.NoError(t, err)

	for range 3 {
		v, err := m.Call(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, m.Len())
}

func TestExpiringMemoize_Expires(t *testing.T) {
	var calls atomic.Int32
	m, err := NewExpiringMemoize(func(context.Context, int) (int32, error) {
		return calls.Add(1), nil
	}, 0, 20*time.Millisecond)
	require.NoError(t, err)

	first, err := m.Call(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), first)

	assert.Eventually(t, func() bool {
		v, err := m.Call(context.Background(), 1)
		return err == nil && v > first
	}, time.Second, 10*time.Millisecond)
}

func TestExpiringMemoize_CollapsesConcurrentLoads(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	m, err := NewExpiringMemoize(func(context.Context, string) (string, error) {
		calls.Add(1)
		<-release
		return "v", nil
	}, 0, time.Hour)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			v, err := m.Call(context.Background(), "k")
			assert.NoError(t, err)
			assert.Equal(t, "v", v)
		})
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestExpiringMemoize_ErrorsAreNotCached(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	m, err := NewExpiringMemoize(func(context.Context, string) (int, error) {
		calls.Add(1)
		return 0, boom
	}, 0, time.Hour)
	require.NoError(t, err)

	_, err = m.Call(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
	_, err = m.Call(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 0, m.Len())
}

func TestExpiringMemoize_ForgetAndClear(t *testing.T) {
	var calls atomic.Int32
	m, err := NewExpiringMemoize(func(_ context.Context, k int) (int, error) {
		calls.Add(1)
		return k * 2, nil
	}, 0, time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = m.Call(ctx, 1)
	_, _ = m.Call(ctx, 2)
	assert.True(t, m.Forget(1))
	assert.False(t, m.Forget(1))
	_, _ = m.Call(ctx, 1)
	assert.Equal(t, int32(3), calls.Load())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestExpiringMemoize_NilFunc(t *testing.T) {
	_, err := NewExpiringMemoize[string, int](nil, 0, time.Second)
	assert.ErrorIs(t, err, ErrNilFunc)
}

func TestExpiringMemoize_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	m, err := NewExpiringMemoize(func(ctx context.Context, _ string) (string, error) {
		calls.Add(1)
		<-release
		return "v", ctx.Err()
	}, 0, time.Hour)
	require.NoError(t, err)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := m.Call(firstCtx, "k")
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		v   string
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := m.Call(context.Background(), "k")
		second <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "v", got.v)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, m.Len())
}
