package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

// BenchmarkRetry_Success measures overhead when the first attempt succeeds.
func BenchmarkRetry_Success(b *testing.B) {
	r := MustRetry(RetryConfig{MaxAttempts: 3})
	ctx := context.Background()
	op := func(ctx context.Context) error { return nil }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Execute(ctx, op)
	}
}

// BenchmarkRetry_Exhausted measures immediate retries that all fail.
func BenchmarkRetry_Exhausted(b *testing.B) {
	r := MustRetry(RetryConfig{MaxAttempts: 3})
	ctx := context.Background()
	errFail := errors.New("fail")
	op := func(ctx context.Context) error { return errFail }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Execute(ctx, op)
	}
}

// BenchmarkTimeout_Success measures the goroutine handoff cost.
func BenchmarkTimeout_Success(b *testing.B) {
	to := NewTimeout(TimeoutConfig{Timeout: time.Second})
	ctx := context.Background()
	op := func(ctx context.Context) error { return nil }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = to.Execute(ctx, op)
	}
}
