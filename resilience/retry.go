package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// BackoffStrategy defines how delays grow between attempts.
type BackoffStrategy int

const (
	// BackoffExponential multiplies the delay by Multiplier after every retry.
	BackoffExponential BackoffStrategy = iota
	// BackoffLinear grows the delay by InitialDelay after every retry.
	BackoffLinear
	// BackoffConstant waits InitialDelay between all attempts.
	BackoffConstant
)

// DefaultMaxAttempts is used when RetryConfig.MaxAttempts is zero.
const DefaultMaxAttempts = 2

// RetryConfig configures the retry behavior.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Zero means DefaultMaxAttempts; negative values are rejected.
	MaxAttempts int

	// InitialDelay is the wait before the first retry.
	// Zero retries immediately; negative values are rejected.
	InitialDelay time.Duration

	// MaxDelay caps the wait between attempts. Zero means no cap.
	MaxDelay time.Duration

	// Multiplier scales the delay after each retry for BackoffExponential.
	// Zero means 1; values below 1 are rejected.
	Multiplier float64

	// Strategy is the backoff strategy.
	Strategy BackoffStrategy

	// Jitter adds up to 25% random delay.
	Jitter bool

	// RetryIf filters errors. Errors it rejects are returned at once.
	// Default: every error is retried.
	RetryIf func(err error) bool

	// OnRetry is called before each retry.
	OnRetry func(attempt int, err error, delay time.Duration)

	// Sleep waits between attempts. Default: a timer raced against ctx.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Retry runs operations until they succeed or attempts run out.
type Retry struct {
	config RetryConfig
}

// NewRetry validates config, applies defaults and creates a retry handler.
func NewRetry(config RetryConfig) (*Retry, error) {
	switch {
	case config.MaxAttempts < 0:
		return nil, invalidConfig("max attempts must be >= 1, got %d", config.MaxAttempts)
	case config.InitialDelay < 0:
		return nil, invalidConfig("initial delay must be >= 0, got %v", config.InitialDelay)
	case config.MaxDelay < 0:
		return nil, invalidConfig("max delay must be >= 0, got %v", config.MaxDelay)
	case config.Multiplier != 0 && config.Multiplier < 1:
		return nil, invalidConfig("multiplier must be >= 1, got %g", config.Multiplier)
	}

	if config.MaxAttempts == 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.Multiplier == 0 {
		config.Multiplier = 1
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}
	if config.Sleep == nil {
		config.Sleep = sleepContext
	}

	return &Retry{config: config}, nil
}

// MustRetry is like NewRetry but panics on an invalid configuration.
func MustRetry(config RetryConfig) *Retry {
	r, err := NewRetry(config)
	if err != nil {
		panic(err)
	}
	return r
}

// Execute runs op until it succeeds, RetryIf rejects its error, the
// attempts are used up or ctx is done while waiting. The last error from
// op is returned when attempts run out.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.config.RetryIf(err) {
			return err
		}
		if attempt >= r.config.MaxAttempts {
			break
		}

		delay := r.calculateDelay(attempt)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, err, delay)
		}
		if delay > 0 {
			if err := r.config.Sleep(ctx, delay); err != nil {
				return err
			}
		}
	}

	return lastErr
}

// Do runs fn through r and returns its value.
func Do[T any](ctx context.Context, r *Retry, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := r.Execute(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

func (r *Retry) calculateDelay(attempt int) time.Duration {
	var delay time.Duration

	switch r.config.Strategy {
	case BackoffConstant:
		delay = r.config.InitialDelay
	case BackoffLinear:
		delay = r.config.InitialDelay * time.Duration(attempt)
	case BackoffExponential:
		multiplier := math.Pow(r.config.Multiplier, float64(attempt-1))
		delay = time.Duration(float64(r.config.InitialDelay) * multiplier)
	}

	if r.config.MaxDelay > 0 && delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}

	if r.config.Jitter && delay >= 4 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += time.Duration(rand.Int64N(int64(delay / 4)))
	}

	return delay
}

// Config returns the effective retry configuration.
func (r *Retry) Config() RetryConfig {
	return r.config
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
