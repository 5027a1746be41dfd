// Package resilience provides retry and timeout wrappers.
//
// # Patterns
//
//   - Retry: reruns a failing operation a bounded number of times, with an
//     error filter and an optional wait that grows between attempts.
//
//   - Timeout: stops waiting for an operation after a deadline and reports
//     ErrTimeout. Errors and panics from the operation reach the caller.
//
// # Usage
//
//	retry, err := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts:  3,
//	    InitialDelay: 100 * time.Millisecond,
//	    Multiplier:   2.0,
//	    RetryIf: func(err error) bool {
//	        return errors.Is(err, io.ErrUnexpectedEOF)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//
//	executor := resilience.NewExecutor(
//	    resilience.WithRetry(retry),
//	    resilience.WithTimeout(5*time.Second),
//	)
//
//	err = executor.Execute(ctx, func(ctx context.Context) error {
//	    return readManifest(ctx)
//	})
//
// Both wrappers are unaware of caching. A memoized call wrapped in a retry
// is simply called again on each attempt.
package resilience
