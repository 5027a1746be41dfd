package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/utilkit/resilience"
)

func ExampleNewRetry() {
	retry, err := resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		Multiplier:   2,
	})
	if err != nil {
		fmt.Println("config error:", err)
		return
	}

	attempts := 0
	err = retry.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	fmt.Println("attempts:", attempts)
	fmt.Println("error:", err)
	// Output:
	// attempts: 3
	// error: <nil>
}

func ExampleCall() {
	_, err := resilience.Call(context.Background(), 10*time.Millisecond, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	fmt.Println(errors.Is(err, resilience.ErrTimeout))
	// Output:
	// true
}

func ExampleNewExecutor() {
	retry, _ := resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 2})
	executor := resilience.NewExecutor(
		resilience.WithRetry(retry),
		resilience.WithTimeout(time.Second),
	)

	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("first call fails")
		}
		return nil
	})
	fmt.Println(calls, err)
	// Output:
	// 2 <nil>
}
