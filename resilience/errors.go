package resilience

import (
	"errors"
	"fmt"
)

// Sentinel errors for resilience operations.
var (
	// ErrTimeout is returned when an operation does not finish in time.
	ErrTimeout = errors.New("resilience: operation timed out")

	// ErrInvalidConfig is returned by constructors given out-of-range settings.
	ErrInvalidConfig = errors.New("resilience: invalid configuration")
)

// PanicError carries a panic recovered from an operation run on another
// goroutine. Timeout re-panics with it in the calling goroutine.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("resilience: operation panicked: %v", e.Value)
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
