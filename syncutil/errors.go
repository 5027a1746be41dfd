package syncutil

import "errors"

var (
	// ErrNilFunc is returned when a helper is built around a nil function.
	ErrNilFunc = errors.New("syncutil: function is nil")

	// ErrInvalidInterval is returned for non-positive timer intervals.
	ErrInvalidInterval = errors.New("syncutil: interval must be positive")

	// ErrTimerStarted is returned by Start on a timer that already ran.
	ErrTimerStarted = errors.New("syncutil: timer already started")

	// ErrTimerFinished is returned by Restart once the timer fired or was stopped.
	ErrTimerFinished = errors.New("syncutil: timer has finished")

	// ErrNotConnected is returned by Disconnect for an unknown connection.
	ErrNotConnected = errors.New("syncutil: receiver not connected")
)
