package syncutil

import (
	"context"
	"slices"
	"sync"

	"github.com/jonwraymond/utilkit/observe"
	"github.com/jonwraymond/utilkit/resilience"
)

// ConnID identifies a connected receiver.
type ConnID uint64

// Signal delivers values to connected receivers in connection order.
//
// Emit works on a snapshot, so receivers may connect or disconnect from
// inside a callback; the change applies from the next Emit.
type Signal[T any] struct {
	mu        sync.Mutex
	next      ConnID
	receivers []receiver[T]
	onError   func(error)
}

type receiver[T any] struct {
	id ConnID
	fn func(T)
}

// SignalOption configures a Signal.
type SignalOption func(*signalOptions)

type signalOptions struct {
	onError func(error)
	logger  observe.Logger
}

// OnError sets the hook that receives a *resilience.PanicError for every
// panicking receiver.
func OnError(fn func(error)) SignalOption {
	return func(o *signalOptions) { o.onError = fn }
}

// WithSignalLogger sets the logger used when no OnError hook is given.
func WithSignalLogger(l observe.Logger) SignalOption {
	return func(o *signalOptions) { o.logger = l }
}

// NewSignal creates a Signal. Without options, receiver panics are logged
// as JSON to stderr.
func NewSignal[T any](opts ...SignalOption) *Signal[T] {
	o := signalOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.onError == nil {
		logger := o.logger
		if logger == nil {
			logger = observe.NewLogger("warn")
		}
		logger = logger.With(observe.OpMeta{Component: "syncutil", Name: "signal"})
		o.onError = func(err error) {
			logger.Error(context.Background(), "receiver panicked", observe.F("error", err))
		}
	}
	return &Signal[T]{onError: o.onError}
}

// Connect registers fn and returns its connection ID. A nil fn is ignored
// and yields the zero ID.
func (s *Signal[T]) Connect(fn func(T)) ConnID {
	if fn == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.receivers = append(s.receivers, receiver[T]{id: s.next, fn: fn})
	return s.next
}

// Disconnect removes the receiver registered under id.
func (s *Signal[T]) Disconnect(id ConnID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.receivers, func(r receiver[T]) bool { return r.id == id })
	if i < 0 {
		return ErrNotConnected
	}
	s.receivers = slices.Delete(s.receivers, i, i+1)
	return nil
}

// Len returns the number of connected receivers.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.receivers)
}

// Emit calls every receiver with v and returns how many were called.
func (s *Signal[T]) Emit(v T) int {
	s.mu.Lock()
	snapshot := slices.Clone(s.receivers)
	s.mu.Unlock()

	for _, r := range snapshot {
		s.deliver(r.fn, v)
	}
	return len(snapshot)
}

func (s *Signal[T]) deliver(fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil {
			s.onError(&resilience.PanicError{Value: r})
		}
	}()
	fn(v)
}
