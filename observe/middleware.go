package observe

import (
	"context"
	"time"
)

// Func is the operation signature Middleware wraps.
type Func func(ctx context.Context) error

// Middleware wraps operations with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap returns a Func safe for concurrent use if fn is.
//   - Context: the span context is passed to fn.
//   - Errors: errors from fn are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// Wrap instruments fn as the operation described by meta.
func (m *Middleware) Wrap(meta OpMeta, fn Func) Func {
	log := m.logger.With(meta)
	return func(ctx context.Context) error {
		ctx, span := m.tracer.StartSpan(ctx, meta)
		start := time.Now()

		err := fn(ctx)

		duration := time.Since(start)
		m.tracer.EndSpan(span, err)
		m.metrics.RecordCall(ctx, meta, duration, err)

		fields := []Field{F("duration_ms", float64(duration)/float64(time.Millisecond))}
		if err != nil {
			log.Error(ctx, "operation failed", append(fields, F("error", err))...)
		} else {
			log.Debug(ctx, "operation completed", fields...)
		}
		return err
	}
}

// Run wraps fn and calls it once.
func (m *Middleware) Run(ctx context.Context, meta OpMeta, fn Func) error {
	return m.Wrap(meta, fn)(ctx)
}

// MiddlewareFromObserver builds a Middleware from an Observer's primitives.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
