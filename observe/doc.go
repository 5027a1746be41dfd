// Package observe instruments utilkit operations with OpenTelemetry.
//
// An Observer owns the tracer and meter providers and a JSON Logger.
// Middleware wraps a func(context.Context) error so each call produces a
// span named utilkit.<component>.<name>, increments the utilkit.op.*
// instruments, and logs failures. RegisterCacheMetrics exposes the
// hit, miss, and size statistics of any cache.Memoizer.
//
// Exporters are chosen by name (stdout, otlp, jaeger, prometheus, none)
// through the exporters subpackage.
package observe
