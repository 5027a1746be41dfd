package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/utilkit/cache"
)

// Cache instrument names.
const (
	MetricCacheHits   = "utilkit.cache.hits"
	MetricCacheMisses = "utilkit.cache.misses"
	MetricCacheSize   = "utilkit.cache.size"
)

// RegisterCacheMetrics exports src's statistics as observable instruments
// tagged with cache.name. Call Unregister on the result to stop reporting.
func RegisterCacheMetrics(meter metric.Meter, name string, src cache.Memoizer) (metric.Registration, error) {
	if src == nil {
		return nil, ErrNilCache
	}

	hits, err := meter.Int64ObservableCounter(
		MetricCacheHits,
		metric.WithDescription("Cache lookups served from the store"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}
	misses, err := meter.Int64ObservableCounter(
		MetricCacheMisses,
		metric.WithDescription("Cache lookups that invoked the loader"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}
	size, err := meter.Int64ObservableGauge(
		MetricCacheSize,
		metric.WithDescription("Entries currently stored"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	opt := metric.WithAttributes(attribute.String("cache.name", name))
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		info := src.Info()
		o.ObserveInt64(hits, info.Hits, opt)
		o.ObserveInt64(misses, info.Misses, opt)
		o.ObserveInt64(size, int64(info.CurrSize), opt)
		return nil
	}, hits, misses, size)
}
