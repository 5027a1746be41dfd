package observe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newManualMetrics(t *testing.T) (Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader sdkmetric.Reader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return rm
}

func TestMetrics_TotalCounterIncrements(t *testing.T) {
	m, reader := newManualMetrics(t)
	m.RecordCall(context.Background(), OpMeta{Component: "cache", Name: "call"}, 100*time.Millisecond, nil)

	found := findMetric(collect(t, reader), MetricOpTotal)
	if found == nil {
		t.Fatalf("%s metric not found", MetricOpTotal)
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 1 {
		t.Errorf("data points = %+v, want one point of 1", sum.DataPoints)
	}
}

func TestMetrics_ErrorCounter(t *testing.T) {
	m, reader := newManualMetrics(t)
	meta := OpMeta{Name: "zip"}
	m.RecordCall(context.Background(), meta, time.Millisecond, nil)
	m.RecordCall(context.Background(), meta, time.Millisecond, errors.New("boom"))
	m.RecordCall(context.Background(), meta, time.Millisecond, errors.New("boom"))

	found := findMetric(collect(t, reader), MetricOpErrors)
	if found == nil {
		t.Fatalf("%s metric not found", MetricOpErrors)
	}
	sum := found.Data.(metricdata.Sum[int64])
	if sum.DataPoints[0].Value != 2 {
		t.Errorf("errors = %d, want 2", sum.DataPoints[0].Value)
	}
}

func TestMetrics_NoErrorsOnSuccess(t *testing.T) {
	m, reader := newManualMetrics(t)
	m.RecordCall(context.Background(), OpMeta{Name: "ok"}, time.Millisecond, nil)

	found := findMetric(collect(t, reader), MetricOpErrors)
	if found == nil {
		return
	}
	for _, dp := range found.Data.(metricdata.Sum[int64]).DataPoints {
		if dp.Value != 0 {
			t.Errorf("errors = %d, want 0", dp.Value)
		}
	}
}

func TestMetrics_DurationHistogramRecords(t *testing.T) {
	m, reader := newManualMetrics(t)
	m.RecordCall(context.Background(), OpMeta{Name: "compare"}, 1500*time.Microsecond, nil)

	found := findMetric(collect(t, reader), MetricOpDuration)
	if found == nil {
		t.Fatalf("%s metric not found", MetricOpDuration)
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	dp := hist.DataPoints[0]
	if dp.Count != 1 || dp.Sum != 1.5 {
		t.Errorf("count = %d sum = %v, want 1 and 1.5", dp.Count, dp.Sum)
	}
}

func TestMetrics_LabelsApplied(t *testing.T) {
	m, reader := newManualMetrics(t)
	m.RecordCall(context.Background(), OpMeta{Component: "cli", Name: "crc"}, time.Millisecond, nil)

	found := findMetric(collect(t, reader), MetricOpTotal)
	attrs := found.Data.(metricdata.Sum[int64]).DataPoints[0].Attributes
	want := map[attribute.Key]string{"op.id": "cli.crc", "op.name": "crc", "op.component": "cli"}
	for k, v := range want {
		got, ok := attrs.Value(k)
		if !ok || got.AsString() != v {
			t.Errorf("%s = %q, want %q", k, got.AsString(), v)
		}
	}
}

func TestMetrics_ConcurrentRecording(t *testing.T) {
	m, reader := newManualMetrics(t)
	const numGoroutines = 50

	var wg sync.WaitGroup
	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordCall(context.Background(), OpMeta{Name: "concurrent"}, time.Millisecond, nil)
		}()
	}
	wg.Wait()

	sum := findMetric(collect(t, reader), MetricOpTotal).Data.(metricdata.Sum[int64])
	if sum.DataPoints[0].Value != numGoroutines {
		t.Errorf("expected count %d, got %d", numGoroutines, sum.DataPoints[0].Value)
	}
}

// findMetric searches for a metric by name in ResourceMetrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}
