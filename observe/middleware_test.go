package observe

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type fixture struct {
	mw     *Middleware
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	logs   *bytes.Buffer
}

func newFixture(t *testing.T, level string) fixture {
	t.Helper()
	tracer, rec := newRecordingTracer()
	metrics, reader := newManualMetrics(t)
	logs := &bytes.Buffer{}
	return fixture{
		mw:     NewMiddleware(tracer, metrics, NewLoggerWithWriter(level, logs)),
		spans:  rec,
		reader: reader,
		logs:   logs,
	}
}

func TestMiddleware_SuccessPath(t *testing.T) {
	f := newFixture(t, "debug")
	meta := OpMeta{Component: "cli", Name: "compare"}

	called := false
	err := f.mw.Wrap(meta, func(context.Context) error {
		called = true
		return nil
	})(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("wrapped func not called")
	}

	spans := f.spans.Ended()
	if len(spans) != 1 || spans[0].Name() != "utilkit.cli.compare" {
		t.Fatalf("spans = %v", spans)
	}
	if spans[0].Status().Code != codes.Ok {
		t.Errorf("status = %v", spans[0].Status())
	}

	if findMetric(collect(t, f.reader), MetricOpTotal) == nil {
		t.Errorf("%s not recorded", MetricOpTotal)
	}

	entries := decodeLines(t, f.logs)
	if len(entries) != 1 || entries[0]["msg"] != "operation completed" || entries[0]["level"] != "debug" {
		t.Errorf("log entries = %v", entries)
	}
}

func TestMiddleware_ErrorPath(t *testing.T) {
	f := newFixture(t, "info")
	boom := errors.New("boom")

	err := f.mw.Run(context.Background(), OpMeta{Name: "zip"}, func(context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if got := f.spans.Ended()[0].Status().Code; got != codes.Error {
		t.Errorf("status = %v, want Error", got)
	}

	errs := findMetric(collect(t, f.reader), MetricOpErrors)
	if errs == nil || errs.Data.(metricdata.Sum[int64]).DataPoints[0].Value != 1 {
		t.Errorf("%s = %v, want 1", MetricOpErrors, errs)
	}

	entries := decodeLines(t, f.logs)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["error"] != "boom" || entries[0]["op.id"] != "zip" {
		t.Errorf("entry = %v", entries[0])
	}
}

func TestMiddleware_PropagatesSpanContext(t *testing.T) {
	f := newFixture(t, "error")

	var inner trace.SpanContext
	_ = f.mw.Run(context.Background(), OpMeta{Name: "ctx"}, func(ctx context.Context) error {
		inner = trace.SpanContextFromContext(ctx)
		return nil
	})

	if !inner.IsValid() {
		t.Fatal("wrapped func did not receive a span context")
	}
	if inner.SpanID() != f.spans.Ended()[0].SpanContext().SpanID() {
		t.Error("span context does not match recorded span")
	}
}

func TestMiddleware_MeasuresDuration(t *testing.T) {
	f := newFixture(t, "error")

	_ = f.mw.Run(context.Background(), OpMeta{Name: "slow"}, func(context.Context) error {
		time.Sleep(20 * time.Millisecond)
		return nil
	})

	hist := findMetric(collect(t, f.reader), MetricOpDuration).Data.(metricdata.Histogram[float64])
	if got := hist.DataPoints[0].Sum; got < 20 {
		t.Errorf("duration = %vms, want >= 20", got)
	}
}

func TestMiddleware_NilComponentsAreNoops(t *testing.T) {
	mw := NewMiddleware(nil, nil, nil)
	err := mw.Run(context.Background(), OpMeta{Name: "noop"}, func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddlewareFromObserver(t *testing.T) {
	if _, err := MiddlewareFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("err = %v, want ErrNilObserver", err)
	}

	obs, err := NewObserver(context.Background(), Config{ServiceName: "utilkit-test"})
	if err != nil {
		t.Fatal(err)
	}
	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver() error = %v", err)
	}
	if err := mw.Run(context.Background(), OpMeta{Name: "probe"}, func(context.Context) error { return nil }); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
