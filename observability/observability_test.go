package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter, tp
}

func spanAttr(span tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "" {
		t.Errorf("expected export disabled by default, got endpoint %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "" {
		t.Errorf("expected export disabled by default, got endpoint %q", cfg.Endpoint)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.RecordOperation(ctx, "svc", "top_ten", StatusOK, 50*time.Millisecond)
	metrics.RecordResultSize(ctx, "top_ten", 10)
	metrics.RecordError(ctx, "INVALID_DATA", "query")
}

func TestMetrics_Collected(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	metrics.RecordOperation(ctx, "svc", "average", StatusOK, time.Millisecond)
	metrics.RecordOperation(ctx, "svc", "average", StatusError, time.Millisecond)
	metrics.RecordError(ctx, "EMPTY_COLLECTION", "svc")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
			if m.Name != "operation.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected Sum[int64], got %T", m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			if total != 2 {
				t.Errorf("expected 2 operations, got %d", total)
			}
		}
	}
	for _, want := range []string{"operation.total", "operation.duration", "error.total"} {
		if !names[want] {
			t.Errorf("expected metric %q to be collected", want)
		}
	}
}

func TestNewOperationContext(t *testing.T) {
	oc := NewOperationContext("streamkit", "top_ten", nil)

	if oc.ServiceName != "streamkit" {
		t.Errorf("expected ServiceName 'streamkit', got %s", oc.ServiceName)
	}
	if oc.OperationName != "top_ten" {
		t.Errorf("expected OperationName 'top_ten', got %s", oc.OperationName)
	}
	if oc.RequestID == "" {
		t.Error("expected a generated RequestID")
	}
	if oc.StartTime.IsZero() {
		t.Error("expected StartTime to be set")
	}
	if other := NewOperationContext("streamkit", "top_ten", nil); other.RequestID == oc.RequestID {
		t.Error("expected distinct request IDs")
	}
}

func TestOperationContextFromContext(t *testing.T) {
	oc := NewOperationContext("svc", "op", nil)
	ctx := WithOperationContext(context.Background(), oc)

	if got := OperationContextFromContext(ctx); got != oc {
		t.Error("expected to retrieve the stored operation context")
	}
	if got := OperationContextFromContext(context.Background()); got != nil {
		t.Error("expected nil when not set")
	}
}

func TestOperationContext_Duration(t *testing.T) {
	oc := NewOperationContext("svc", "op", nil)
	oc.StartTime = time.Now().Add(-time.Second)
	if d := oc.Duration(); d < time.Second {
		t.Errorf("expected duration >= 1s, got %v", d)
	}
}

func TestOperationContext_Span(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus string
		wantCode   codes.Code
	}{
		{"success", nil, StatusOK, codes.Unset},
		{"failure", fmt.Errorf("empty"), StatusError, codes.Error},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exporter, tp := newRecordingTracer(t)

			oc := NewOperationContext("streamkit", "average", nil)
			oc.Tracer = tp.Tracer("test")

			ctx, span := oc.StartSpanForOperation(context.Background(), "query.average")
			if OperationContextFromContext(ctx) != oc {
				t.Error("expected operation context in span context")
			}
			oc.EndOperation(ctx, span, tc.err, "EMPTY_COLLECTION")

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			got := spans[0]
			if got.Name != "query.average" {
				t.Errorf("expected span name query.average, got %s", got.Name)
			}
			if got.Status.Code != tc.wantCode {
				t.Errorf("expected status code %v, got %v", tc.wantCode, got.Status.Code)
			}
			if v, ok := spanAttr(got, AttrStatus); !ok || v.AsString() != tc.wantStatus {
				t.Errorf("expected status attribute %q, got %v", tc.wantStatus, v.AsString())
			}
			if v, ok := spanAttr(got, AttrRequestID); !ok || v.AsString() != oc.RequestID {
				t.Errorf("expected request id attribute, got %v", v.AsString())
			}
			_, hasCode := spanAttr(got, AttrErrorCode)
			if hasCode != (tc.err != nil) {
				t.Errorf("error.code attribute present=%v, want %v", hasCode, tc.err != nil)
			}
		})
	}
}

func TestOperationContext_NilMetrics(t *testing.T) {
	oc := NewOperationContext("svc", "op", nil)
	ctx, span := oc.StartSpanForOperation(context.Background(), "test.op")
	// Should not panic with nil metrics.
	oc.EndOperation(ctx, span, fmt.Errorf("boom"), "INTERNAL_ERROR")
}

func TestOperationContext_WithMetrics(t *testing.T) {
	metrics, _ := NewMetrics(noop.NewMeterProvider().Meter("test"))
	oc := NewOperationContext("svc", "op", metrics)
	ctx, span := oc.StartSpanForOperation(context.Background(), "test.op")
	oc.EndOperation(ctx, span, nil, "")
}

type staticChecker Health

func (c staticChecker) CheckHealth(context.Context) Health { return Health(c) }

func TestNewServiceHealth(t *testing.T) {
	sh := NewServiceHealth("streamkit", "1.0.0")
	if sh.Status != HealthStatusUp {
		t.Errorf("expected status 'up', got %s", sh.Status)
	}
	if sh.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %s", sh.Version)
	}
}

func TestServiceHealth_AddComponent(t *testing.T) {
	tests := []struct {
		name     string
		statuses []HealthStatus
		want     HealthStatus
	}{
		{"all up", []HealthStatus{HealthStatusUp, HealthStatusUp}, HealthStatusUp},
		{"one degraded", []HealthStatus{HealthStatusUp, HealthStatusDegraded}, HealthStatusDegraded},
		{"one down", []HealthStatus{HealthStatusDegraded, HealthStatusDown}, HealthStatusDown},
		{"degraded after down", []HealthStatus{HealthStatusDown, HealthStatusDegraded}, HealthStatusDown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sh := NewServiceHealth("svc", "")
			for i, s := range tc.statuses {
				sh.AddComponent(Health{Name: fmt.Sprintf("c%d", i), Status: s})
			}
			if sh.Status != tc.want {
				t.Errorf("expected %s, got %s", tc.want, sh.Status)
			}
			if len(sh.Components) != len(tc.statuses) {
				t.Errorf("expected %d components, got %d", len(tc.statuses), len(sh.Components))
			}
		})
	}
}

func TestCheckAll(t *testing.T) {
	sh := CheckAll(context.Background(), "streamkit", "dev",
		staticChecker{Name: "fruits", Status: HealthStatusUp},
		staticChecker{Name: "integers", Status: HealthStatusDegraded, Message: "contains null elements"},
	)
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected degraded, got %s", sh.Status)
	}
	if len(sh.Components) != 2 || sh.Components[1].Name != "integers" {
		t.Errorf("unexpected components %+v", sh.Components)
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test-operation")
	defer span.End()

	if span == nil {
		t.Fatal("expected non-nil span")
	}
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected span in context")
	}
}

func TestSetSpanAttribute(t *testing.T) {
	exporter, tp := newRecordingTracer(t)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), "test-attrs")
	SetSpanAttribute(ctx, "string-key", "value")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "string-slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "int-slice-key", []int{1, 2})
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	SetSpanError(ctx, fmt.Errorf("test error"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if v, ok := spanAttr(spans[0], "int-key"); !ok || v.AsInt64() != 42 {
		t.Errorf("expected int-key=42, got %v", v)
	}
	if _, ok := spanAttr(spans[0], "unsupported-key"); ok {
		t.Error("unsupported attribute types should be ignored")
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected 1 error event, got %d", len(spans[0].Events))
	}
}

func TestSetSpanAttributeNoSpan(t *testing.T) {
	// Background context has no recording span.
	SetSpanAttribute(context.Background(), "key", "value")
	SetSpanError(context.Background(), fmt.Errorf("no span error"))
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := samplerFor(tc.rate).Description(); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestInitTracer_NoExporter(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	tp, err := InitTracer(context.Background(), DefaultTracerConfig("test-service"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tp.Shutdown(context.Background())
}

func TestInitMeter_ManualReader(t *testing.T) {
	prev := otel.GetMeterProvider()
	defer otel.SetMeterProvider(prev)

	reader := sdkmetric.NewManualReader()
	mp, err := InitMeter(context.Background(), DefaultMeterConfig("test-service"), reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	metrics.RecordResultSize(context.Background(), "sorted_fruits", 3)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(rm.ScopeMetrics) == 0 {
		t.Error("expected metrics recorded through the global provider")
	}
}
