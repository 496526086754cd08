// Package observability provides OpenTelemetry tracing and metrics for
// streamkit operations.
//
// Without initialisation the global providers are no-ops, so instrumented
// code costs almost nothing. InitTracer and InitMeter install SDK providers
// and attach OTLP HTTP exporters when an endpoint is configured.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("streamkit"))
//	defer tp.Shutdown(ctx)
//
// Per-operation tracking:
//
//	oc := observability.NewOperationContext("streamkit", "top_ten", metrics)
//	ctx, span := oc.StartSpanForOperation(ctx, "query.top_ten")
//	result, err := run(ctx)
//	oc.EndOperation(ctx, span, err, string(errors.CodeOf(err)))
//
// Health:
//
//	health := observability.CheckAll(ctx, "streamkit", version.Short(), library)
package observability
