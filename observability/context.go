package observability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// OperationContext holds observability context for a tracked operation.
type OperationContext struct {
	ServiceName   string
	OperationName string
	RequestID     string
	StartTime     time.Time
	Metrics       *Metrics
	// Tracer overrides the global tracer when set.
	Tracer trace.Tracer
}

// NewOperationContext creates an operation context with a fresh request ID.
// If metrics is nil, metric recording is silently skipped.
func NewOperationContext(serviceName, operationName string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		RequestID:     uuid.NewString(),
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

// operationContextKey is the context key for OperationContext.
type operationContextKey struct{}

// WithOperationContext stores an OperationContext in the context.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, operationContextKey{}, oc)
}

// OperationContextFromContext retrieves the OperationContext from context, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	if oc, ok := ctx.Value(operationContextKey{}).(*OperationContext); ok {
		return oc
	}
	return nil
}

// StartSpanForOperation starts a traced span tagged with the operation identity
// and stores the operation context in the returned context.
func (oc *OperationContext) StartSpanForOperation(ctx context.Context, spanName string) (context.Context, trace.Span) {
	var span trace.Span
	if oc.Tracer != nil {
		ctx, span = oc.Tracer.Start(ctx, spanName)
	} else {
		ctx, span = StartSpan(ctx, spanName)
	}
	span.SetAttributes(
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrOperationName, oc.OperationName),
		attribute.String(AttrRequestID, oc.RequestID),
	)
	return WithOperationContext(ctx, oc), span
}

// EndOperation ends the span and records operation metrics. errCode is the
// machine-readable kind of err and is ignored when err is nil.
func (oc *OperationContext) EndOperation(ctx context.Context, span trace.Span, err error, errCode string) {
	duration := time.Since(oc.StartTime)
	status := StatusOK

	if err != nil {
		status = StatusError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String(AttrErrorMessage, err.Error()),
			attribute.String(AttrErrorCode, errCode),
		)
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordOperation(ctx, oc.ServiceName, oc.OperationName, status, duration)
		if err != nil {
			oc.Metrics.RecordError(ctx, errCode, oc.ServiceName)
		}
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
