package query

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
)

// Operation names, also used as span suffixes and metric attributes.
const (
	OpSortedFruits              = "sorted_fruits"
	OpSortedFruitsFiltered      = "sorted_fruits_filtered"
	OpSortedFruitsFirstTwo      = "sorted_fruits_first_two"
	OpCommaSeparatedFruits      = "comma_separated_fruits"
	OpReverseSortedVeggies      = "reverse_sorted_veggies"
	OpReverseSortedVeggiesUpper = "reverse_sorted_veggies_upper"
	OpTopTen                    = "top_ten"
	OpTopTenUnique              = "top_ten_unique"
	OpTopTenUniqueOdd           = "top_ten_unique_odd"
	OpAverage                   = "average"
)

const serviceName = "streamkit"

// track runs fn inside a query.<op> span, then logs and records the outcome.
// size reports the number of result elements on success.
func track[R any](ctx context.Context, l *Library, op, source string, size func(R) int, fn func(context.Context) (R, error)) (R, error) {
	oc := observability.NewOperationContext(serviceName, op, l.metrics)
	oc.Tracer = l.tracer

	ctx, span := oc.StartSpanForOperation(ctx, "query."+op)
	span.SetAttributes(attribute.String(observability.AttrSource, source))

	logCtx := logger.ContextWithRequestID(ctx, oc.RequestID)
	if sc := span.SpanContext(); sc.IsValid() {
		logCtx = logger.ContextWithTrace(logCtx, sc.TraceID().String(), sc.SpanID().String())
	}
	log := l.log.WithContext(logCtx)

	result, err := fn(ctx)
	code := errors.CodeOf(err)
	fields := logger.Fields(logger.FieldOperation, op, logger.FieldSource, source)

	if err != nil {
		fields[logger.FieldErrorCode] = string(code)
		log.Warn("query rejected", logger.MergeWithError(fields, err))
	} else {
		n := size(result)
		span.SetAttributes(attribute.Int(observability.AttrResultCount, n))
		if l.metrics != nil {
			l.metrics.RecordResultSize(ctx, op, n)
		}
		fields[logger.FieldResultCount] = n
		log.Debug("query completed", logger.MergeWithDuration(fields, time.Since(oc.StartTime)))
	}

	oc.EndOperation(ctx, span, err, string(code))
	return result, err
}

func length[T any](s []T) int { return len(s) }

func one[T any](T) int { return 1 }
