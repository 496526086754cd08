package query

import (
	"context"

	"github.com/kbukum/streamkit/pipeline"
	"github.com/kbukum/streamkit/validation"
)

// SortedWithFilter validates src as present and non-empty, drops null
// elements, keeps those for which keep returns true and sorts the rest
// stably by compare. A nil keep keeps every element. The result may be
// empty.
func SortedWithFilter[T any](ctx context.Context, src Source[T], keep func(T) bool, compare func(a, b T) int) ([]T, error) {
	return sortedWithFilter(ctx, "input", src, keep, compare)
}

func sortedWithFilter[T any](ctx context.Context, name string, src Source[T], keep func(T) bool, compare func(a, b T) int) ([]T, error) {
	if err := validation.Check(name, src).NotNull().NotEmpty().Err(); err != nil {
		return nil, err
	}
	values := present(src)
	if keep != nil {
		values = pipeline.Filter(values, keep)
	}
	return pipeline.Collect(ctx, pipeline.Sorted(values, compare))
}

// SafeAverage returns the mean of the non-null elements of src. ok is false
// when src holds no such element.
func SafeAverage(src Source[int]) (avg float64, ok bool) {
	type acc struct {
		sum   float64
		count int
	}
	totals, err := pipeline.Collect(context.Background(),
		pipeline.Reduce(present(src), acc{}, func(a acc, v int) acc {
			return acc{sum: a.sum + float64(v), count: a.count + 1}
		}),
	)
	if err != nil || len(totals) == 0 || totals[0].count == 0 {
		return 0, false
	}
	return totals[0].sum / float64(totals[0].count), true
}
