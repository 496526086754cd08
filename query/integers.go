package query

import (
	"context"

	"github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/pipeline"
	"github.com/kbukum/streamkit/validation"
)

const topN = 10

func isOdd(n int) bool { return n%2 != 0 }

// TopTen returns the ten largest integers, duplicates included, in
// descending order. Fewer are returned when the sample is smaller.
func (l *Library) TopTen(ctx context.Context) ([]int, error) {
	return track(ctx, l, OpTopTen, SourceIntegers, length[int], func(ctx context.Context) ([]int, error) {
		err := validation.Check(SourceIntegers, l.integers).NotNull().NotEmpty().NoNullElements().Err()
		if err != nil {
			return nil, err
		}
		return pipeline.Collect(ctx, pipeline.Limit(pipeline.Sorted(present(l.integers), pipeline.Descending[int]), topN))
	})
}

// TopTenUnique returns up to ten distinct non-null integers in descending
// order.
func (l *Library) TopTenUnique(ctx context.Context) ([]int, error) {
	return track(ctx, l, OpTopTenUnique, SourceIntegers, length[int], func(ctx context.Context) ([]int, error) {
		return l.topDistinct(ctx, nil, "has no valid data after filtering")
	})
}

// TopTenUniqueOdd returns up to ten distinct odd integers in descending
// order. Negative odd values count as odd.
func (l *Library) TopTenUniqueOdd(ctx context.Context) ([]int, error) {
	return track(ctx, l, OpTopTenUniqueOdd, SourceIntegers, length[int], func(ctx context.Context) ([]int, error) {
		return l.topDistinct(ctx, isOdd, "has no odd values")
	})
}

func (l *Library) topDistinct(ctx context.Context, keep func(int) bool, emptyReason string) ([]int, error) {
	if err := validation.Check(SourceIntegers, l.integers).NotNull().NotEmpty().Err(); err != nil {
		return nil, err
	}

	values := present(l.integers)
	if keep != nil {
		values = pipeline.Filter(values, keep)
	}
	result, err := pipeline.Collect(ctx, pipeline.Limit(pipeline.Sorted(pipeline.Distinct(values), pipeline.Descending[int]), topN))
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, errors.InvalidData(SourceIntegers, emptyReason)
	}
	return result, nil
}

// Average returns the arithmetic mean of the non-null integers.
func (l *Library) Average(ctx context.Context) (float64, error) {
	return track(ctx, l, OpAverage, SourceIntegers, one[float64], func(context.Context) (float64, error) {
		if err := validation.Check(SourceIntegers, l.integers).NotNull().NotEmpty().Err(); err != nil {
			return 0, err
		}
		avg, ok := SafeAverage(l.integers)
		if !ok {
			return 0, errors.InvalidData(SourceIntegers, "has no valid data to average")
		}
		return avg, nil
	})
}
