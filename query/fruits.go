package query

import (
	"context"
	"strings"

	"github.com/kbukum/streamkit/pipeline"
	"github.com/kbukum/streamkit/validation"
)

const (
	reasonEmptyText = "contains empty strings"
	reasonBlankText = "contains whitespace-only strings"
	reasonComma     = "names cannot contain commas"
	fruitSeparator  = ", "
)

// SortedFruits returns the non-null fruits in ascending byte-wise order.
func (l *Library) SortedFruits(ctx context.Context) ([]string, error) {
	return track(ctx, l, OpSortedFruits, SourceFruits, length[string], func(ctx context.Context) ([]string, error) {
		if err := validation.Check(SourceFruits, l.fruits).NotNull().NotEmpty().Err(); err != nil {
			return nil, err
		}
		return pipeline.Collect(ctx, pipeline.Sorted(present(l.fruits), pipeline.Ascending[string]))
	})
}

// SortedFruitsFiltered returns the non-null fruits not starting with "A",
// in ascending order. The result may be empty.
func (l *Library) SortedFruitsFiltered(ctx context.Context) ([]string, error) {
	return track(ctx, l, OpSortedFruitsFiltered, SourceFruits, length[string], func(ctx context.Context) ([]string, error) {
		return sortedWithFilter(ctx, SourceFruits, l.fruits,
			func(f string) bool { return !strings.HasPrefix(f, "A") },
			pipeline.Ascending[string],
		)
	})
}

// SortedFruitsFirstTwo returns the first two fruits in case-insensitive
// ascending order. Null and empty fruits are rejected.
func (l *Library) SortedFruitsFirstTwo(ctx context.Context) ([]string, error) {
	return track(ctx, l, OpSortedFruitsFirstTwo, SourceFruits, length[string], func(ctx context.Context) ([]string, error) {
		err := validation.Check(SourceFruits, l.fruits).
			NotNull().
			NotEmpty().
			NoNullElements().
			Each(validation.NotEmptyText, reasonEmptyText).
			Err()
		if err != nil {
			return nil, err
		}
		return pipeline.Collect(ctx, pipeline.Limit(sortFolded(present(l.fruits), false), 2))
	})
}

// CommaSeparatedFruits joins the fruits, sorted case-sensitively, with ", ".
// Null, empty, whitespace-only and comma-containing fruits are rejected.
func (l *Library) CommaSeparatedFruits(ctx context.Context) (string, error) {
	return track(ctx, l, OpCommaSeparatedFruits, SourceFruits, one[string], func(ctx context.Context) (string, error) {
		err := validation.Check(SourceFruits, l.fruits).
			NotNull().
			NotEmpty().
			NoNullElements().
			Each(validation.NotEmptyText, reasonEmptyText).
			Each(validation.NotBlankText, reasonBlankText).
			Each(validation.Excludes(","), reasonComma).
			Err()
		if err != nil {
			return "", err
		}
		return pipeline.Join(ctx, pipeline.Sorted(present(l.fruits), pipeline.Ascending[string]), fruitSeparator)
	})
}
