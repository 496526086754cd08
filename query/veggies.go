package query

import (
	"context"

	"github.com/kbukum/streamkit/pipeline"
	"github.com/kbukum/streamkit/validation"
)

func (l *Library) checkVeggies() error {
	return validation.Check(SourceVeggies, l.veggies).
		NotNull().
		NotEmpty().
		NoNullElements().
		Each(validation.NotEmptyText, reasonEmptyText).
		Each(validation.NotBlankText, reasonBlankText).
		Err()
}

// ReverseSortedVeggies returns the veggies in case-insensitive descending
// order.
func (l *Library) ReverseSortedVeggies(ctx context.Context) ([]string, error) {
	return track(ctx, l, OpReverseSortedVeggies, SourceVeggies, length[string], func(ctx context.Context) ([]string, error) {
		if err := l.checkVeggies(); err != nil {
			return nil, err
		}
		return pipeline.Collect(ctx, sortFolded(present(l.veggies), true))
	})
}

// ReverseSortedVeggiesUpper is ReverseSortedVeggies with every veggie
// uppercased.
func (l *Library) ReverseSortedVeggiesUpper(ctx context.Context) ([]string, error) {
	return track(ctx, l, OpReverseSortedVeggiesUpper, SourceVeggies, length[string], func(ctx context.Context) ([]string, error) {
		if err := l.checkVeggies(); err != nil {
			return nil, err
		}
		return pipeline.Collect(ctx, upper(sortFolded(present(l.veggies), true)))
	})
}
