package pipeline

import (
	"cmp"
	"context"
	"slices"
)

// Ascending orders values by their natural ordering.
func Ascending[T cmp.Ordered](a, b T) int { return cmp.Compare(a, b) }

// Descending orders values by the reverse of their natural ordering.
func Descending[T cmp.Ordered](a, b T) int { return cmp.Compare(b, a) }

// Reverse returns a comparison function that inverts less.
func Reverse[T any](compare func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return compare(b, a) }
}

// Sorted yields the upstream values in the order defined by compare.
// The sort is stable: values comparing equal keep their upstream order.
// Sorted is a barrier; the whole upstream is drained on the first pull.
func Sorted[T any](p *Pipeline[T], compare func(a, b T) int) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &sortedIter[T]{source: p.create(ctx), compare: compare}
		},
	}
}

// Distinct drops values that were already yielded, keeping first occurrences.
func Distinct[T comparable](p *Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &distinctIter[T]{source: p.create(ctx), seen: make(map[T]struct{})}
		},
	}
}

// Limit yields at most n values. Upstream is not pulled past the nth value.
func Limit[T any](p *Pipeline[T], n int) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &limitIter[T]{source: p.create(ctx), remaining: n}
		},
	}
}

// --- Iterator implementations ---

type sortedIter[T any] struct {
	source  Iterator[T]
	compare func(a, b T) int
	items   []T
	index   int
	loaded  bool
}

func (it *sortedIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if !it.loaded {
		for {
			val, ok, err := it.source.Next(ctx)
			if err != nil {
				var zero T
				return zero, false, err
			}
			if !ok {
				break
			}
			it.items = append(it.items, val)
		}
		slices.SortStableFunc(it.items, it.compare)
		it.loaded = true
	}
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sortedIter[T]) Close() error { return it.source.Close() }

type distinctIter[T comparable] struct {
	source Iterator[T]
	seen   map[T]struct{}
}

func (it *distinctIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if _, dup := it.seen[val]; dup {
			continue
		}
		it.seen[val] = struct{}{}
		return val, true, nil
	}
}

func (it *distinctIter[T]) Close() error { return it.source.Close() }

type limitIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *limitIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.remaining <= 0 {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, false, err
	}
	it.remaining--
	return val, true, nil
}

func (it *limitIter[T]) Close() error { return it.source.Close() }
