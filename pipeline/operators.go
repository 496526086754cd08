package pipeline

import "context"

// Map transforms each value using fn.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			return &mapIter[I, O]{source: p.create(ctx), fn: fn}
		},
	}
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](p *Pipeline[T], fn func(T) bool) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &filterIter[T]{source: p.create(ctx), fn: fn}
		},
	}
}

// Reduce accumulates all values into a single result.
// The pipeline yields exactly one value: the final accumulator.
func Reduce[T, R any](p *Pipeline[T], init R, fn func(R, T) R) *Pipeline[R] {
	return &Pipeline[R]{
		create: func(ctx context.Context) Iterator[R] {
			return &reduceIter[T, R]{source: p.create(ctx), acc: init, fn: fn}
		},
	}
}

// --- Iterator implementations ---

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if it.fn(val) {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type reduceIter[T, R any] struct {
	source Iterator[T]
	acc    R
	fn     func(R, T) R
	done   bool
}

func (it *reduceIter[T, R]) Next(ctx context.Context) (result R, ok bool, err error) {
	if it.done {
		var zero R
		return zero, false, nil
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			var zero R
			return zero, false, err
		}
		if !ok {
			it.done = true
			return it.acc, true, nil
		}
		it.acc = it.fn(it.acc, val)
	}
}

func (it *reduceIter[T, R]) Close() error { return it.source.Close() }
