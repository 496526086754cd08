package pipeline

import (
	"context"
	"strings"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Pipeline represents a lazy, pull-based data pipeline.
// No work happens until values are pulled by a terminal.
type Pipeline[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// --- Constructors ---

// FromSlice creates a pipeline from a slice of values. The slice is read, never written.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// --- Terminals ---

// Collect runs the pipeline and returns all values as a slice.
// The slice is never nil, so an exhausted pipeline yields an empty result.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	iter := p.create(ctx)
	defer iter.Close()
	result := make([]T, 0)
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// Join pulls all strings and concatenates them with sep.
func Join(ctx context.Context, p *Pipeline[string], sep string) (string, error) {
	iter := p.create(ctx)
	defer iter.Close()
	var b strings.Builder
	for first := true; ; first = false {
		s, ok, err := iter.Next(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			return b.String(), nil
		}
		if !first {
			b.WriteString(sep)
		}
		b.WriteString(s)
	}
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
