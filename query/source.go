package query

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/kbukum/streamkit/pipeline"
	"github.com/kbukum/streamkit/util"
)

// Source is a nullable sequence. A nil Source is absent, a nil element is a
// null element, and a non-nil zero-length Source is empty.
type Source[T any] []*T

// Texts builds a text source without null elements.
func Texts(values ...string) Source[string] {
	return Source[string](util.Ptrs(values))
}

// Ints builds an integer source without null elements.
func Ints(values ...int) Source[int] {
	return Source[int](util.Ptrs(values))
}

// Null returns a null element.
func Null[T any]() *T { return nil }

// Len returns the number of elements, null ones included.
func (s Source[T]) Len() int { return len(s) }

// Values returns the non-null elements in order.
func (s Source[T]) Values() []T { return util.Compact([]*T(s)) }

// Digest returns a hex xxhash of the elements in order. Null elements hash
// differently from any value, so two sources share a digest only when they
// hold the same elements in the same positions.
func (s Source[T]) Digest() string {
	d := xxhash.New()
	for _, p := range s {
		if p == nil {
			_, _ = d.WriteString("\x00")
		} else {
			_, _ = fmt.Fprintf(d, "\x01%v", *p)
		}
		_, _ = d.WriteString("\x1f")
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// clone deep-copies s so that neither slice nor elements are shared.
func (s Source[T]) clone() Source[T] {
	if s == nil {
		return nil
	}
	out := make(Source[T], len(s))
	for i, p := range s {
		if p != nil {
			out[i] = util.Ptr(*p)
		}
	}
	return out
}

// present streams the non-null elements of s.
func present[T any](s Source[T]) *pipeline.Pipeline[T] {
	nonNull := pipeline.Filter(pipeline.FromSlice([]*T(s)), func(p *T) bool { return p != nil })
	return pipeline.Map(nonNull, func(_ context.Context, p *T) (T, error) { return *p, nil })
}
