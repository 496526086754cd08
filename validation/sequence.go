package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/util"
)

// Sequence validates a nullable source sequence. A nil slice is an absent
// source and a nil element is a null element. Checks run in call order and
// stop at the first failure.
type Sequence[T any] struct {
	name  string
	items []*T
	err   *errors.AppError
}

// Check starts validating items, naming the source in error messages.
func Check[T any](name string, items []*T) *Sequence[T] {
	return &Sequence[T]{name: name, items: items}
}

// NotNull fails with NULL_SOURCE when the source is absent.
func (s *Sequence[T]) NotNull() *Sequence[T] {
	if s.err == nil && s.items == nil {
		s.err = errors.NullSource(s.name)
	}
	return s
}

// NotEmpty fails with EMPTY_COLLECTION when the source has no elements.
func (s *Sequence[T]) NotEmpty() *Sequence[T] {
	if s.err == nil && len(s.items) == 0 {
		s.err = errors.EmptyCollection(s.name)
	}
	return s
}

// NoNullElements fails with INVALID_DATA when any element is null.
func (s *Sequence[T]) NoNullElements() *Sequence[T] {
	if s.err == nil && util.HasNil(s.items) {
		s.err = errors.InvalidData(s.name, "contains null elements")
	}
	return s
}

// Each fails with INVALID_DATA at the first non-null element for which ok
// returns false. The message carries reason and the offending element.
func (s *Sequence[T]) Each(ok func(T) bool, reason string) *Sequence[T] {
	if s.err != nil {
		return s
	}
	for i, p := range s.items {
		if p == nil || ok(*p) {
			continue
		}
		s.err = errors.InvalidData(s.name, fmt.Sprintf("%s: %#v", reason, *p)).
			WithDetail("index", i)
		return s
	}
	return s
}

// Err returns the first failure, or nil.
func (s *Sequence[T]) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// --- Text predicates for Each ---

// NotEmptyText reports whether s has at least one character.
func NotEmptyText(s string) bool { return s != "" }

// NotBlankText reports whether s has a non-whitespace character.
func NotBlankText(s string) bool { return !util.IsBlank(s) }

// Excludes returns a predicate that rejects text containing sep.
func Excludes(sep string) func(string) bool {
	return func(s string) bool { return !strings.Contains(s, sep) }
}
