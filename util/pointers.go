package util

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value pointed to by p, or the zero value if p is nil.
func Deref[T any](p *T) T {
	if p != nil {
		return *p
	}
	var zero T
	return zero
}

// Ptrs returns a slice of pointers to copies of values.
func Ptrs[T any](values []T) []*T {
	result := make([]*T, len(values))
	for i := range values {
		v := values[i]
		result[i] = &v
	}
	return result
}

// Compact dereferences every non-nil pointer and drops the nil ones.
func Compact[T any](ptrs []*T) []T {
	result := make([]T, 0, len(ptrs))
	for _, p := range ptrs {
		if p != nil {
			result = append(result, *p)
		}
	}
	return result
}

// HasNil reports whether any pointer in ptrs is nil.
func HasNil[T any](ptrs []*T) bool {
	for _, p := range ptrs {
		if p == nil {
			return true
		}
	}
	return false
}
