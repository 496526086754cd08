// Package query answers a fixed catalogue of read-only queries over three
// in-memory source sequences: a fruit list, a veggie list and a seeded
// sample of random integers.
//
// Every query validates its source before transforming it and fails with an
// *errors.AppError whose code is NULL_SOURCE, EMPTY_COLLECTION or
// INVALID_DATA:
//
//	lib := query.New(query.WithSeed(42))
//	top, err := lib.TopTen(ctx)
//	if errors.Is(err, errors.ErrInvalidData) {
//	    // the sample contains null elements
//	}
//
// Sources are copied on construction and never written afterwards, so a
// Library is safe for concurrent use. Queries log through an injected
// logger (silent by default) and record a span named query.<operation>
// plus optional metrics.
package query
