// Package pipeline provides composable, pull-based collection pipelines.
//
// Pipelines are lazy: no work happens until values are pulled via Collect
// or Join. Each stage pulls from the previous stage on
// demand, so a Limit stage stops pulling once it has enough values.
//
// # Operators
//
// Streaming:
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Distinct: drop values already seen
//   - Limit: bound the number of values
//
// Barriers (drain upstream on first pull):
//
//   - Sorted: stable sort by a comparison function
//   - Reduce: accumulate all values into one result
//
// # Usage
//
//	src := pipeline.FromSlice([]int{5, 3, 5, 8, 1})
//	odd := pipeline.Filter(src, func(n int) bool { return n%2 != 0 })
//	top := pipeline.Limit(pipeline.Sorted(pipeline.Distinct(odd), pipeline.Descending[int]), 2)
//	results, _ := pipeline.Collect(ctx, top) // [5 3]
package pipeline
