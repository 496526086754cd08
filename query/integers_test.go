package query

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/util"
)

func TestTopTen(t *testing.T) {
	tests := []struct {
		name     string
		ints     Source[int]
		want     []int
		wantCode errors.ErrorCode
	}{
		{"fewer than ten", Ints(3, 9, 1), []int{9, 3, 1}, ""},
		{"keeps duplicates", Ints(5, 5, 5, 1), []int{5, 5, 5, 1}, ""},
		{"takes ten", Ints(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12), []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3}, ""},
		{"null element", Source[int]{util.Ptr(1), nil}, nil, errors.ErrCodeInvalidData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New(WithIntegers(tc.ints)).TopTen(context.Background())
			if tc.wantCode != "" {
				checkCode(t, err, tc.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTopTenUnique(t *testing.T) {
	tests := []struct {
		name     string
		ints     Source[int]
		want     []int
		wantCode errors.ErrorCode
	}{
		{"deduplicates", Ints(4, 4, 2, 9, 2), []int{9, 4, 2}, ""},
		{"drops nulls", Source[int]{nil, util.Ptr(3), nil, util.Ptr(3), util.Ptr(1)}, []int{3, 1}, ""},
		{"only null", Source[int]{nil}, nil, errors.ErrCodeInvalidData},
		{"takes ten", Ints(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10), []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New(WithIntegers(tc.ints)).TopTenUnique(context.Background())
			if tc.wantCode != "" {
				checkCode(t, err, tc.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTopTenUniqueOdd(t *testing.T) {
	tests := []struct {
		name     string
		ints     Source[int]
		want     []int
		wantCode errors.ErrorCode
	}{
		{"odd only", Ints(1, 2, 3, 4, 5, 5), []int{5, 3, 1}, ""},
		{"negative odd values", Ints(-3, -1, 2, 5, 5, -4), []int{5, -1, -3}, ""},
		{"all even", Ints(2, 4, 6, 0), nil, errors.ErrCodeInvalidData},
		{"only null", Source[int]{nil, nil}, nil, errors.ErrCodeInvalidData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New(WithIntegers(tc.ints)).TopTenUniqueOdd(context.Background())
			if tc.wantCode != "" {
				checkCode(t, err, tc.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name     string
		ints     Source[int]
		want     float64
		wantCode errors.ErrorCode
	}{
		{"two four six", Ints(2, 4, 6), 4.0, ""},
		{"fractional", Ints(1, 2), 1.5, ""},
		{"nulls ignored", Source[int]{nil, util.Ptr(4), nil}, 4.0, ""},
		{"negative", Ints(-2, -4), -3.0, ""},
		{"empty", Ints(), 0, errors.ErrCodeEmptyCollection},
		{"only nulls", Source[int]{nil, nil}, 0, errors.ErrCodeInvalidData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New(WithIntegers(tc.ints)).Average(context.Background())
			if tc.wantCode != "" {
				checkCode(t, err, tc.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSafeAverage(t *testing.T) {
	if _, ok := SafeAverage(nil); ok {
		t.Error("absent source has no average")
	}
	if _, ok := SafeAverage(Source[int]{nil}); ok {
		t.Error("null-only source has no average")
	}
	if avg, ok := SafeAverage(Ints(1, 2, 3, 4)); !ok || avg != 2.5 {
		t.Errorf("expected 2.5, got %v (ok=%v)", avg, ok)
	}
}

func countOf(values []int) map[int]int {
	m := make(map[int]int, len(values))
	for _, v := range values {
		m[v]++
	}
	return m
}

func TestIntegerProperties(t *testing.T) {
	ctx := context.Background()
	r := rand.New(rand.NewPCG(3, 4))

	for i := 0; i < 100; i++ {
		n := 1 + r.IntN(40)
		lib := New(WithSeed(r.Int64()), WithSampleSize(n), WithBounds(-50, 50))
		input := lib.Integers().Values()
		inputCounts := countOf(input)

		top, err := lib.TopTen(ctx)
		if err != nil {
			t.Fatalf("TopTen: %v", err)
		}
		if len(top) != min(10, n) {
			t.Fatalf("expected %d values, got %d", min(10, n), len(top))
		}
		if !slices.IsSortedFunc(top, func(a, b int) int { return b - a }) {
			t.Fatalf("TopTen not non-increasing: %v", top)
		}
		for v, c := range countOf(top) {
			if inputCounts[v] < c {
				t.Fatalf("TopTen value %d appears %d times, input has %d", v, c, inputCounts[v])
			}
		}

		unique, err := lib.TopTenUnique(ctx)
		if err != nil {
			t.Fatalf("TopTenUnique: %v", err)
		}
		if len(unique) > 10 || len(util.Unique(unique)) != len(unique) {
			t.Fatalf("TopTenUnique has duplicates or too many values: %v", unique)
		}
		if !slices.IsSortedFunc(unique, func(a, b int) int { return b - a }) {
			t.Fatalf("TopTenUnique not non-increasing: %v", unique)
		}

		odd, err := lib.TopTenUniqueOdd(ctx)
		if !util.Any(input, isOdd) {
			checkCode(t, err, errors.ErrCodeInvalidData)
			continue
		}
		if err != nil {
			t.Fatalf("TopTenUniqueOdd: %v", err)
		}
		for _, v := range odd {
			if !isOdd(v) || !util.Contains(input, v) {
				t.Fatalf("unexpected odd value %d", v)
			}
		}
	}
}
