package product

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func rangeProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

// TestPartition_CoverageProperty checks that, under clamping, the plan covers
// [start, end) exactly once with ascending, non-overlapping intervals.
func TestPartition_CoverageProperty(t *testing.T) {
	properties := rangeProperties()

	properties.Property("clamped plan covers the range exactly once", prop.ForAll(
		func(threads int, start, length int64) bool {
			end := start + length
			plan, err := Partition(threads, start, end, PolicyClamp)
			if err != nil || len(plan) != threads {
				return false
			}
			next := start
			var total uint64
			for _, iv := range plan {
				if iv.Empty() {
					continue
				}
				if iv.Lo != next || iv.Hi > end {
					t.Logf("interval %s breaks contiguity at %d", iv, next)
					return false
				}
				next = iv.Hi
				total += iv.Len()
			}
			return next == end && total == uint64(length)
		},
		gen.IntRange(1, 64),
		gen.Int64Range(-500, 500),
		gen.Int64Range(0, 1000),
	))

	properties.TestingRun(t)
}

// TestCompute_ThreadCountInvariance checks that the thread count never
// changes the clamped result, bit for bit under wraparound, and that the
// exact reducer agrees with a direct product.
func TestCompute_ThreadCountInvariance(t *testing.T) {
	properties := rangeProperties()
	ctx := context.Background()

	properties.Property("compute(N) == compute(1)", prop.ForAll(
		func(threads int, start, length int64) bool {
			end := start + length
			want, err := Compute(ctx, 1, start, end)
			if err != nil {
				return false
			}
			got, err := Compute(ctx, threads, start, end)
			if err != nil {
				return false
			}
			return got == want
		},
		gen.IntRange(1, 32),
		gen.Int64Range(-100, 100),
		gen.Int64Range(0, 200),
	))

	properties.Property("exact compute(N) == MulRange", prop.ForAll(
		func(threads int, start, length int64) bool {
			end := start + length
			got, err := NewReducer().ComputeBig(ctx, threads, start, end)
			if err != nil {
				return false
			}
			want := new(big.Int).MulRange(start, end-1)
			return got.Cmp(want) == 0 && Wrap64(got) == mustCompute(ctx, threads, start, end)
		},
		gen.IntRange(1, 32),
		gen.Int64Range(-60, 60),
		gen.Int64Range(0, 120),
	))

	properties.TestingRun(t)
}

func mustCompute(ctx context.Context, threads int, start, end int64) int64 {
	v, err := Compute(ctx, threads, start, end)
	if err != nil {
		panic(err)
	}
	return v
}
