package product

import (
	"context"
	"errors"
	"math"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/rangeprod/internal/errors"
)

func TestProduct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		iv   Interval
		want int64
	}{
		{"one to ten", Interval{1, 11}, 3628800},
		{"empty", Interval{5, 5}, 1},
		{"reversed", Interval{9, 2}, 1},
		{"single", Interval{5, 6}, 5},
		{"negative", Interval{-3, 0}, -6},
		{"spans zero", Interval{-2, 3}, 0},
		{"twenty factorial", Interval{1, 21}, 2432902008176640000},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Product(context.Background(), tt.iv, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProduct_Wraparound(t *testing.T) {
	t.Parallel()

	for _, hi := range []int64{22, 26, 40, 60} {
		got, err := Product(context.Background(), Interval{1, hi}, nil)
		require.NoError(t, err)
		want := Wrap64(new(big.Int).MulRange(1, hi-1))
		assert.Equal(t, want, got, "product of [1, %d)", hi)
	}
}

func TestProduct_TicksAddUpToLength(t *testing.T) {
	t.Parallel()

	for _, iv := range []Interval{
		{1, 11},
		{1, 3*CancelCheckInterval + 5},
		{-CancelCheckInterval, CancelCheckInterval},
	} {
		var ticked atomic.Uint64
		_, err := Product(context.Background(), iv, func(n uint64) { ticked.Add(n) })
		require.NoError(t, err)
		assert.Equal(t, iv.Len(), ticked.Load(), "ticks for %s", iv)
	}
}

func TestProduct_WideIntervalWithZero(t *testing.T) {
	t.Parallel()

	// Wider than MaxInt64; the zero factor ends the loop and the remaining
	// integers are ticked in one go.
	iv := Interval{-10, math.MaxInt64}
	require.Equal(t, uint64(math.MaxInt64)+10, iv.Len())

	var ticked atomic.Uint64
	got, err := Product(context.Background(), iv, func(n uint64) { ticked.Add(n) })
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.Equal(t, iv.Len(), ticked.Load())

	ticked.Store(0)
	exact, err := ProductBig(context.Background(), Interval{-5, math.MaxInt64}, func(n uint64) { ticked.Add(n) })
	require.NoError(t, err)
	assert.Zero(t, exact.Sign())
	assert.Equal(t, uint64(math.MaxInt64)+5, ticked.Load())
}

func TestProduct_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Product(ctx, Interval{1, 11}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestContextError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, contextError(context.Background()))

	limit := apperrors.TimeoutError{Operation: "range product", Limit: time.Second}
	ctx, cancel := context.WithDeadlineCause(context.Background(), time.Now().Add(-time.Second), limit)
	defer cancel()
	assert.Equal(t, limit, contextError(ctx))

	// A cause that is not a cancellation error is not surfaced.
	ctx, cancelCause := context.WithCancelCause(context.Background())
	cancelCause(errors.New("sibling failed"))
	assert.Equal(t, context.Canceled, contextError(ctx))
}

func TestProductBig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		iv   Interval
		want *big.Int
	}{
		{Interval{1, 11}, big.NewInt(3628800)},
		{Interval{5, 5}, big.NewInt(1)},
		{Interval{-3, 0}, big.NewInt(-6)},
		{Interval{-2, 3}, big.NewInt(0)},
		{Interval{1, 31}, new(big.Int).MulRange(1, 30)},
		{Interval{1, 2*CancelCheckInterval + 7}, new(big.Int).MulRange(1, 2*CancelCheckInterval+6)},
	}
	for _, tt := range tests {
		var ticked atomic.Uint64
		got, err := ProductBig(context.Background(), tt.iv, func(n uint64) { ticked.Add(n) })
		require.NoError(t, err)
		assert.Zero(t, tt.want.Cmp(got), "ProductBig(%s)", tt.iv)
		assert.Equal(t, tt.iv.Len(), ticked.Load())
	}
}

func TestProductBig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ProductBig(ctx, Interval{1, 11}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrap64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(-6), Wrap64(big.NewInt(-6)))
	assert.Equal(t, int64(3628800), Wrap64(big.NewInt(3628800)))
	two64 := new(big.Int).Lsh(big.NewInt(1), 64)
	assert.Equal(t, int64(0), Wrap64(two64))
	assert.Equal(t, int64(-1), Wrap64(new(big.Int).Sub(two64, big.NewInt(1))))
	assert.Equal(t, int64(1), Wrap64(new(big.Int).Add(two64, big.NewInt(1))))
}
