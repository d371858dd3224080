package product

import (
	"context"
	"errors"
	"math"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/rangeprod/internal/errors"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		threads    int
		start, end int64
		want       int64
	}{
		{"one to ten over four threads", 4, 1, 11, 3628800},
		{"single thread", 1, 1, 11, 3628800},
		{"one thread per integer", 10, 1, 11, 3628800},
		{"empty range", 4, 5, 5, 1},
		{"reversed range", 3, 10, 5, 1},
		{"range containing zero", 3, -4, 4, 0},
		{"negative range", 2, -5, -1, 120},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Compute(context.Background(), tt.threads, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_SingleIntegerAnyThreadCount(t *testing.T) {
	t.Parallel()

	for threads := 1; threads <= 16; threads++ {
		got, err := Compute(context.Background(), threads, 5, 6)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got, "threads=%d", threads)
	}
}

// Ranges wider than MaxInt64 finish quickly because every chunk's running
// product wraps to zero within a few dozen factors.
func TestCompute_RangeWiderThanMaxInt64(t *testing.T) {
	t.Parallel()

	for _, r := range []struct{ start, end int64 }{
		{-10, math.MaxInt64},
		{math.MinInt64, math.MaxInt64},
	} {
		for _, threads := range []int{1, 2, 4, 7, 16} {
			got, err := Compute(context.Background(), threads, r.start, r.end)
			require.NoError(t, err)
			assert.Zero(t, got, "threads=%d [%d, %d)", threads, r.start, r.end)
		}
	}
}

func TestCompute_Overshoot(t *testing.T) {
	t.Parallel()

	r := NewReducer(WithPolicy(PolicyOvershoot))
	assert.Equal(t, PolicyOvershoot, r.Policy())

	got, err := r.Compute(context.Background(), 3, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(479001600), got)

	// [5,6) [6,7) [7,8) [8,9) [9,10)
	got, err = r.Compute(context.Background(), 5, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(15120), got)

	// An even split never overshoots.
	got, err = r.Compute(context.Background(), 5, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(3628800), got)
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	want, err := Compute(context.Background(), 1, 3, 41)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		got, err := Compute(context.Background(), 7, 3, 41)
		require.NoError(t, err)
		require.Equal(t, want, got, "run %d", i)
	}
}

func TestCompute_InvalidThreadCount(t *testing.T) {
	t.Parallel()

	called := false
	r := NewReducer(WithProgress(func(float64) { called = true }))
	_, err := r.Compute(context.Background(), 0, 1, 11)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidThreadCount)
	assert.False(t, called, "no progress may be reported for a rejected request")
}

func TestCompute_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := Compute(ctx, 4, 1, 11)
	require.Error(t, err)
	assert.Zero(t, got)
	assert.ErrorIs(t, err, context.Canceled)

	var ce apperrors.CalculationError
	assert.True(t, errors.As(err, &ce))
}

func TestComputeBig(t *testing.T) {
	t.Parallel()

	r := NewReducer()
	got, err := r.ComputeBig(context.Background(), 4, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, "3628800", got.String())

	got, err = r.ComputeBig(context.Background(), 6, 1, 101)
	require.NoError(t, err)
	assert.Zero(t, new(big.Int).MulRange(1, 100).Cmp(got))

	got, err = NewReducer(WithPolicy(PolicyOvershoot)).ComputeBig(context.Background(), 3, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, "479001600", got.String())
}

func TestComputeBig_DeadlineExceeded(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	got, err := NewReducer().ComputeBig(ctx, 4, 1, 1<<20)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, apperrors.IsContextError(err))
}

func TestCompute_TimeoutCauseSurvives(t *testing.T) {
	t.Parallel()

	limit := apperrors.TimeoutError{Operation: "range product", Limit: time.Millisecond}
	ctx, cancel := context.WithDeadlineCause(context.Background(), time.Now().Add(-time.Second), limit)
	defer cancel()

	_, err := NewReducer().Compute(ctx, 4, 1, 1<<20)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, apperrors.IsContextError(err))

	var timeoutErr apperrors.TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, time.Millisecond, timeoutErr.Limit)
}

func TestCompute_Progress(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var values []float64
	r := NewReducer(WithProgress(func(p float64) {
		mu.Lock()
		values = append(values, p)
		mu.Unlock()
	}))

	_, err := r.Compute(context.Background(), 4, 1, 4*CancelCheckInterval)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, values)
	maxSeen := 0.0
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		maxSeen = max(maxSeen, v)
	}
	assert.Equal(t, 1.0, maxSeen)
}

func TestCompute_ProgressOnEmptyRange(t *testing.T) {
	t.Parallel()

	var last float64
	r := NewReducer(WithProgress(func(p float64) { last = p }))
	got, err := r.Compute(context.Background(), 3, 7, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
	assert.Equal(t, 1.0, last)
}
