package product

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strings"

	apperrors "github.com/agbru/rangeprod/internal/errors"
)

// ErrInvalidThreadCount is matched (via errors.Is) by the error Partition
// returns for a thread count below one.
var ErrInvalidThreadCount = errors.New("thread count must be strictly positive")

// Interval is the half-open integer range [Lo, Hi).
type Interval struct {
	Lo int64
	Hi int64
}

// Len returns the number of integers in the interval, 0 when empty. The
// count is unsigned because [MinInt64, MaxInt64) holds more than MaxInt64
// integers.
func (iv Interval) Len() uint64 {
	if iv.Hi <= iv.Lo {
		return 0
	}
	return uint64(iv.Hi) - uint64(iv.Lo)
}

// Empty reports whether the interval contains no integers.
func (iv Interval) Empty() bool { return iv.Hi <= iv.Lo }

// String formats the interval as "[lo, hi)".
func (iv Interval) String() string { return fmt.Sprintf("[%d, %d)", iv.Lo, iv.Hi) }

// Policy selects how the last interval is bounded.
type Policy int

const (
	// PolicyClamp clamps every interval bound to end.
	PolicyClamp Policy = iota
	// PolicyOvershoot leaves the bounds unclamped; the last interval may
	// include integers at or beyond end.
	PolicyOvershoot
)

// String returns the policy name used on the command line.
func (p Policy) String() string {
	switch p {
	case PolicyOvershoot:
		return "overshoot"
	default:
		return "clamp"
	}
}

// ParsePolicy parses a policy name ("clamp" or "overshoot", case-insensitive).
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clamp":
		return PolicyClamp, nil
	case "overshoot":
		return PolicyOvershoot, nil
	}
	return PolicyClamp, apperrors.NewConfigError("unknown partition policy %q: valid policies are clamp, overshoot", name)
}

// ChunkSize returns ceil((end-start)/threadCount). For a negative span the
// integer quotient already truncates toward zero, which is the ceiling.
// A chunk that does not fit in an int64 (a single thread over a range wider
// than MaxInt64) saturates. threadCount must be positive.
func ChunkSize(threadCount int, start, end int64) int64 {
	size, descending := chunkMagnitude(threadCount, start, end)
	switch {
	case descending && size > math.MaxInt64:
		return math.MinInt64
	case descending:
		return -int64(size)
	case size > math.MaxInt64:
		return math.MaxInt64
	}
	return int64(size)
}

// chunkMagnitude returns |ChunkSize| computed in uint64, where end-start
// cannot overflow, and whether the range runs downward.
func chunkMagnitude(threadCount int, start, end int64) (size uint64, descending bool) {
	n := uint64(threadCount)
	if end < start {
		return (uint64(start) - uint64(end)) / n, true
	}
	span := uint64(end) - uint64(start)
	size = span / n
	if span%n != 0 {
		size++
	}
	return size, false
}

// boundAt returns start + k*size (or start - k*size for a descending range),
// saturating at the int64 limits instead of wrapping.
func boundAt(start int64, size uint64, k int, descending bool) int64 {
	hi, offset := bits.Mul64(size, uint64(k))
	if descending {
		room := uint64(start) + 1<<63 // start - MinInt64
		if hi != 0 || offset > room {
			return math.MinInt64
		}
		return int64(uint64(start) - offset)
	}
	room := uint64(math.MaxInt64) - uint64(start)
	if hi != 0 || offset > room {
		return math.MaxInt64
	}
	return int64(uint64(start) + offset)
}

// Partition splits [start, end) into exactly threadCount contiguous
// intervals in ascending order. Interval i is
// [start + chunk*i, start + chunk*(i+1)), with chunk computed once by
// ChunkSize. Under PolicyClamp every bound is clamped to end, so trailing
// intervals may be empty; under PolicyOvershoot the bounds are used as is,
// saturating at MaxInt64. When start >= end every interval is empty.
//
// Bounds are computed without int64 overflow, so the plan covers ranges
// wider than MaxInt64 exactly.
//
// A threadCount below one yields a ValidationError wrapping
// ErrInvalidThreadCount.
func Partition(threadCount int, start, end int64, policy Policy) ([]Interval, error) {
	if threadCount <= 0 {
		return nil, apperrors.ValidationError{
			Field:   "threads",
			Message: fmt.Sprintf("must be strictly positive, got %d", threadCount),
			Cause:   ErrInvalidThreadCount,
		}
	}

	size, descending := chunkMagnitude(threadCount, start, end)
	plan := make([]Interval, threadCount)
	for i := range plan {
		lo := boundAt(start, size, i, descending)
		hi := boundAt(start, size, i+1, descending)
		if policy == PolicyClamp {
			lo = min(lo, end)
			hi = min(hi, end)
		}
		plan[i] = Interval{Lo: lo, Hi: hi}
	}
	return plan, nil
}

// Coverage returns the single interval spanned by the partition plan: from
// start to the upper bound of the last interval. Under PolicyClamp this is
// [start, end) for a non-empty range.
func Coverage(threadCount int, start, end int64, policy Policy) (Interval, error) {
	plan, err := Partition(threadCount, start, end, policy)
	if err != nil {
		return Interval{}, err
	}
	last := plan[len(plan)-1]
	if last.Hi <= start {
		return Interval{Lo: start, Hi: start}, nil
	}
	return Interval{Lo: start, Hi: last.Hi}, nil
}
