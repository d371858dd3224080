package product

import (
	"sync/atomic"

	"github.com/agbru/rangeprod/internal/progress"
)

// progressResolution is the number of distinct progress steps reported per
// computation; finer changes are coalesced.
const progressResolution = 1000

// progressTracker turns worker ticks into normalized progress values. It is
// shared by all workers of one computation.
type progressTracker struct {
	total    uint64
	done     atomic.Uint64
	lastStep atomic.Int64
	report   progress.ProgressCallback
}

func newProgressTracker(plan []Interval, report progress.ProgressCallback) *progressTracker {
	t := &progressTracker{report: report}
	for _, iv := range plan {
		t.total += iv.Len()
	}
	t.lastStep.Store(-1)
	return t
}

// advance records n processed integers and reports when the progress step
// changed. Safe for concurrent use.
func (t *progressTracker) advance(n uint64) {
	if t.report == nil || t.total == 0 {
		return
	}
	done := t.done.Add(n)
	// Scaled in float64: done*progressResolution overflows for wide ranges.
	step := min(int64(float64(done)/float64(t.total)*progressResolution), progressResolution)
	for {
		last := t.lastStep.Load()
		if step <= last {
			return
		}
		if t.lastStep.CompareAndSwap(last, step) {
			t.report(float64(step) / progressResolution)
			return
		}
	}
}

// finish reports completion, which covers empty ranges that never ticked.
func (t *progressTracker) finish() {
	if t.report == nil {
		return
	}
	if t.lastStep.Swap(progressResolution) < progressResolution {
		t.report(1.0)
	}
}
