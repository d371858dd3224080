package orchestration

import (
	"time"

	"github.com/agbru/rangeprod/internal/format"
	"github.com/agbru/rangeprod/internal/progress"
)

// ProgressAggregator folds per-calculator updates into an average progress
// and an ETA. The CLI and the TUI both consume progress through it.
type ProgressAggregator struct {
	state *format.ProgressWithETA
	n     int
}

// AggregatedProgress is the aggregator's view after one update.
type AggregatedProgress struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// NewProgressAggregator returns nil when numCalculators <= 0.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(numCalculators), n: numCalculators}
}

// Update applies one update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.CalculatorIndex, update.Value)
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

// GetETA returns the current ETA without updating.
func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

// NumCalculators returns the number of tracked calculators.
func (a *ProgressAggregator) NumCalculators() int { return a.n }

// IsMultiCalculator reports whether more than one calculator is tracked.
func (a *ProgressAggregator) IsMultiCalculator() bool { return a.n > 1 }

// DrainChannel discards every update until the channel is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
