package tui

import (
	"time"

	"github.com/agbru/rangeprod/internal/metrics"
	"github.com/agbru/rangeprod/internal/orchestration"
)

// ProgressMsg carries one progress update from a calculator.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-calculator results of a run.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the representative result of a successful run.
type FinalResultMsg struct {
	Result orchestration.CalculationResult
}

// ErrorMsg reports a failed run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a Go runtime memory snapshot.
type MemStatsMsg metrics.MemorySnapshot

// SysStatsMsg carries system-wide CPU and memory usage.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// CalculationCompleteMsg is sent when a run finishes. Generation tells
// apart runs started before and after a restart.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run's context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
