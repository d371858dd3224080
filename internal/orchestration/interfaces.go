package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/rangeprod/internal/product"
	"github.com/agbru/rangeprod/internal/progress"
)

// CalculationResult is the outcome of one calculator run.
type CalculationResult struct {
	// Index is the calculator's position in the run, which is also its
	// progress channel index.
	Index int
	// Name is the calculator display name.
	Name string
	// Exact reports whether Result is an exact integer rather than an int64
	// product reduced modulo 2^64.
	Exact bool
	// Result is nil when Err is set.
	Result   *big.Int
	Duration time.Duration
	Err      error
}

// PresentationOptions controls how the final result is shown.
type PresentationOptions struct {
	Request product.Request
	Verbose bool
	Details bool
	Quiet   bool
}

// ProgressReporter displays progress updates until progressChan is closed,
// then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the channel silently. Used in quiet mode.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler reports a calculation error and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// ResultPresenter renders results.
type ResultPresenter interface {
	ErrorHandler
	// PresentComparisonTable lists every calculator with its duration and
	// status.
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	// PresentResult shows the final result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}
