package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/rangeprod/internal/errors"
	"github.com/agbru/rangeprod/internal/format"
	"github.com/agbru/rangeprod/internal/orchestration"
	"github.com/agbru/rangeprod/internal/progress"
	"github.com/agbru/rangeprod/internal/ui"
)

// CLIProgressReporter is the spinner-based orchestration.ProgressReporter.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter renders results as colored terminal text.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per calculator. Columns are padded
// by hand because the color codes have no display width.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durWidth := len("Calculator"), len("Duration")
	for _, r := range results {
		nameWidth = max(nameWidth, len(r.Name))
		durWidth = max(durWidth, len(format.FormatExecutionDuration(r.Duration)))
	}

	fmt.Fprintf(out, "%sCalculator%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(nameWidth-len("Calculator")),
		ui.ColorUnderline(), ui.ColorReset(), pad(durWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, r := range results {
		status := fmt.Sprintf("%sSuccess%s", ui.ColorGreen(), ui.ColorReset())
		if r.Err != nil {
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), r.Err, ui.ColorReset())
		}
		d := format.FormatExecutionDuration(r.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), r.Name, ui.ColorReset(), pad(nameWidth-len(r.Name)),
			ui.ColorYellow(), d, ui.ColorReset(), pad(durWidth-len(d)),
			status)
	}
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PresentResult prints the result line, or just the number in quiet mode.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, result.Result)
		return
	}
	DisplayResult(result, opts, out)
}

// FormatDuration formats d for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints the failure status and returns the exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider supplies theme colors to apperrors.HandleCalculationError.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

// Yellow returns the warning color of the active theme.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset code of the active theme.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }
