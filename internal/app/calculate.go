package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/rangeprod/internal/cli"
	apperrors "github.com/agbru/rangeprod/internal/errors"
	"github.com/agbru/rangeprod/internal/logging"
	"github.com/agbru/rangeprod/internal/metrics"
	"github.com/agbru/rangeprod/internal/orchestration"
	"github.com/agbru/rangeprod/internal/ui"
)

// runCalculate runs the selected calculators in the terminal.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := a.withTimeout(ctx)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculators := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if len(calculators) == 0 {
		fmt.Fprintf(a.ErrWriter, "No calculator available for '%s'.\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	showDetails := a.Config.Details && !a.Config.Quiet
	if showDetails {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculators, out)
	}

	// Progress goes to stderr so that stdout carries only the result.
	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := a.ErrWriter
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	req := a.Config.ToRequest()
	results := orchestration.ExecuteCalculations(ctx, calculators, req, reporter, progressOut)
	stats := metrics.Between(before, collector.Snapshot())

	opts := orchestration.PresentationOptions{
		Request: req,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
		Quiet:   a.Config.Quiet,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, opts, cli.CLIResultPresenter{}, out)

	if exitCode == apperrors.ExitSuccess {
		if showDetails {
			cli.DisplayMemoryStats(stats, out)
		}
		if code := a.saveResult(results, out); code != apperrors.ExitSuccess {
			exitCode = code
		}
	}
	if code := a.writeMetrics(); code != apperrors.ExitSuccess && exitCode == apperrors.ExitSuccess {
		exitCode = code
	}

	a.Logger.Debug("run finished",
		logging.String("algo", a.Config.Algo),
		logging.Int("calculators", len(calculators)),
		logging.Int("exit_code", exitCode))
	return exitCode
}

// saveResult writes the representative result to -o, if set.
func (a *Application) saveResult(results []orchestration.CalculationResult, out io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	best := orchestration.Representative(results)
	if best == nil {
		return apperrors.ExitSuccess
	}
	if err := cli.WriteResultToFile(a.Config.OutputFile, *best, a.Config.ToRequest()); err != nil {
		a.Logger.Error("saving result failed", err, logging.String("path", a.Config.OutputFile))
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "%sResult saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// writeMetrics dumps the default Prometheus registry to -metrics-file, if
// set, in the text exposition format.
func (a *Application) writeMetrics() int {
	if a.Config.MetricsFile == "" {
		return apperrors.ExitSuccess
	}
	if err := prometheus.WriteToTextfile(a.Config.MetricsFile, prometheus.DefaultGatherer); err != nil {
		a.Logger.Error("writing metrics failed", err, logging.String("path", a.Config.MetricsFile))
		fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
