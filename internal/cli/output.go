package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/rangeprod/internal/format"
	"github.com/agbru/rangeprod/internal/metrics"
	"github.com/agbru/rangeprod/internal/orchestration"
	"github.com/agbru/rangeprod/internal/product"
	"github.com/agbru/rangeprod/internal/ui"
)

const (
	// TruncationLimit is the digit count above which exact results are
	// shortened unless -v is given.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept on each side of a
	// shortened result.
	DisplayEdges = 25
	// MaxPlanRows bounds the partition plan printed with -d.
	MaxPlanRows = 16
)

// FormatResultLine returns "Result: <n>", shortening exact results longer
// than TruncationLimit digits unless verbose is set.
func FormatResultLine(result *big.Int, verbose bool) string {
	s := result.String()
	if !verbose {
		s = format.TruncateDigits(s, TruncationLimit, DisplayEdges)
	}
	return "Result: " + s
}

// DisplayQuietResult prints just the number.
func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, result.String())
}

// DisplayResult prints the result line and, with opts.Details, an analysis
// of the result and of the partition plan.
func DisplayResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintln(out, FormatResultLine(result.Result, opts.Verbose))
	digits := len(result.Result.String())
	if !opts.Verbose && digits > TruncationLimit {
		fmt.Fprintf(out, "(%s digits, use %s-v%s to display the full value)\n",
			format.FormatNumberString(fmt.Sprint(digits)), ui.ColorYellow(), ui.ColorReset())
	}
	if !opts.Details {
		return
	}

	fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Calculator        : %s%s%s\n", ui.ColorBlue(), result.Name, ui.ColorReset())
	fmt.Fprintf(out, "Calculation time  : %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
	arith := "int64 (wraps modulo 2^64)"
	if result.Exact {
		arith = "exact"
	}
	fmt.Fprintf(out, "Arithmetic        : %s\n", arith)
	if digits <= TruncationLimit {
		fmt.Fprintf(out, "Grouped value     : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(result.Result.String()), ui.ColorReset())
	}
	fmt.Fprintf(out, "Binary size       : %s bits\n", format.FormatNumberString(fmt.Sprint(result.Result.BitLen())))
	if result.Exact {
		fmt.Fprintf(out, "Number of digits  : %s\n", format.FormatNumberString(fmt.Sprint(digits)))
	}
	DisplayPartitionPlan(opts.Request, out)
}

// DisplayPartitionPlan prints the chunk size, the coverage and up to
// MaxPlanRows intervals of the plan for req.
func DisplayPartitionPlan(req product.Request, out io.Writer) {
	plan, err := product.Partition(req.Threads, req.Start, req.End, req.Policy)
	if err != nil {
		fmt.Fprintf(out, "Partition plan    : %v\n", err)
		return
	}
	coverage, _ := product.Coverage(req.Threads, req.Start, req.End, req.Policy)

	fmt.Fprintf(out, "\n%s--- Partition plan ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Policy            : %s\n", req.Policy)
	fmt.Fprintf(out, "Threads           : %d\n", req.Threads)
	fmt.Fprintf(out, "Chunk size        : %d\n", product.ChunkSize(req.Threads, req.Start, req.End))
	fmt.Fprintf(out, "Coverage          : %s\n", coverage)
	if req.Policy == product.PolicyOvershoot && coverage.Hi > req.End {
		fmt.Fprintf(out, "%sThe last partition extends past end=%d.%s\n", ui.ColorYellow(), req.End, ui.ColorReset())
	}
	for i, iv := range plan {
		if i == MaxPlanRows {
			fmt.Fprintf(out, "  ... %d more\n", len(plan)-MaxPlanRows)
			break
		}
		fmt.Fprintf(out, "  #%-4d %-28s %d integers\n", i, iv, iv.Len())
	}
}

// DisplayMemoryStats prints heap and GC activity of a run.
func DisplayMemoryStats(stats metrics.RunStats, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(stats.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(stats.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", stats.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(stats.PauseTotalNs)/1e6)
}

// WriteResultToFile writes a commented header and the result to path,
// creating parent directories as needed.
func WriteResultToFile(path string, result orchestration.CalculationResult, req product.Request) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(f, "# Range Product Result\n")
	fmt.Fprintf(f, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(f, "# Calculator: %s\n", result.Name)
	fmt.Fprintf(f, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(f, "# Threads: %d\n", req.Threads)
	fmt.Fprintf(f, "# Range: %s\n", product.Interval{Lo: req.Start, Hi: req.End})
	fmt.Fprintf(f, "# Policy: %s\n", req.Policy)
	fmt.Fprintf(f, "# Exact: %t\n\n", result.Exact)
	fmt.Fprintf(f, "Result: %s\n", result.Result.String())

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
