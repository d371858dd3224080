package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/rangeprod/internal/config"
	"github.com/agbru/rangeprod/internal/product"
	"github.com/agbru/rangeprod/internal/sysmon"
	"github.com/agbru/rangeprod/internal/ui"
)

// PrintExecutionConfig prints the requested range, the timeout and the host
// environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Multiplying %s%s%s over %s%d%s partitions (%s policy) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), product.Interval{Lo: cfg.Start, Hi: cfg.End}, ui.ColorReset(),
		ui.ColorCyan(), cfg.Threads, ui.ColorReset(), cfg.Policy,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())

	cpu := sysmon.DescribeCPU()
	model := cpu.Model
	if model == "" {
		model = runtime.GOARCH
	}
	fmt.Fprintf(out, "Environment: %s%s%s, %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), model, ui.ColorReset(),
		ui.ColorCyan(), cpu.Logical, ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if len(cpu.Features) > 0 {
		fmt.Fprintf(out, "CPU features: %s.\n", strings.Join(cpu.Features, ", "))
	}
}

// PrintExecutionMode states whether one calculator runs or several are
// compared. calculators must not be empty.
func PrintExecutionMode(calculators []product.Calculator, out io.Writer) {
	mode := "Parallel comparison of all calculators"
	if len(calculators) == 1 {
		mode = fmt.Sprintf("Single computation with the %s%s%s calculator", ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
