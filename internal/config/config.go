// Package config defines the rangeprod configuration, parses it from
// command-line flags, positional arguments and RANGEPROD_* environment
// variables, and validates it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/rangeprod/internal/errors"
	"github.com/agbru/rangeprod/internal/product"
)

// EnvPrefix is the prefix of every environment variable read by rangeprod.
const EnvPrefix = "RANGEPROD_"

// Default configuration values.
const (
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 5 * time.Minute
	// DefaultAlgo selects the partitioned int64 reducer.
	DefaultAlgo = product.DefaultCalculator
	// DefaultPolicy is the partition policy name.
	DefaultPolicy = "clamp"
	// DefaultLogLevel is the zerolog level of diagnostic output.
	DefaultLogLevel = "warn"
)

// AppConfig aggregates every setting of a rangeprod run.
type AppConfig struct {
	// Threads is the number of partitions, one goroutine each.
	Threads int
	// Start is the inclusive lower bound of the range.
	Start int64
	// End is the exclusive upper bound of the range.
	End int64
	// Policy controls how the last partition is bounded.
	Policy product.Policy
	// Algo is a calculator name or "all".
	Algo string
	// Timeout bounds the whole computation.
	Timeout time.Duration
	// Verbose prints the full value of exact results.
	Verbose bool
	// Details prints the partition plan, timings and memory statistics.
	Details bool
	// Quiet prints only the result.
	Quiet bool
	// NoColor disables ANSI colors (NO_COLOR is honored as well).
	NoColor bool
	// TUI runs the interactive dashboard.
	TUI bool
	// Prompt reads the three integers from standard input.
	Prompt bool
	// OutputFile, when set, receives a copy of the result.
	OutputFile string
	// LogLevel is a zerolog level name.
	LogLevel string
	// MetricsFile, when set, receives the Prometheus metrics after the run.
	MetricsFile string

	policyName string
}

// ToRequest converts the configuration to a calculator request.
func (c AppConfig) ToRequest() product.Request {
	return product.Request{Threads: c.Threads, Start: c.Start, End: c.End, Policy: c.Policy}
}

// Validate checks the configuration. Range values are not checked in prompt
// mode, where they are read later.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if !c.Prompt && c.Threads <= 0 {
		return apperrors.ValidationError{
			Field:   "threads",
			Message: fmt.Sprintf("must be strictly positive, got %d", c.Threads),
			Cause:   product.ErrInvalidThreadCount,
		}
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}
	if c.TUI && c.Prompt {
		return apperrors.NewConfigError("-tui and -prompt cannot be combined")
	}
	return nil
}

// rangeSources tracks which range values were supplied, whatever the source.
type rangeSources struct {
	threads, start, end bool
}

func (s rangeSources) any() bool { return s.threads || s.start || s.end }

// ParseConfig parses args (without the program name) into an AppConfig.
//
// Range values come, in decreasing priority, from flags, from exactly three
// positional arguments (threads start end), and from RANGEPROD_THREADS,
// RANGEPROD_START and RANGEPROD_END. When no range value is supplied at all
// the configuration switches to prompt mode. When only the thread count is
// missing it defaults to EstimateOptimalThreadCount.
//
// Malformed integers are reported as apperrors.ValidationError, other
// problems as apperrors.ConfigError. flag.ErrHelp is returned unchanged.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Calculator to use: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.IntVar(&config.Threads, "threads", 0, "Number of partitions (one goroutine each). Defaults to the CPU count.")
	fs.IntVar(&config.Threads, "t", 0, "Number of partitions (shorthand).")
	fs.Int64Var(&config.Start, "start", 0, "First integer of the range (inclusive).")
	fs.Int64Var(&config.End, "end", 0, "End of the range (exclusive).")
	fs.StringVar(&config.policyName, "policy", DefaultPolicy, "Partition policy: 'clamp' or 'overshoot'.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the computation.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of exact results.")
	fs.BoolVar(&config.Details, "d", false, "Display the partition plan and performance details.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.TUI, "tui", false, "Run the interactive dashboard.")
	fs.BoolVar(&config.Prompt, "prompt", false, "Read thread count, start and end from standard input.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or disabled.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	sources := rangeSources{
		threads: isFlagSetAny(fs, "threads", "t"),
		start:   isFlagSet(fs, "start"),
		end:     isFlagSet(fs, "end"),
	}

	fail := func(err error) (AppConfig, error) {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}

	if err := applyPositional(&config, &sources, fs.Args()); err != nil {
		return fail(err)
	}
	if err := applyEnvOverrides(&config, fs, &sources); err != nil {
		return fail(err)
	}

	if config.Prompt && sources.any() {
		return fail(apperrors.NewConfigError("-prompt cannot be combined with range values"))
	}
	if !config.Prompt {
		switch {
		case !sources.any() && config.TUI:
			return fail(apperrors.NewConfigError("-tui requires start and end"))
		case !sources.any():
			config.Prompt = true
		case !sources.start || !sources.end:
			return fail(apperrors.NewConfigError("both start and end are required (flags, positional arguments or %sSTART/%sEND)", EnvPrefix, EnvPrefix))
		case !sources.threads:
			config.Threads = EstimateOptimalThreadCount()
		}
	}

	policy, err := product.ParsePolicy(config.policyName)
	if err != nil {
		return fail(err)
	}
	config.Policy = policy
	config.Algo = strings.ToLower(config.Algo)
	config.LogLevel = strings.ToLower(config.LogLevel)

	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// applyPositional reads "threads start end" positional arguments. Values
// already supplied by flags are not overridden.
func applyPositional(c *AppConfig, s *rangeSources, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) != 3 {
		return apperrors.NewConfigError("expected 3 positional arguments (threads start end), got %d", len(args))
	}

	threads, err := ParseThreads(args[0])
	if err != nil {
		return err
	}
	start, err := ParseBound("start", args[1])
	if err != nil {
		return err
	}
	end, err := ParseBound("end", args[2])
	if err != nil {
		return err
	}

	if !s.threads {
		c.Threads, s.threads = threads, true
	}
	if !s.start {
		c.Start, s.start = start, true
	}
	if !s.end {
		c.End, s.end = end, true
	}
	return nil
}

// ParseThreads parses a thread count. Syntax errors and non-positive values
// are reported as apperrors.ValidationError.
func ParseThreads(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.ValidationError{Field: "threads", Message: fmt.Sprintf("%q is not an integer", s), Cause: err}
	}
	if n <= 0 {
		return 0, apperrors.ValidationError{
			Field:   "threads",
			Message: fmt.Sprintf("must be strictly positive, got %d", n),
			Cause:   product.ErrInvalidThreadCount,
		}
	}
	return n, nil
}

// ParseBound parses a range bound named field.
func ParseBound(field, s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a 64-bit integer", s), Cause: err}
	}
	return n, nil
}
