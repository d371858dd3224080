package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the terminal color codes used in status lines.
// It keeps this package independent of the ui package.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider emits no color codes.
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError prints a status line for a failed computation and
// returns the matching exit code. A nil err yields ExitSuccess and no output.
//
// Parameters:
//   - err: The error that aborted the computation.
//   - duration: How long the computation ran before failing (0 to omit).
//   - out: Destination for the status line.
//   - colors: Color codes for the line; nil disables colors.
//
// Returns:
//   - int: The exit code for the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	var validationErr ValidationError
	var configErr ConfigError
	var timeoutErr TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit of %s was reached%s.\n", timeoutErr.Limit, suffix)
		return ExitErrorTimeout
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", suffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), suffix, colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &validationErr), errors.As(err, &configErr):
		fmt.Fprintf(out, "Status: Invalid input. %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
