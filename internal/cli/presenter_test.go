package cli

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/rangeprod/internal/errors"
	"github.com/agbru/rangeprod/internal/orchestration"
	"github.com/agbru/rangeprod/internal/product"
)

func TestCLIResultPresenter_PresentComparisonTable(t *testing.T) {
	useNoColor(t)

	results := []orchestration.CalculationResult{
		{Name: "Parallel (int64)", Result: big.NewInt(3628800), Duration: 2 * time.Millisecond},
		{Name: "Sequential (int64)", Err: errors.New("boom"), Duration: time.Millisecond},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected a title, a header and two rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "Parallel (int64)") || !strings.Contains(lines[2], "Success") {
		t.Errorf("unexpected first row %q", lines[2])
	}
	if !strings.Contains(lines[3], "Failure (boom)") {
		t.Errorf("unexpected second row %q", lines[3])
	}
	// Columns line up when no color codes are emitted.
	if strings.Index(lines[1], "Duration") != strings.Index(lines[2], "2ms") {
		t.Errorf("duration column misaligned:\n%s", out)
	}
}

func TestCLIResultPresenter_PresentResult(t *testing.T) {
	useNoColor(t)

	result := orchestration.CalculationResult{Name: "Parallel (int64)", Result: big.NewInt(120)}
	req := product.Request{Threads: 2, Start: -5, End: -1}

	var quiet, normal bytes.Buffer
	CLIResultPresenter{}.PresentResult(result, orchestration.PresentationOptions{Request: req, Quiet: true}, &quiet)
	CLIResultPresenter{}.PresentResult(result, orchestration.PresentationOptions{Request: req}, &normal)

	if quiet.String() != "120\n" {
		t.Errorf("quiet output = %q", quiet.String())
	}
	if normal.String() != "Result: 120\n" {
		t.Errorf("normal output = %q", normal.String())
	}
}

func TestCLIResultPresenter_HandleError(t *testing.T) {
	useNoColor(t)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"timeout", apperrors.CalculationError{Cause: context.DeadlineExceeded}, apperrors.ExitErrorTimeout},
		{"canceled", apperrors.CalculationError{Cause: context.Canceled}, apperrors.ExitErrorCanceled},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if code := (CLIResultPresenter{}).HandleError(tt.err, time.Second, &buf); code != tt.code {
				t.Errorf("HandleError() = %d, want %d", code, tt.code)
			}
			if buf.Len() == 0 {
				t.Error("expected a status line")
			}
		})
	}
}

func TestCLIResultPresenter_FormatDuration(t *testing.T) {
	t.Parallel()
	if got := (CLIResultPresenter{}).FormatDuration(0); got != "< 1µs" {
		t.Errorf("FormatDuration(0) = %q", got)
	}
}
