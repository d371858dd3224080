package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/agbru/rangeprod/internal/config"
	"github.com/agbru/rangeprod/internal/product"
)

func TestPrintExecutionConfig(t *testing.T) {
	useNoColor(t)

	cfg := config.AppConfig{Threads: 4, Start: 1, End: 11, Policy: product.PolicyOvershoot, Timeout: time.Minute}
	var buf bytes.Buffer
	PrintExecutionConfig(cfg, &buf)
	out := buf.String()

	for _, s := range []string{
		"--- Execution Configuration ---",
		"Multiplying [1, 11) over 4 partitions (overshoot policy) with a timeout of 1m0s.",
		"logical processors, Go " + runtime.Version(),
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	useNoColor(t)
	factory := product.NewDefaultFactory()

	parallel, err := factory.Get("parallel")
	if err != nil {
		t.Fatal(err)
	}
	exact, err := factory.Get("exact")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		calculators []product.Calculator
		want        string
	}{
		{"single", []product.Calculator{parallel}, "Single computation with the Parallel (int64) calculator."},
		{"comparison", []product.Calculator{parallel, exact}, "Parallel comparison of all calculators."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintExecutionMode(tt.calculators, &buf)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
		})
	}
}
