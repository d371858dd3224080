package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/briandowns/spinner"

	"github.com/agbru/rangeprod/internal/progress"
)

// MockSpinner records calls instead of drawing.
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func withMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	mock := &MockSpinner{}
	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	t.Cleanup(func() { newSpinner = orig })
	return mock
}

func TestDisplayProgress(t *testing.T) {
	t.Run("single calculator", func(t *testing.T) {
		mock := withMockSpinner(t)
		var buf bytes.Buffer
		var wg sync.WaitGroup
		ch := make(chan progress.ProgressUpdate, 4)

		wg.Add(1)
		go DisplayProgress(&wg, ch, 1, &buf)
		ch <- progress.ProgressUpdate{CalculatorIndex: 0, Value: 0.5}
		ch <- progress.ProgressUpdate{CalculatorIndex: 0, Value: 1.0}
		close(ch)
		wg.Wait()

		if !mock.started || !mock.stopped {
			t.Errorf("spinner started=%v stopped=%v, want both", mock.started, mock.stopped)
		}
		out := buf.String()
		if !strings.HasPrefix(out, "Progress: 100.00%") {
			t.Errorf("unexpected final line %q", out)
		}
	})

	t.Run("several calculators", func(t *testing.T) {
		withMockSpinner(t)
		var buf bytes.Buffer
		var wg sync.WaitGroup
		ch := make(chan progress.ProgressUpdate)

		wg.Add(1)
		go DisplayProgress(&wg, ch, 3, &buf)
		close(ch)
		wg.Wait()

		if !strings.HasPrefix(buf.String(), "Avg progress: 100.00%") {
			t.Errorf("unexpected final line %q", buf.String())
		}
	})

	t.Run("no calculators drains the channel", func(t *testing.T) {
		mock := withMockSpinner(t)
		var buf bytes.Buffer
		var wg sync.WaitGroup
		ch := make(chan progress.ProgressUpdate, 2)
		ch <- progress.ProgressUpdate{Value: 0.3}
		close(ch)

		wg.Add(1)
		DisplayProgress(&wg, ch, 0, &buf)
		wg.Wait()

		if mock.started {
			t.Error("spinner should not start without calculators")
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}
