package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type recordingObserver struct {
	mu      sync.Mutex
	updates []ProgressUpdate
}

func (r *recordingObserver) Update(calcIndex int, progress float64) {
	r.mu.Lock()
	r.updates = append(r.updates, ProgressUpdate{CalculatorIndex: calcIndex, Value: progress})
	r.mu.Unlock()
}

func TestProgressSubject_FansOut(t *testing.T) {
	t.Parallel()
	a, b := &recordingObserver{}, &recordingObserver{}
	subject := NewProgressSubject(a)
	subject.Register(b)

	cb := subject.AsCallback(2)
	cb(0.25)
	cb(1.0)

	for name, r := range map[string]*recordingObserver{"a": a, "b": b} {
		if len(r.updates) != 2 {
			t.Fatalf("observer %s: expected 2 updates, got %d", name, len(r.updates))
		}
		if r.updates[1] != (ProgressUpdate{CalculatorIndex: 2, Value: 1.0}) {
			t.Errorf("observer %s: unexpected last update %+v", name, r.updates[1])
		}
	}
}

func TestProgressSubject_NilCallback(t *testing.T) {
	t.Parallel()
	var subject *ProgressSubject
	subject.AsCallback(0)(0.5) // must not panic
}

func TestChannelObserver_NonBlocking(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 1)
	obs := NewChannelObserver(ch)

	obs.Update(0, 0.5)
	obs.Update(0, 0.75) // dropped: channel full

	got := <-ch
	if got.Value != 0.5 {
		t.Errorf("expected first update to be kept, got %v", got.Value)
	}
	select {
	case extra := <-ch:
		t.Errorf("expected second update to be dropped, got %+v", extra)
	default:
	}
}

func TestChannelObserver_ClampsAndNil(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 1)
	NewChannelObserver(ch).Update(1, 1.7)
	if got := <-ch; got.Value != 1.0 {
		t.Errorf("expected clamped 1.0, got %v", got.Value)
	}
	NewChannelObserver(nil).Update(0, 0.5)
}

func TestLoggingObserver_Throttles(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	obs := NewLoggingObserver(zerolog.New(&buf).Level(zerolog.DebugLevel), 0.5)

	obs.Update(0, 0.1) // first: logged
	obs.Update(0, 0.2) // below threshold
	obs.Update(0, 0.7) // logged
	obs.Update(0, 1.0) // completion: logged
	obs.Update(0, 1.0) // already complete

	if n := strings.Count(buf.String(), "range product progress"); n != 3 {
		t.Errorf("expected 3 log lines, got %d:\n%s", n, buf.String())
	}
}
