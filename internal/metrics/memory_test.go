package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
	if snap.NumGoroutine < 1 {
		t.Error("NumGoroutine should be >= 1")
	}
}

var sink []byte

func TestBetween(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()
	sink = make([]byte, 1<<20)
	after := mc.Snapshot()

	stats := Between(before, after)
	if stats.Allocated < 1<<20 {
		t.Errorf("Allocated = %d, want at least 1 MiB", stats.Allocated)
	}
	if stats.PeakHeap < before.HeapAlloc || stats.PeakHeap < after.HeapAlloc {
		t.Errorf("PeakHeap = %d below a reading", stats.PeakHeap)
	}
}
