// Package metrics samples Go runtime memory statistics around a computation.
package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of runtime.MemStats.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes of live heap objects
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // bytes obtained from the OS
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	NumGoroutine int
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics. It briefly stops the world.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		NumGoroutine: runtime.NumGoroutine(),
	}
}

// RunStats summarizes the memory activity between two snapshots.
type RunStats struct {
	PeakHeap     uint64 // larger of the two heap readings
	Allocated    uint64 // bytes allocated in between
	GCCycles     uint32
	PauseTotalNs uint64
}

// Between computes the activity from before to after.
func Between(before, after MemorySnapshot) RunStats {
	return RunStats{
		PeakHeap:     max(before.HeapAlloc, after.HeapAlloc),
		Allocated:    after.TotalAlloc - before.TotalAlloc,
		GCCycles:     after.NumGC - before.NumGC,
		PauseTotalNs: after.PauseTotalNs - before.PauseTotalNs,
	}
}
