package sysmon

import (
	"runtime"
	"slices"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestDescribeCPU(t *testing.T) {
	info := DescribeCPU()
	if info.Logical < 1 {
		t.Errorf("Logical = %d, want >= 1", info.Logical)
	}
	if info.Physical > info.Logical {
		t.Errorf("Physical (%d) exceeds Logical (%d)", info.Physical, info.Logical)
	}
}

func TestCPUFeatures_KnownNames(t *testing.T) {
	known := []string{"sse4.2", "avx", "avx2", "avx512f", "bmi2", "adx", "asimd", "sve", "atomics"}
	for _, f := range CPUFeatures() {
		if !slices.Contains(known, f) {
			t.Errorf("unexpected feature %q on %s", f, runtime.GOARCH)
		}
	}
}
