// Package sysmon samples system-wide CPU and memory usage and describes the
// host CPU.
package sysmon

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
)

// Stats is one snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a CPU and memory snapshot. CPU usage is the delta since
// the previous call. Readings that fail are left at zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// CPUInfo describes the host processor.
type CPUInfo struct {
	Model    string
	Physical int
	Logical  int
	Features []string
}

// DescribeCPU gathers the CPU model and core counts from gopsutil, falling
// back to runtime.NumCPU, and the relevant instruction set extensions.
func DescribeCPU() CPUInfo {
	info := CPUInfo{Logical: runtime.NumCPU(), Features: CPUFeatures()}
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		info.Physical = n
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.Logical = n
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.Model = strings.TrimSpace(infos[0].ModelName)
	}
	return info
}

// CPUFeatures lists the SIMD and multiply extensions detected at startup.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(xcpu.X86.HasSSE42, "sse4.2")
		add(xcpu.X86.HasAVX, "avx")
		add(xcpu.X86.HasAVX2, "avx2")
		add(xcpu.X86.HasAVX512F, "avx512f")
		add(xcpu.X86.HasBMI2, "bmi2")
		add(xcpu.X86.HasADX, "adx")
	case "arm64":
		add(xcpu.ARM64.HasASIMD, "asimd")
		add(xcpu.ARM64.HasSVE, "sve")
		add(xcpu.ARM64.HasATOMICS, "atomics")
	}
	return features
}
