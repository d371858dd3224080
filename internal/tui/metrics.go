package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/rangeprod/internal/format"
)

// sysHistory is the number of CPU and memory samples kept for sparklines.
const sysHistory = 40

// MetricsModel shows Go runtime memory statistics and system-wide CPU and
// memory usage with a short history.
type MetricsModel struct {
	mem    MemStatsMsg
	cpu    *history
	sysMem *history
	width  int
}

// NewMetricsModel creates an empty metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{cpu: newHistory(sysHistory), sysMem: newHistory(sysHistory)}
}

// SetWidth updates the width and the sparkline capacity.
func (m *MetricsModel) SetWidth(w int) {
	m.width = w
	if n := w - 24; n > 0 {
		m.cpu.setLimit(n)
		m.sysMem.setLimit(n)
	}
}

// UpdateMemStats stores the latest runtime snapshot.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg
}

// UpdateSysStats appends a system usage sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.push(msg.CPUPercent)
	m.sysMem.push(msg.MemPercent)
}

// Reset clears the history.
func (m *MetricsModel) Reset() {
	m.mem = MemStatsMsg{}
	m.cpu.reset()
	m.sysMem.reset()
}

// View renders the panel.
func (m MetricsModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Metrics"))
	fmt.Fprintf(&b, "\n%s %s",
		metricLabelStyle.Render("Heap:      "), metricValueStyle.Render(format.FormatBytes(m.mem.HeapAlloc)+" / "+format.FormatBytes(m.mem.Sys)))
	fmt.Fprintf(&b, "\n%s %s",
		metricLabelStyle.Render("GC:        "), metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6)))
	fmt.Fprintf(&b, "\n%s %s",
		metricLabelStyle.Render("Goroutines:"), metricValueStyle.Render(fmt.Sprint(m.mem.NumGoroutine)))
	fmt.Fprintf(&b, "\n%s %s %s",
		metricLabelStyle.Render("CPU:       "), metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.cpu.last())),
		cpuSparklineStyle.Render(RenderSparkline(m.cpu.values)))
	fmt.Fprintf(&b, "\n%s %s %s",
		metricLabelStyle.Render("Memory:    "), metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.sysMem.last())),
		memSparklineStyle.Render(RenderSparkline(m.sysMem.values)))

	style := panelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(b.String())
}
