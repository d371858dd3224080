package tui

import (
	"fmt"
	"time"

	"github.com/agbru/rangeprod/internal/format"
	"github.com/agbru/rangeprod/internal/product"
)

// HeaderModel renders the top bar: title, version, range and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	req       product.Request
	width     int
}

// NewHeaderModel creates a header for req.
func NewHeaderModel(version string, req product.Request) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version, req: req}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the running or frozen duration.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "Range Product Monitor"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	rng := fmt.Sprintf("%s x%d %s", product.Interval{Lo: h.req.Start, Hi: h.req.End}, h.req.Threads, h.req.Policy)
	elapsed := "Elapsed: " + format.FormatExecutionDuration(h.Elapsed())

	row := titleStyle.Render(title) + pipe + accentStyle.Render(rng) + pipe + accentStyle.Render(elapsed)
	return headerStyle.Width(max(h.width, 0)).Render(row)
}
