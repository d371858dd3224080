package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/rangeprod/internal/cli"
	"github.com/agbru/rangeprod/internal/format"
	"github.com/agbru/rangeprod/internal/orchestration"
)

// maxResultEntries bounds the results log.
const maxResultEntries = 50

// CalculatorsModel shows one progress bar per calculator followed by a log
// of results and errors.
type CalculatorsModel struct {
	names    []string
	progress []float64
	status   []string
	average  float64
	eta      time.Duration
	entries  []string
	width    int
	height   int
}

// NewCalculatorsModel creates the panel for the named calculators.
func NewCalculatorsModel(names []string) CalculatorsModel {
	return CalculatorsModel{
		names:    names,
		progress: make([]float64, len(names)),
		status:   make([]string, len(names)),
	}
}

// SetSize updates dimensions.
func (c *CalculatorsModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// Reset clears progress and results for a restart.
func (c *CalculatorsModel) Reset() {
	c.progress = make([]float64, len(c.names))
	c.status = make([]string, len(c.names))
	c.average, c.eta = 0, 0
	c.entries = nil
}

// UpdateProgress applies one progress message. Out-of-range indices are
// ignored.
func (c *CalculatorsModel) UpdateProgress(msg ProgressMsg) {
	if msg.CalculatorIndex < 0 || msg.CalculatorIndex >= len(c.progress) {
		return
	}
	c.progress[msg.CalculatorIndex] = msg.Value
	c.average = msg.AverageProgress
	c.eta = msg.ETA
}

// AddResults records the status of each calculator.
func (c *CalculatorsModel) AddResults(results []orchestration.CalculationResult) {
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(c.status) {
			continue
		}
		if r.Err != nil {
			c.status[r.Index] = errorStyle.Render("failed")
			c.addEntry(errorStyle.Render(fmt.Sprintf("%s: %v", r.Name, r.Err)))
			continue
		}
		c.progress[r.Index] = 1
		c.status[r.Index] = successStyle.Render(format.FormatExecutionDuration(r.Duration))
	}
}

// AddFinalResult logs the representative result.
func (c *CalculatorsModel) AddFinalResult(msg FinalResultMsg) {
	if msg.Result.Result == nil {
		return
	}
	c.average = 1
	c.addEntry(successStyle.Render(cli.FormatResultLine(msg.Result.Result, false)))
	c.addEntry(dimStyle.Render(fmt.Sprintf("from %s in %s", msg.Result.Name, format.FormatExecutionDuration(msg.Result.Duration))))
}

// AddError logs a failed run.
func (c *CalculatorsModel) AddError(msg ErrorMsg) {
	c.addEntry(errorStyle.Render(fmt.Sprintf("Error after %s: %v", format.FormatExecutionDuration(msg.Duration), msg.Err)))
}

func (c *CalculatorsModel) addEntry(s string) {
	c.entries = append(c.entries, s)
	if len(c.entries) > maxResultEntries {
		c.entries = c.entries[len(c.entries)-maxResultEntries:]
	}
}

// View renders the panel.
func (c CalculatorsModel) View() string {
	nameWidth := 0
	for _, n := range c.names {
		nameWidth = max(nameWidth, len(n))
	}
	barWidth := max(c.width-nameWidth-28, 10)

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Calculators"))
	for i, n := range c.names {
		fmt.Fprintf(&b, "\n%-*s %s %6.2f%% %s", nameWidth, n, renderBar(c.progress[i], barWidth), c.progress[i]*100, c.status[i])
	}
	fmt.Fprintf(&b, "\n%s %6.2f%%  ETA %s",
		dimStyle.Render(fmt.Sprintf("%-*s", nameWidth, "Average")), c.average*100, format.FormatETA(c.eta))

	if len(c.entries) > 0 {
		b.WriteString("\n\n" + panelTitleStyle.Render("Results"))
		entries := c.entries
		// Borders, title, bars, average line and spacing take len(names)+6 rows.
		if room := c.height - len(c.names) - 6; room > 0 && len(entries) > room {
			entries = entries[len(entries)-room:]
		}
		for _, e := range entries {
			b.WriteString("\n" + e)
		}
	}

	style := panelStyle
	if c.width > 2 {
		style = style.Width(c.width - 2)
	}
	return style.Render(b.String())
}

func renderBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return barFilledStyle.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
