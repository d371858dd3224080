package tui

import (
	"github.com/charmbracelet/bubbles/help"
)

// FooterModel shows the run status and the key bindings.
type FooterModel struct {
	help   help.Model
	keys   KeyMap
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a footer describing keys.
func NewFooterModel(keys KeyMap) FooterModel {
	h := help.New()
	h.Styles.ShortKey = accentStyle
	h.Styles.FullKey = accentStyle
	h.Styles.ShortDesc = dimStyle
	h.Styles.FullDesc = dimStyle
	return FooterModel{help: h, keys: keys}
}

// SetPaused sets the paused flag.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone sets the finished flag.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError sets the failed flag.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// ToggleHelp switches between the short and full help.
func (f *FooterModel) ToggleHelp() { f.help.ShowAll = !f.help.ShowAll }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// Status returns the status label without styling.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch f.Status() {
	case "ERROR":
		status = statusErrorStyle.Render("ERROR")
	case "DONE":
		status = statusDoneStyle.Render("DONE")
	case "PAUSED":
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}
	return " " + status + "  " + f.help.View(f.keys)
}
