// Package tui implements the -tui dashboard: a bubbletea program showing one
// progress bar per calculator, the results as they arrive, and live runtime
// and system metrics. Calculations run through the orchestration package;
// the bridge types forward its progress and results as tea messages.
package tui
