package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates derived from very slow progress rates.
const maxETA = 24 * time.Hour

// ProgressState keeps the latest progress value of each calculator. It is
// not safe for concurrent use; a single display goroutine owns it.
type ProgressState struct {
	values []float64
}

// NewProgressState tracks n calculators.
func NewProgressState(n int) *ProgressState {
	return &ProgressState{values: make([]float64, max(n, 0))}
}

// Update records value for calculator index. Out-of-range indices are
// ignored.
func (s *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(s.values) {
		s.values[index] = value
	}
}

// CalculateAverage returns the mean progress, 0 when nothing is tracked.
func (s *ProgressState) CalculateAverage() float64 {
	if len(s.values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.values {
		sum += v
	}
	return sum / float64(len(s.values))
}

// ProgressWithETA adds a smoothed completion-time estimate to ProgressState.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	rate         float64 // progress per second, exponentially smoothed
}

// NewProgressWithETA tracks n calculators starting now.
func NewProgressWithETA(n int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(n),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records value for index and returns the mean progress and
// the estimated remaining time (0 while no estimate is available yet).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()
	now := time.Now()

	elapsed := now.Sub(p.startTime)
	if elapsed < 100*time.Millisecond || avg <= 0.001 {
		p.lastUpdate, p.lastProgress = now, avg
		return avg, 0
	}

	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0.05 {
		if delta := avg - p.lastProgress; delta > 0 {
			if p.rate > 0 {
				p.rate = 0.7*p.rate + 0.3*(delta/dt)
			} else {
				p.rate = avg / elapsed.Seconds()
			}
		}
		p.lastUpdate, p.lastProgress = now, avg
	}
	return avg, p.eta(avg)
}

// GetETA returns the current estimate without recording anything.
func (p *ProgressWithETA) GetETA() time.Duration {
	return p.eta(p.CalculateAverage())
}

func (p *ProgressWithETA) eta(avg float64) time.Duration {
	if p.rate <= 0 || avg >= 1.0 {
		return 0
	}
	return min(time.Duration((1.0-avg)/p.rate*float64(time.Second)), maxETA)
}

// ProgressBar renders progress (clamped to [0, 1]) as a bar of width cells.
func ProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatProgressBarWithETA renders "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, ProgressBar(progress, width), FormatETA(eta))
}
