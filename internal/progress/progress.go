// Package progress carries progress updates from running calculators to the
// presentation layers. Calculators report a normalized value per calculator
// index; observers forward those values to a channel, a log, or both.
package progress

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ProgressUpdate is a progress report for one calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator that sent the update.
	CalculatorIndex int
	// Value is the fraction of the range processed so far (0.0 to 1.0).
	Value float64
}

// ProgressCallback receives normalized progress values. Implementations must
// be safe for concurrent use: every worker goroutine of a computation calls it.
type ProgressCallback func(progress float64)

// ProgressObserver receives progress updates from a ProgressSubject.
type ProgressObserver interface {
	Update(calcIndex int, progress float64)
}

// ProgressSubject fans progress updates out to registered observers.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates a subject with the given observers.
func NewProgressSubject(observers ...ProgressObserver) *ProgressSubject {
	return &ProgressSubject{observers: observers}
}

// Register adds an observer.
func (s *ProgressSubject) Register(o ProgressObserver) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Notify delivers a progress value to every observer.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(calcIndex, progress)
	}
}

// AsCallback binds the subject to a calculator index.
func (s *ProgressSubject) AsCallback(calcIndex int) ProgressCallback {
	if s == nil {
		return func(float64) {}
	}
	return func(p float64) { s.Notify(calcIndex, p) }
}

// ChannelObserver forwards updates to a channel without blocking. When the
// channel is full the update is dropped; the next one supersedes it anyway.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer sending to ch. A nil channel
// discards updates.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update sends the clamped value to the channel if there is room.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.channel == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}
	select {
	case o.channel <- ProgressUpdate{CalculatorIndex: calcIndex, Value: progress}:
	default:
	}
}

// LoggingObserver logs progress at debug level, at most once per threshold
// step per calculator.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	mu        sync.Mutex
	lastLog   map[int]float64
}

// NewLoggingObserver creates a throttled logging observer. A non-positive
// threshold defaults to 0.1 (every 10%).
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update logs the value when it moved by at least the threshold, and always
// on completion.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last, seen := o.lastLog[calcIndex]
	if seen && progress < 1.0 && progress-last < o.threshold {
		return
	}
	if seen && last >= 1.0 {
		return
	}
	o.logger.Debug().
		Int("calculator", calcIndex).
		Float64("progress", progress).
		Str("percent", fmt.Sprintf("%.1f%%", progress*100)).
		Msg("range product progress")
	o.lastLog[calcIndex] = progress
}
