package tui

// sparkBlocks are the eight block heights of a sparkline, lowest first.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// history is a sliding window over the most recent samples.
type history struct {
	values []float64
	limit  int
}

func newHistory(limit int) *history {
	return &history{limit: max(limit, 1)}
}

// push appends v and drops the oldest samples beyond the limit.
func (h *history) push(v float64) {
	h.values = append(h.values, v)
	h.trim()
}

// setLimit changes the window size, keeping the newest samples.
func (h *history) setLimit(n int) {
	h.limit = max(n, 1)
	h.trim()
}

func (h *history) trim() {
	if extra := len(h.values) - h.limit; extra > 0 {
		h.values = append(h.values[:0], h.values[extra:]...)
	}
}

// last returns the newest sample, or 0 when empty.
func (h *history) last() float64 {
	if len(h.values) == 0 {
		return 0
	}
	return h.values[len(h.values)-1]
}

func (h *history) reset() { h.values = h.values[:0] }

// RenderSparkline draws percentages (0..100) as block characters, oldest
// first. Out-of-range values are clamped.
func RenderSparkline(values []float64) string {
	out := make([]rune, len(values))
	top := len(sparkBlocks) - 1
	for i, v := range values {
		v = min(max(v, 0), 100)
		out[i] = sparkBlocks[int(v/100*float64(top))]
	}
	return string(out)
}
