package sim

// FPSCounter estimates frame rate over a rolling window of frame
// durations.
type FPSCounter struct {
	window []float64
	next   int
	filled int
	total  float64
}

func NewFPSCounter(frames int) *FPSCounter {
	if frames < 1 {
		frames = 1
	}
	return &FPSCounter{window: make([]float64, frames)}
}

// Observe records one frame duration in seconds. Zero and negative
// durations are ignored so a paused frame cannot skew the estimate.
func (f *FPSCounter) Observe(seconds float64) {
	if seconds <= 0 {
		return
	}
	f.total -= f.window[f.next]
	f.window[f.next] = seconds
	f.total += seconds
	f.next = (f.next + 1) % len(f.window)
	if f.filled < len(f.window) {
		f.filled++
	}
}

// Estimate returns frames per second over the window, or 0 before the
// first observation.
func (f *FPSCounter) Estimate() float64 {
	if f.filled == 0 || f.total <= 0 {
		return 0
	}
	return float64(f.filled) / f.total
}

// Reset clears the window.
func (f *FPSCounter) Reset() {
	for i := range f.window {
		f.window[i] = 0
	}
	f.next = 0
	f.filled = 0
	f.total = 0
}
