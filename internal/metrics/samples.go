package metrics

import (
	"time"

	"github.com/san-kum/snowfetti/internal/render"
)

// FrameSample is one recorded frame.
type FrameSample struct {
	Frame    int
	Elapsed  time.Duration
	Recycled int
}

// FrameTimes keeps the most recent frames, up to a capacity.
type FrameTimes struct {
	capacity int
	samples  []FrameSample
}

// NewFrameTimes records up to capacity samples; zero or less keeps all.
func NewFrameTimes(capacity int) *FrameTimes {
	return &FrameTimes{capacity: capacity}
}

func (f *FrameTimes) OnFrame(s render.FrameStats) {
	f.samples = append(f.samples, FrameSample{Frame: s.Frame, Elapsed: s.Elapsed, Recycled: s.Recycled})
	if f.capacity > 0 && len(f.samples) > f.capacity {
		f.samples = f.samples[len(f.samples)-f.capacity:]
	}
}

func (f *FrameTimes) Samples() []FrameSample {
	return f.samples
}

// Millis returns frame times in milliseconds, for plotting.
func (f *FrameTimes) Millis() []float64 {
	out := make([]float64, len(f.samples))
	for i, s := range f.samples {
		out[i] = float64(s.Elapsed) / float64(time.Millisecond)
	}
	return out
}
