package metrics

import (
	"time"

	"github.com/san-kum/snowfetti/internal/render"
)

// FrameTime is the mean time spent drawing a frame, in milliseconds.
type FrameTime struct {
	name    string
	sum     time.Duration
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{
		name: "frame_ms",
	}
}

func (f *FrameTime) Name() string {
	return f.name
}

func (f *FrameTime) OnFrame(s render.FrameStats) {
	f.sum += s.Elapsed
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.sum) / float64(f.samples) / float64(time.Millisecond)
}

func (f *FrameTime) Reset() {
	f.sum = 0
	f.samples = 0
}

// Throughput is particles drawn per second of draw time.
type Throughput struct {
	name      string
	particles int
	elapsed   time.Duration
}

func NewThroughput() *Throughput {
	return &Throughput{
		name: "particles_per_sec",
	}
}

func (t *Throughput) Name() string {
	return t.name
}

func (t *Throughput) OnFrame(s render.FrameStats) {
	t.particles += s.Particles
	t.elapsed += s.Elapsed
}

func (t *Throughput) Value() float64 {
	if t.elapsed <= 0 {
		return 0
	}
	return float64(t.particles) / t.elapsed.Seconds()
}

func (t *Throughput) Reset() {
	t.particles = 0
	t.elapsed = 0
}
