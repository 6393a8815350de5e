package metrics

import "github.com/san-kum/snowfetti/internal/render"

// Metric is a render.Observer that reduces frames to a single value.
type Metric interface {
	render.Observer
	Name() string
	Value() float64
	Reset()
}

// Set fans frames out to several metrics.
type Set []Metric

func (s Set) OnFrame(st render.FrameStats) {
	for _, m := range s {
		m.OnFrame(st)
	}
}

// Values returns every metric keyed by name.
func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Default returns the metrics reported for every session.
func Default() Set {
	return Set{NewFrameTime(), NewRecycleRate(), NewThroughput()}
}
