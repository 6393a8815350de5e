package metrics

import "github.com/san-kum/snowfetti/internal/render"

// RecycleRate is the fraction of particle updates that ended in a respawn.
type RecycleRate struct {
	name     string
	recycled int
	updates  int
}

func NewRecycleRate() *RecycleRate {
	return &RecycleRate{
		name: "recycle_rate",
	}
}

func (r *RecycleRate) Name() string {
	return r.name
}

func (r *RecycleRate) OnFrame(s render.FrameStats) {
	r.recycled += s.Recycled
	r.updates += s.Particles
}

func (r *RecycleRate) Value() float64 {
	if r.updates == 0 {
		return 0
	}
	return float64(r.recycled) / float64(r.updates)
}

func (r *RecycleRate) Reset() {
	r.recycled = 0
	r.updates = 0
}
