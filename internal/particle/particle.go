package particle

import (
	"math/rand"
	"time"
)

// Dimensions bound spawn coordinates, in surface pixels.
type Dimensions struct {
	Width, Height float64
}

// Particle is a single decorative particle. Position and velocity are in
// surface pixels per frame.
type Particle struct {
	X, Y           float64
	DeltaX, DeltaY float64
	Color          string
	Radius         float64
	Opacity        float64
	DeltaOpacity   float64

	baseOpacity float64
	fading      bool
	src         *source
}

// Init recycles the particle to a fresh spawn point on the top edge. Color
// and radius are kept.
func (p *Particle) Init() {
	if p.src == nil {
		p.Y = -p.Radius
		return
	}
	p.src.respawn(p)
}

// Kind reports the kind the particle was created for.
func (p *Particle) Kind() Kind {
	if p.src == nil {
		return DefaultProfile[0]
	}
	return p.src.kind
}

// source holds what a particle needs to recycle itself. It is shared by all
// particles of one collection.
type source struct {
	kind      Kind
	bounds    Dimensions
	rng       *rand.Rand
	palette   []string
	snowColor string
}

func (s *source) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// create fills every attribute, placing the particle anywhere inside bounds.
func (s *source) create(p *Particle) {
	p.src = s
	switch s.kind {
	case Confetti:
		p.Color = s.palette[s.rng.Intn(len(s.palette))]
		p.Radius = s.uniform(1.0, 2.5)
		p.DeltaOpacity = s.uniform(0.01, 0.04)
	default:
		p.Color = s.snowColor
		p.Radius = s.uniform(0.5, 2.0)
		p.DeltaOpacity = 0
	}
	s.respawn(p)
	p.Y = s.rng.Float64() * s.bounds.Height
	if s.kind == Confetti {
		p.Opacity = s.rng.Float64()
	}
}

func (s *source) respawn(p *Particle) {
	p.X = s.rng.Float64() * s.bounds.Width
	p.Y = -p.Radius
	p.fading = false
	switch s.kind {
	case Confetti:
		p.DeltaX = s.uniform(-1.0, 1.0)
		p.DeltaY = s.uniform(1.0, 2.5)
		p.Opacity = 0
	default:
		p.DeltaX = s.uniform(-0.5, 0.5)
		p.DeltaY = s.uniform(0.5, 1.5)
		p.Opacity = s.uniform(0.4, 1.0)
	}
	p.baseOpacity = p.Opacity
}

// DefaultPalette is used for confetti when no palette option is given.
var DefaultPalette = []string{"#f94144", "#f8961e", "#f9c74f", "#90be6d", "#43aa8b", "#577590", "#9b5de5"}

// DefaultSnowColor is the snow fill style.
const DefaultSnowColor = "#ffffff"

type options struct {
	rng       *rand.Rand
	palette   []string
	snowColor string
}

type Option func(*options)

// WithRand makes generation use r. The collection keeps using r for recycling.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithSeed seeds a private random source. A zero seed uses the clock.
func WithSeed(seed int64) Option {
	return func(o *options) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		o.rng = rand.New(rand.NewSource(seed))
	}
}

func WithPalette(colors []string) Option {
	return func(o *options) {
		if len(colors) > 0 {
			o.palette = colors
		}
	}
}

func WithSnowColor(color string) Option {
	return func(o *options) {
		if color != "" {
			o.snowColor = color
		}
	}
}
