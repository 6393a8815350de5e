package particle

// Collection is a fixed-size set of particles sharing one profile. Particles
// are recycled in place and never added or removed.
type Collection struct {
	Profile Profile
	Items   []Particle

	src *source
}

// Generate creates exactly max(amount, 0) particles for profile, spread over
// dims.
func Generate(profile Profile, amount int, dims Dimensions, opts ...Option) *Collection {
	o := options{
		palette:   DefaultPalette,
		snowColor: DefaultSnowColor,
	}
	WithSeed(0)(&o)
	for _, opt := range opts {
		opt(&o)
	}
	if len(profile) == 0 {
		profile = DefaultProfile
	}
	if amount < 0 {
		amount = 0
	}

	src := &source{
		kind:      profile.Primary(),
		bounds:    dims,
		rng:       o.rng,
		palette:   o.palette,
		snowColor: o.snowColor,
	}

	c := &Collection{
		Profile: profile,
		Items:   make([]Particle, amount),
		src:     src,
	}
	for i := range c.Items {
		src.create(&c.Items[i])
	}
	return c
}

func (c *Collection) Len() int { return len(c.Items) }

// Bounds returns the dimensions new spawns are placed in.
func (c *Collection) Bounds() Dimensions { return c.src.bounds }

// Resize changes where recycled particles spawn. Existing positions are not
// touched.
func (c *Collection) Resize(dims Dimensions) {
	c.src.bounds = dims
}
