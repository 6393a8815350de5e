package render

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/snowfetti/internal/particle"
)

// DriftGain amplifies the drift scalar before it is added to every
// particle's horizontal velocity.
const DriftGain = 1.33

type State int

const (
	Mounted State = iota
	Unmounted
)

func (s State) String() string {
	switch s {
	case Mounted:
		return "mounted"
	case Unmounted:
		return "unmounted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// FrameStats summarizes one drawn frame.
type FrameStats struct {
	Frame     int
	Particles int
	Recycled  int
	Elapsed   time.Duration
}

// Observer is notified after every drawn frame.
type Observer interface {
	OnFrame(s FrameStats)
}

// Config describes the particle collection a loop creates at mount.
type Config struct {
	Profile particle.Profile
	Amount  int
	// Width and Height size the surface; zero keeps the surface's own size.
	Width, Height int
	Drift         float64
	Seed          int64
	Palette       []string
	SnowColor     string
}

// Loop owns a drawing context and a particle collection and redraws the
// collection once per scheduled frame until stopped.
type Loop struct {
	surface   Surface
	ctx       Context
	scheduler Scheduler
	logger    *slog.Logger
	observers []Observer

	particles *particle.Collection
	rule      particle.OpacityRule
	width     float64
	height    float64
	drift     float64
	state     State
	frames    int
}

type LoopOption func(*Loop)

func WithLogger(l *slog.Logger) LoopOption {
	return func(lp *Loop) {
		if l != nil {
			lp.logger = l
		}
	}
}

func WithObserver(o Observer) LoopOption {
	return func(lp *Loop) { lp.observers = append(lp.observers, o) }
}

// Mount acquires the surface's drawing context, sizes the surface, creates
// the particle collection and schedules the first frame. Surfaces report a
// nil receiver through Context, so a typed nil fails with ErrNoContext too.
func Mount(surface Surface, scheduler Scheduler, cfg Config, opts ...LoopOption) (*Loop, error) {
	if surface == nil {
		return nil, ErrNoContext
	}
	ctx, err := surface.Context()
	if errors.Is(err, ErrNoContext) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContext, err)
	}
	if ctx == nil {
		return nil, ErrNoContext
	}

	w, h := cfg.Width, cfg.Height
	if w == 0 || h == 0 {
		sw, sh := surface.Size()
		if w == 0 {
			w = sw
		}
		if h == 0 {
			h = sh
		}
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	surface.Resize(w, h)

	l := &Loop{
		surface:   surface,
		ctx:       ctx,
		scheduler: scheduler,
		logger:    slog.New(slog.DiscardHandler),
		width:     float64(w),
		height:    float64(h),
		drift:     cfg.Drift,
		state:     Mounted,
	}
	for _, opt := range opts {
		opt(l)
	}

	profile := cfg.Profile
	if len(profile) == 0 {
		profile = particle.DefaultProfile
	}
	l.rule = profile.Primary().Rule()
	l.particles = particle.Generate(profile, cfg.Amount,
		particle.Dimensions{Width: l.width, Height: l.height},
		particle.WithSeed(cfg.Seed),
		particle.WithPalette(cfg.Palette),
		particle.WithSnowColor(cfg.SnowColor),
	)

	l.logger.Info("overlay mounted",
		"profile", profile.Strings(),
		"amount", l.particles.Len(),
		"width", w,
		"height", h)

	l.Animate(l.particles)
	return l, nil
}

// Animate requests that particles be drawn on the next frame.
func (l *Loop) Animate(particles *particle.Collection) {
	l.scheduler.RequestFrame(func() { l.Draw(particles) })
}

// Draw renders one frame: clear, then advance, restyle, draw and recycle
// each particle in order, then schedule the next frame.
func (l *Loop) Draw(particles *particle.Collection) {
	if l.state != Mounted {
		return
	}
	start := time.Now()

	l.ctx.ClearRect(0, 0, l.width, l.height)

	recycled := 0
	dx := DriftGain * l.drift
	for i := range particles.Items {
		p := &particles.Items[i]

		p.X += p.DeltaX + dx
		p.Y += p.DeltaY

		l.rule(p)

		l.ctx.SetFillStyle(p.Color)
		l.ctx.SetGlobalAlpha(p.Opacity)

		l.ctx.BeginPath()
		l.ctx.Arc(p.X, p.Y, p.Radius, 0, 2*math.Pi, true)
		l.ctx.Fill()
		l.ctx.ClosePath()

		if p.Y > l.height {
			p.Init()
			recycled++
		}
	}

	l.frames++
	stats := FrameStats{
		Frame:     l.frames,
		Particles: particles.Len(),
		Recycled:  recycled,
		Elapsed:   time.Since(start),
	}
	for _, o := range l.observers {
		o.OnFrame(stats)
	}

	if l.state == Mounted {
		l.Animate(particles)
	}
}

// Stop unmounts the loop. Frames already requested return without drawing.
func (l *Loop) Stop() {
	if l.state == Unmounted {
		return
	}
	l.state = Unmounted
	l.logger.Info("overlay unmounted", "frames", l.frames)
}

// Resize updates the surface and the clear/recycle bounds. Particles keep
// their positions; new spawns use the new width.
func (l *Loop) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	l.surface.Resize(w, h)
	l.width, l.height = float64(w), float64(h)
	l.particles.Resize(particle.Dimensions{Width: l.width, Height: l.height})
	l.logger.Debug("surface resized", "width", w, "height", h)
	return nil
}

func (l *Loop) SetDrift(d float64) { l.drift = d }
func (l *Loop) Drift() float64     { return l.drift }

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) Particles() *particle.Collection { return l.particles }
func (l *Loop) State() State                    { return l.state }
func (l *Loop) Running() bool                   { return l.state == Mounted }
func (l *Loop) Frames() int                     { return l.frames }

// Size returns the loop's current surface dimensions.
func (l *Loop) Size() (w, h int) { return int(l.width), int(l.height) }
