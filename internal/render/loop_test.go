package render_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/snowfetti/internal/particle"
	"github.com/san-kum/snowfetti/internal/render"
)

var _ = Describe("Loop", func() {
	var (
		ctx     *recordingContext
		surface *fakeSurface
		queue   *render.FrameQueue
	)

	BeforeEach(func() {
		ctx = &recordingContext{}
		surface = &fakeSurface{ctx: ctx, w: 800, h: 600}
		queue = render.NewFrameQueue()
	})

	mount := func(cfg render.Config) *render.Loop {
		if cfg.Seed == 0 {
			cfg.Seed = 1
		}
		loop, err := render.Mount(surface, queue, cfg)
		Expect(err).NotTo(HaveOccurred())
		return loop
	}

	Describe("Mount", func() {
		It("generates the configured amount and schedules one frame", func() {
			loop := mount(render.Config{Amount: 100})
			Expect(loop.Particles().Len()).To(Equal(100))
			Expect(loop.State()).To(Equal(render.Mounted))
			Expect(queue.Pending()).To(Equal(1))
			Expect(ctx.ops).To(BeEmpty())
		})

		It("treats a negative amount as zero particles", func() {
			loop := mount(render.Config{Amount: -3})
			Expect(loop.Particles().Len()).To(BeZero())
		})

		It("sizes the surface from the config", func() {
			loop := mount(render.Config{Amount: 1, Width: 320, Height: 200})
			Expect(surface.w).To(Equal(320))
			Expect(surface.h).To(Equal(200))
			w, h := loop.Size()
			Expect([]int{w, h}).To(Equal([]int{320, 200}))
		})

		It("falls back to the surface size", func() {
			loop := mount(render.Config{Amount: 1})
			w, h := loop.Size()
			Expect([]int{w, h}).To(Equal([]int{800, 600}))
		})

		It("fails when the surface has no drawing context", func() {
			surface.err = errNoCanvas
			_, err := render.Mount(surface, queue, render.Config{Amount: 1})
			Expect(err).To(MatchError(render.ErrNoContext))
			Expect(queue.Pending()).To(BeZero())
		})

		It("fails for a nil surface", func() {
			_, err := render.Mount(nil, queue, render.Config{Amount: 1})
			Expect(err).To(MatchError(render.ErrNoContext))

			var missing *fakeSurface
			_, err = render.Mount(missing, queue, render.Config{Amount: 1})
			Expect(err).To(Equal(render.ErrNoContext))
			Expect(queue.Pending()).To(BeZero())
		})

		It("fails when the context is nil", func() {
			surface.ctx = nil
			_, err := render.Mount(surface, queue, render.Config{Amount: 1})
			Expect(err).To(MatchError(render.ErrNoContext))
		})

		It("rejects an empty surface", func() {
			surface.w, surface.h = 0, 0
			_, err := render.Mount(surface, queue, render.Config{Amount: 1})
			Expect(err).To(MatchError(render.ErrInvalidSize))
		})
	})

	Describe("Draw", func() {
		It("clears the whole surface and reschedules for an empty collection", func() {
			mount(render.Config{Amount: 0})
			Expect(queue.Flush()).To(Equal(1))
			Expect(ctx.ops).To(Equal([]string{"clear 0 0 800 600"}))
			Expect(queue.Pending()).To(Equal(1))
		})

		It("clears before drawing any particle and issues one arc per particle", func() {
			mount(render.Config{Amount: 3})
			queue.Flush()
			Expect(ctx.ops[0]).To(Equal("clear 0 0 800 600"))
			Expect(ctx.ops[1:]).To(HaveLen(3 * 6))
			Expect(ctx.ops[1:7]).To(Equal([]string{
				"fill-style " + particle.DefaultSnowColor, "alpha", "begin", "arc", "fill", "close",
			}))

			ctx.reset()
			queue.Flush()
			Expect(ctx.ops[0]).To(HavePrefix("clear"))
			Expect(ctx.arcs).To(HaveLen(3))
		})

		It("advances position by velocity plus amplified drift", func() {
			loop := mount(render.Config{Amount: 1, Drift: 2})
			p := &loop.Particles().Items[0]
			p.X, p.Y, p.DeltaX, p.DeltaY = 100, 100, 0.5, 3

			queue.Flush()
			Expect(p.X).To(BeNumerically("~", 100+0.5+render.DriftGain*2, 1e-9))
			Expect(p.Y).To(BeNumerically("~", 103, 1e-9))
			Expect(ctx.arcs[0]).To(Equal([2]float64{p.X, p.Y}))
		})

		It("uses the drift set between frames", func() {
			loop := mount(render.Config{Amount: 1})
			p := &loop.Particles().Items[0]
			p.X, p.Y, p.DeltaX, p.DeltaY = 10, 10, 0, 0

			loop.SetDrift(-1)
			Expect(loop.Drift()).To(Equal(-1.0))
			queue.Flush()
			Expect(p.X).To(BeNumerically("~", 10-render.DriftGain, 1e-9))
		})

		It("recycles a particle that falls past the bottom edge", func() {
			loop := mount(render.Config{Amount: 1})
			p := &loop.Particles().Items[0]
			p.X, p.Y, p.DeltaX, p.DeltaY = 400, 598, 0, 5

			queue.Flush()
			Expect(ctx.arcs[0][1]).To(BeNumerically("~", 603, 1e-9))
			Expect(p.Y).To(BeNumerically("<=", 0))
			Expect(p.Y).NotTo(Equal(603.0))
		})

		It("does not recycle at the horizontal edges", func() {
			loop := mount(render.Config{Amount: 1})
			p := &loop.Particles().Items[0]
			p.X, p.Y, p.DeltaX, p.DeltaY = 799, 10, 5, 0

			queue.Flush()
			Expect(p.X).To(BeNumerically("~", 804, 1e-9))
			Expect(p.Y).To(BeNumerically("~", 10, 1e-9))
		})

		It("keeps every particle within a bounded band in steady state", func() {
			loop := mount(render.Config{Amount: 50})
			for i := 0; i < 1000; i++ {
				queue.Flush()
			}
			for _, p := range loop.Particles().Items {
				Expect(p.Y).To(BeNumerically("<=", 600))
			}
		})

		It("holds snow opacity exactly", func() {
			loop := mount(render.Config{Amount: 10, Profile: particle.Profile{particle.Snow}})
			before := make([]float64, 10)
			for i, p := range loop.Particles().Items {
				before[i] = p.Opacity
			}
			queue.Flush()
			for i, p := range loop.Particles().Items {
				if p.Y >= 0 {
					Expect(p.Opacity).To(Equal(before[i]))
				}
			}
			Expect(ctx.alphas).To(Equal(before))
		})

		It("oscillates confetti opacity as a triangle wave", func() {
			loop := mount(render.Config{Amount: 1, Profile: particle.Profile{particle.Confetti}})
			p := &loop.Particles().Items[0]
			p.Y, p.DeltaY, p.Opacity, p.DeltaOpacity = 0, 0, 0, 0.125

			for i := 0; i < 8; i++ {
				queue.Flush()
			}
			Expect(p.Opacity).To(Equal(1.0))
			for i := 0; i < 8; i++ {
				queue.Flush()
			}
			Expect(p.Opacity).To(BeNumerically("<=", 0))
		})

		It("reports frame statistics to observers", func() {
			obs := &countingObserver{}
			loop, err := render.Mount(surface, queue, render.Config{Amount: 2, Seed: 3}, render.WithObserver(obs))
			Expect(err).NotTo(HaveOccurred())
			loop.Particles().Items[0].Y = 700
			loop.Particles().Items[1].Y = 10

			queue.Flush()
			queue.Flush()
			Expect(obs.stats).To(HaveLen(2))
			Expect(obs.stats[0].Frame).To(Equal(1))
			Expect(obs.stats[0].Particles).To(Equal(2))
			Expect(obs.stats[0].Recycled).To(Equal(1))
			Expect(loop.Frames()).To(Equal(2))
		})
	})

	Describe("Stop", func() {
		It("stops drawing and rescheduling", func() {
			loop := mount(render.Config{Amount: 5})
			queue.Flush()
			loop.Stop()
			Expect(loop.Running()).To(BeFalse())

			ctx.reset()
			queue.Flush()
			Expect(ctx.ops).To(BeEmpty())
			Expect(queue.Pending()).To(BeZero())
		})

		It("is idempotent", func() {
			loop := mount(render.Config{Amount: 1})
			loop.Stop()
			loop.Stop()
			Expect(loop.State()).To(Equal(render.Unmounted))
			Expect(loop.State().String()).To(Equal("unmounted"))
		})

		It("takes effect when called from an observer mid-run", func() {
			var loop *render.Loop
			stopper := observerFunc(func(s render.FrameStats) {
				if s.Frame == 3 {
					loop.Stop()
				}
			})
			var err error
			loop, err = render.Mount(surface, queue, render.Config{Amount: 1, Seed: 1}, render.WithObserver(stopper))
			Expect(err).NotTo(HaveOccurred())

			Expect(queue.Run(context.Background(), 0, 10)).To(Succeed())
			Expect(loop.Frames()).To(Equal(3))
		})
	})

	Describe("Resize", func() {
		It("resizes the surface without moving particles", func() {
			loop := mount(render.Config{Amount: 20})
			before := make([]particle.Particle, 20)
			copy(before, loop.Particles().Items)

			Expect(loop.Resize(400, 300)).To(Succeed())
			Expect(surface.w).To(Equal(400))
			Expect(surface.h).To(Equal(300))
			for i, p := range loop.Particles().Items {
				Expect(p.X).To(Equal(before[i].X))
				Expect(p.Y).To(Equal(before[i].Y))
			}

			queue.Flush()
			Expect(ctx.ops[0]).To(Equal("clear 0 0 400 300"))
			Expect(loop.Particles().Bounds()).To(Equal(particle.Dimensions{Width: 400, Height: 300}))
		})

		It("rejects non-positive sizes", func() {
			loop := mount(render.Config{Amount: 1})
			Expect(loop.Resize(0, 10)).To(MatchError(render.ErrInvalidSize))
		})
	})
})

var _ = Describe("FrameQueue", func() {
	It("defers callbacks requested during a flush", func() {
		q := render.NewFrameQueue()
		calls := 0
		var again func()
		again = func() {
			calls++
			q.RequestFrame(again)
		}
		q.RequestFrame(again)

		Expect(q.Flush()).To(Equal(1))
		Expect(calls).To(Equal(1))
		Expect(q.Pending()).To(Equal(1))
		Expect(q.Flush()).To(Equal(1))
		Expect(calls).To(Equal(2))
	})

	It("stops running when the queue drains", func() {
		q := render.NewFrameQueue()
		calls := 0
		q.RequestFrame(func() { calls++ })
		Expect(q.Run(context.Background(), 0, 0)).To(Succeed())
		Expect(calls).To(Equal(1))
	})

	It("honours the frame limit and the interval", func() {
		q := render.NewFrameQueue()
		calls := 0
		var again func()
		again = func() {
			calls++
			q.RequestFrame(again)
		}
		q.RequestFrame(again)

		start := time.Now()
		Expect(q.Run(context.Background(), time.Millisecond, 5)).To(Succeed())
		Expect(calls).To(Equal(5))
		Expect(time.Since(start)).To(BeNumerically(">=", 4*time.Millisecond))
	})

	It("returns the context error when cancelled", func() {
		q := render.NewFrameQueue()
		q.RequestFrame(func() {})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(q.Run(ctx, 0, 0)).To(MatchError(context.Canceled))
	})
})

type observerFunc func(render.FrameStats)

func (f observerFunc) OnFrame(s render.FrameStats) { f(s) }
