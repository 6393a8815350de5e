package export

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/snowfetti/internal/render"
)

// ErrNoFrames is returned when encoding a recording that captured nothing.
var ErrNoFrames = errors.New("export: no frames recorded")

type GIFOptions struct {
	// Every captures one frame out of Every drawn frames.
	Every int
	// Scale multiplies the output size (nearest neighbour).
	Scale int
	// Delay between captured frames in 100ths of a second.
	Delay int
	// MaxFrames caps the number of captured frames; 0 means no cap.
	MaxFrames int
}

// GIFRecorder captures Raster frames as it observes a render loop.
type GIFRecorder struct {
	raster  *Raster
	opts    GIFOptions
	palette color.Palette
	frames  []*image.Paletted
	delays  []int
}

func NewGIFRecorder(r *Raster, opts GIFOptions) *GIFRecorder {
	if opts.Every < 1 {
		opts.Every = 1
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Delay < 1 {
		opts.Delay = 2
	}
	return &GIFRecorder{
		raster:  r,
		opts:    opts,
		palette: palette.Plan9,
	}
}

func (g *GIFRecorder) OnFrame(s render.FrameStats) {
	if s.Frame%g.opts.Every != 0 {
		return
	}
	if g.opts.MaxFrames > 0 && len(g.frames) >= g.opts.MaxFrames {
		return
	}
	g.frames = append(g.frames, g.capture())
	g.delays = append(g.delays, g.opts.Delay)
}

func (g *GIFRecorder) capture() *image.Paletted {
	var src image.Image = g.raster.Image()
	b := src.Bounds()
	if g.opts.Scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*g.opts.Scale, b.Dy()*g.opts.Scale))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, b, xdraw.Src, nil)
		src = scaled
		b = scaled.Bounds()
	}
	dst := image.NewPaletted(b, g.palette)
	xdraw.FloydSteinberg.Draw(dst, b, src, b.Min)
	return dst
}

func (g *GIFRecorder) Frames() int { return len(g.frames) }

// Full reports whether the frame cap has been reached.
func (g *GIFRecorder) Full() bool {
	return g.opts.MaxFrames > 0 && len(g.frames) >= g.opts.MaxFrames
}

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &gif.GIF{
		Image:     g.frames,
		Delay:     g.delays,
		LoopCount: 0,
	})
}

func (g *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
