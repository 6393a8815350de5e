package export

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/san-kum/snowfetti/internal/render"
)

// Raster is an RGBA surface implementing render.Surface and render.Context.
// Paths are filled with anti-aliased coverage and composited over the
// existing pixels. Each fill rasterizes only the path's bounding box.
type Raster struct {
	img        *image.RGBA
	z          *vector.Rasterizer
	background color.RGBA
	fill       color.RGBA
	alpha      float64
	path       []pathPoint
}

type pathPoint struct {
	x, y float32
}

// NewRaster creates a w x h surface cleared to background (a hex color; empty
// means transparent).
func NewRaster(w, h int, background string) *Raster {
	r := &Raster{
		z:     vector.NewRasterizer(0, 0),
		fill:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		alpha: 1,
	}
	if c, err := colorful.Hex(background); err == nil {
		cr, cg, cb := c.RGB255()
		r.background = color.RGBA{R: cr, G: cg, B: cb, A: 255}
	}
	r.Resize(w, h)
	return r
}

func (r *Raster) Context() (render.Context, error) {
	if r == nil {
		return nil, render.ErrNoContext
	}
	return r, nil
}

func (r *Raster) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.ClearRect(0, 0, float64(w), float64(h))
}

func (r *Raster) Size() (w, h int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image. It is redrawn in place every frame.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) ClearRect(x, y, w, h float64) {
	rect := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(r.img.Bounds())
	xdraw.Draw(r.img, rect, image.NewUniform(r.background), image.Point{}, xdraw.Src)
}

// SetFillStyle accepts a hex color. Unparseable colors leave the fill
// unchanged.
func (r *Raster) SetFillStyle(c string) {
	col, err := colorful.Hex(c)
	if err != nil {
		return
	}
	cr, cg, cb := col.RGB255()
	r.fill = color.RGBA{R: cr, G: cg, B: cb, A: 255}
}

func (r *Raster) SetGlobalAlpha(alpha float64) {
	r.alpha = math.Max(0, math.Min(1, alpha))
}

func (r *Raster) BeginPath() {
	r.path = r.path[:0]
}

// Arc appends an arc to the path as line segments, connecting it to any
// previous point the way a canvas path does.
func (r *Raster) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	radius = math.Abs(radius)

	sweep := endAngle - startAngle
	switch {
	case math.Abs(sweep) >= 2*math.Pi:
		sweep = 2 * math.Pi
		if anticlockwise {
			sweep = -sweep
		}
	case anticlockwise && sweep > 0:
		sweep -= 2 * math.Pi
	case !anticlockwise && sweep < 0:
		sweep += 2 * math.Pi
	}

	steps := int(math.Ceil(math.Abs(sweep) * math.Max(radius, 1)))
	if steps < 8 {
		steps = 8
	}
	for i := 0; i <= steps; i++ {
		a := startAngle + sweep*float64(i)/float64(steps)
		r.path = append(r.path, pathPoint{
			x: float32(x + radius*math.Cos(a)),
			y: float32(y + radius*math.Sin(a)),
		})
	}
}

// bounds is the pixel rectangle covering the current path.
func (r *Raster) bounds() image.Rectangle {
	minX, minY := r.path[0].x, r.path[0].y
	maxX, maxY := minX, minY
	for _, p := range r.path[1:] {
		minX, maxX = min(minX, p.x), max(maxX, p.x)
		minY, maxY = min(minY, p.y), max(maxY, p.y)
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

// Fill draws the path and consumes it; a repeated Fill draws nothing.
func (r *Raster) Fill() {
	defer r.BeginPath()
	if len(r.path) < 2 || r.alpha == 0 {
		return
	}
	clip := r.bounds().Intersect(r.img.Bounds())
	if clip.Empty() {
		return
	}

	r.z.Reset(clip.Dx(), clip.Dy())
	r.z.DrawOp = xdraw.Over
	ox, oy := float32(clip.Min.X), float32(clip.Min.Y)
	r.z.MoveTo(r.path[0].x-ox, r.path[0].y-oy)
	for _, p := range r.path[1:] {
		r.z.LineTo(p.x-ox, p.y-oy)
	}
	r.z.ClosePath()

	src := color.NRGBA{R: r.fill.R, G: r.fill.G, B: r.fill.B, A: uint8(math.Round(r.alpha * 255))}
	r.z.Draw(r.img, clip, image.NewUniform(src), image.Point{})
}

func (r *Raster) ClosePath() {}
