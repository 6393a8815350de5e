package render

// Context is a 2D drawing context in the style of an HTML canvas. Coordinates
// are surface pixels.
type Context interface {
	ClearRect(x, y, w, h float64)
	SetFillStyle(color string)
	SetGlobalAlpha(alpha float64)
	BeginPath()
	Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool)
	Fill()
	ClosePath()
}

// Surface is the mount point a loop draws onto. Context returns
// ErrNoContext when the surface is unusable, a nil receiver included.
type Surface interface {
	Context() (Context, error)
	Resize(w, h int)
	Size() (w, h int)
}

// Scheduler runs a callback on the next display refresh.
type Scheduler interface {
	RequestFrame(fn func())
}
