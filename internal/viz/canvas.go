package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/snowfetti/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// MinAlpha is the lowest global alpha that still lights a dot.
const MinAlpha = 0.05

type tint struct {
	color colorful.Color
	alpha float64
}

type circle struct {
	x, y, r float64
}

// Canvas is a Braille raster that implements render.Surface and
// render.Context. Width and Height are in cells; the pixel surface is at most
// (Width*2) x (Height*4) and dots past it are dropped.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	pxW, pxH   int
	tints      [][]tint
	background colorful.Color
	fill       colorful.Color
	alpha      float64
	path       []circle
	styles     map[string]lipgloss.Style
}

func NewCanvas(w, h int, theme Theme) *Canvas {
	bg, err := colorful.Hex(theme.Background)
	if err != nil {
		bg = colorful.Color{}
	}
	c := &Canvas{
		background: bg,
		fill:       colorful.Color{R: 1, G: 1, B: 1},
		alpha:      1,
		styles:     make(map[string]lipgloss.Style),
	}
	c.ResizeCells(w, h)
	return c
}

// ResizeCells reallocates the grid. The canvas is cleared.
func (c *Canvas) ResizeCells(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.pxW, c.pxH = w*2, h*4
	c.Grid = make([][]rune, h)
	c.tints = make([][]tint, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.tints[i] = make([]tint, w)
	}
	c.Clear()
}

// Resize takes pixel dimensions. The grid is rounded up to whole cells but
// the surface keeps the exact size.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	c.ResizeCells((w+1)/2, (h+3)/4)
	c.pxW, c.pxH = w, h
}

// Size returns the pixel dimensions.
func (c *Canvas) Size() (w, h int) {
	return c.pxW, c.pxH
}

func (c *Canvas) Context() (render.Context, error) {
	if c == nil {
		return nil, render.ErrNoContext
	}
	return c, nil
}

// Set lights the dot at pixel (x, y).
func (c *Canvas) Set(x, y int) {
	if !c.inside(x, y) {
		return
	}
	c.Grid[y/4][x/2] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	mask := ^rune(pixelMap[subY][subX])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
	if c.Grid[row][col] == blank {
		c.tints[row][col] = tint{}
	}
}

// Dot reports whether the dot at pixel (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	if !c.inside(x, y) {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.tints[i][j] = tint{}
		}
	}
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	pw, ph := c.Size()
	x0 := int(math.Max(0, math.Floor(x)))
	y0 := int(math.Max(0, math.Floor(y)))
	x1 := int(math.Min(float64(pw), math.Ceil(x+w)))
	y1 := int(math.Min(float64(ph), math.Ceil(y+h)))

	if x0 == 0 && y0 == 0 && x1 == pw && y1 == ph {
		c.Clear()
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.Unset(px, py)
		}
	}
}

// SetFillStyle accepts a hex color. Unparseable colors leave the fill
// unchanged.
func (c *Canvas) SetFillStyle(color string) {
	if col, err := colorful.Hex(color); err == nil {
		c.fill = col
	}
}

func (c *Canvas) SetGlobalAlpha(alpha float64) {
	c.alpha = math.Max(0, math.Min(1, alpha))
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
}

// Arc adds a circle to the current path. Only full circles are rasterized, so
// the angles and direction are ignored.
func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	c.path = append(c.path, circle{x: x, y: y, r: math.Abs(radius)})
}

// Fill lights every dot whose centre lies inside a path circle, and always
// the dot under the circle's centre.
func (c *Canvas) Fill() {
	if c.alpha < MinAlpha {
		return
	}
	t := tint{color: c.background.BlendRgb(c.fill, c.alpha).Clamped(), alpha: c.alpha}
	for _, ci := range c.path {
		c.plot(int(math.Floor(ci.x)), int(math.Floor(ci.y)), t)

		r2 := ci.r * ci.r
		for py := int(math.Floor(ci.y - ci.r)); py <= int(math.Ceil(ci.y+ci.r)); py++ {
			for px := int(math.Floor(ci.x - ci.r)); px <= int(math.Ceil(ci.x+ci.r)); px++ {
				dx := float64(px) + 0.5 - ci.x
				dy := float64(py) + 0.5 - ci.y
				if dx*dx+dy*dy <= r2 {
					c.plot(px, py, t)
				}
			}
		}
	}
}

func (c *Canvas) ClosePath() {}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.pxW && y < c.pxH
}

func (c *Canvas) plot(x, y int, t tint) {
	if !c.inside(x, y) {
		return
	}
	c.Set(x, y)
	c.tints[y/4][x/2] = t
}

// Cell returns the glyph and blended color of a cell; ok is false when no
// dot in the cell is lit.
func (c *Canvas) Cell(col, row int) (glyph rune, color string, ok bool) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return ' ', "", false
	}
	g := c.Grid[row][col]
	if g == blank {
		return ' ', "", false
	}
	return g, c.tints[row][col].color.Hex(), true
}

// Alpha returns the global alpha the cell was last filled with.
func (c *Canvas) Alpha(col, row int) float64 {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return 0
	}
	return c.tints[row][col].alpha
}

// Lit counts the lit dots.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, g := range row {
			for m := g - blank; m != 0; m &= m - 1 {
				n++
			}
		}
	}
	return n
}

// StyledCell renders a lit cell with its foreground color.
func (c *Canvas) StyledCell(col, row int) string {
	g, color, ok := c.Cell(col, row)
	if !ok {
		return " "
	}
	st, found := c.styles[color]
	if !found {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		c.styles[color] = st
	}
	return st.Render(string(g))
}

// Render returns the colored canvas, blank cells as spaces.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			b.WriteString(c.StyledCell(col, row))
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
