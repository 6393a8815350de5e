package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/san-kum/snowfetti/internal/viz"
)

// Composite lays the canvas over a rendered host view. With above set, lit
// cells replace host text; otherwise they only fill cells where the host
// shows a space or nothing.
func Composite(base string, c *viz.Canvas, above bool) string {
	lines := strings.Split(base, "\n")
	rows := len(lines)
	if c.Height > rows {
		rows = c.Height
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		b.WriteString(compositeLine(line, c, row, above))
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// span is the host grapheme covering cells [start, end).
type span struct {
	start, end int
	blank      bool
}

// hostCells maps every terminal column of a plain line to its grapheme.
func hostCells(plain string) []span {
	var cells []span
	g := uniseg.NewGraphemes(plain)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		sp := span{start: len(cells), end: len(cells) + w, blank: g.Str() == " "}
		for i := 0; i < w; i++ {
			cells = append(cells, sp)
		}
	}
	return cells
}

// compositeLine draws lit cells into one host line. A particle over half of
// a wide grapheme replaces the whole grapheme, padding the other half.
func compositeLine(line string, c *viz.Canvas, row int, above bool) string {
	if row >= c.Height {
		return line
	}
	host := hostCells(ansi.Strip(line))
	width := len(host)

	spanAt := func(col int) span {
		if col < width {
			return host[col]
		}
		return span{start: col, end: col + 1, blank: true}
	}
	drawable := func(col int) bool {
		if _, _, ok := c.Cell(col, row); !ok {
			return false
		}
		return above || spanAt(col).blank
	}

	var b strings.Builder
	start := 0
	for col := 0; col < c.Width; col++ {
		if !drawable(col) {
			continue
		}
		sp := spanAt(col)
		if start < sp.start && start < width {
			b.WriteString(ansi.Cut(line, start, min(sp.start, width)))
		}
		if pad := sp.start - max(start, width); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		for k := sp.start; k < sp.end; k++ {
			if drawable(k) {
				b.WriteString(c.StyledCell(k, row))
			} else {
				b.WriteByte(' ')
			}
		}
		start = sp.end
		col = sp.end - 1
	}
	if start == 0 {
		return line
	}
	if start < width {
		b.WriteString(ansi.TruncateLeft(line, start, ""))
	}
	return b.String()
}
