package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/snowfetti/internal/particle"
	"github.com/san-kum/snowfetti/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format, one circle per lit
// dot in its cell's blended color.
func CanvasToSVG(canvas *viz.Canvas, scale float64, background string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	writeHeader(&sb, width, height, background)

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			_, color, ok := canvas.Cell(col, row)
			if !ok {
				continue
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if canvas.Dot(col*2+dx, row*4+dy) {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, color))
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ParticlesToSVG draws the collection as vector circles on a width x height
// surface. Particles outside the surface are skipped.
func ParticlesToSVG(c *particle.Collection, width, height int, background string) string {
	if c == nil {
		return ""
	}

	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height), background)

	for _, p := range c.Items {
		if p.X+p.Radius < 0 || p.Y+p.Radius < 0 || p.X-p.Radius > float64(width) || p.Y-p.Radius > float64(height) {
			continue
		}
		if p.Opacity <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, p.X, p.Y, p.Radius, p.Color, p.Opacity))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height float64, background string) {
	if background == "" {
		background = "#0a0a0a"
	}
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}
