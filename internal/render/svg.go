package render

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orbital/internal/colormap"
	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
)

// SliceSVG draws the plane z-index k of an encoded field as one rect per
// sample, cell units wide. Alpha becomes fill-opacity.
func SliceSVG(g *grid.Grid, colors *colormap.Colors, k int, cell float64, theme Theme) (string, error) {
	if colors == nil || colors.Len() != g.Len() {
		return "", fmt.Errorf("slice: %w", quantum.ErrShapeMismatch)
	}
	nx, ny := g.Shape[0], g.Shape[1]
	if k < 0 || k >= g.Shape[2] {
		return "", fmt.Errorf("slice %d outside [0, %d)", k, g.Shape[2])
	}

	width, height := float64(nx)*cell, float64(ny)*cell
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Background))

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			px := colors.Pixel(g.Shape.Index(i, j, k, g.Order))
			fill := colorful.Color{R: px[0], G: px[1], B: px[2]}.Clamped().Hex()
			// SVG y grows downward; flip so +y is up.
			y := float64(ny-1-j) * cell
			if len(px) == 4 {
				sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.3f"/>
`, float64(i)*cell, y, cell, cell, fill, px[3]))
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(i)*cell, y, cell, cell, fill))
		}
	}
	sb.WriteString("</svg>")
	return sb.String(), nil
}

// CurveSVG plots y against x as a single path, padded by 10% on each side.
func CurveSVG(xs, ys []float64, width, height int, theme Theme) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, ys[i]), max(maxY, ys[i])
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, theme.Background, theme.Primary))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
