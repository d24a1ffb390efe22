package export

import (
	"fmt"
	"strings"
)

// Point is one vertex of a plotted line.
type Point struct{ X, Y float64 }

// Line pairs xs with ys into points, truncating to the shorter slice.
func Line(xs, ys []float64) []Point {
	n := min(len(xs), len(ys))
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = Point{xs[i], ys[i]}
	}
	return pts
}

// LineSVG draws each series as a polyline in a shared, padded frame. Series
// with fewer than two points are skipped; colors cycle when there are more
// series than colors.
func LineSVG(series [][]Point, width, height int, colors []string) string {
	minX, maxX, minY, maxY, ok := bounds(series)
	if !ok {
		return ""
	}
	if len(colors) == 0 {
		colors = []string{"#00ff00"}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for s, points := range series {
		if len(points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, colors[s%len(colors)])
		for i, p := range points {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)

			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(series [][]Point) (minX, maxX, minY, maxY float64, ok bool) {
	for _, points := range series {
		if len(points) < 2 {
			continue
		}
		for _, p := range points {
			if !ok {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				ok = true
				continue
			}
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
	}
	return minX, maxX, minY, maxY, ok
}
