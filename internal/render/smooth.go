package render

import (
	"math"

	"github.com/gogpu/sketchpad/geom"
)

// SmoothThreshold is the per-axis distance under which consecutive points
// are merged by Smooth.
const SmoothThreshold = 3

// Smooth reduces a finished stroke by collapsing runs of points that stay
// within SmoothThreshold of the run's first point into their running
// average. The first and last points are always kept. Fewer than four
// points are returned unchanged.
func Smooth(points []geom.Point) []geom.Point {
	if len(points) < 4 {
		return points
	}
	last := len(points) - 1
	out := []geom.Point{points[0]}
	anchor := points[1]
	avg := anchor
	n := 1.0
	for _, p := range points[2:last] {
		if math.Abs(p.X-anchor.X) < SmoothThreshold && math.Abs(p.Y-anchor.Y) < SmoothThreshold {
			avg.X = (avg.X*n + p.X) / (n + 1)
			avg.Y = (avg.Y*n + p.Y) / (n + 1)
			n++
			continue
		}
		out = append(out, avg)
		anchor, avg, n = p, p, 1
	}
	out = append(out, avg, points[last])
	return out
}
