package cluster

import "math"

type point struct {
	x, y float64
}

// normalize applies a per-axis z-score so clustering distance is
// scale-invariant across documents of different size and DPI, then weights
// the horizontal axis. Zero variance (all glyphs on one line or column)
// collapses that axis instead of dividing by zero.
func normalize(points []point, xWeight float64) {
	n := float64(len(points))
	if n == 0 {
		return
	}
	var mx, my float64
	for _, p := range points {
		mx += p.x
		my += p.y
	}
	mx /= n
	my /= n

	var vx, vy float64
	for _, p := range points {
		vx += (p.x - mx) * (p.x - mx)
		vy += (p.y - my) * (p.y - my)
	}
	sx := math.Sqrt(vx / n)
	sy := math.Sqrt(vy / n)
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	for i := range points {
		points[i].x = (points[i].x - mx) / sx * xWeight
		points[i].y = (points[i].y - my) / sy
	}
}

// dbscan assigns a cluster label to each point. With a minimum cluster
// size of 1 every point is a core point, so the labels are the connected
// components of the eps-neighborhood graph and no point is noise.
func dbscan(points []point, eps float64) []int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}
	eps2 := eps * eps

	next := 0
	var stack []int
	for i := range points {
		if labels[i] >= 0 {
			continue
		}
		labels[i] = next
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for j := range points {
				if labels[j] >= 0 {
					continue
				}
				dx := points[cur].x - points[j].x
				dy := points[cur].y - points[j].y
				if dx*dx+dy*dy <= eps2 {
					labels[j] = next
					stack = append(stack, j)
				}
			}
		}
		next++
	}
	return labels
}
