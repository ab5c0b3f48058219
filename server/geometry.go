package main

import "math"

// Rect is an axis-aligned rectangle with top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// RectOverlap checks if two rectangles overlap. Strict inequalities:
// rectangles that only share an edge do not collide.
func RectOverlap(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// Footprint returns the size×size square centered at (cx, cy) used for
// obstacle and bounds tests. Entity-vs-entity hits use circles instead.
func Footprint(cx, cy, size float64) Rect {
	half := size / 2
	return Rect{X: cx - half, Y: cy - half, W: size, H: size}
}

// PointBlocked checks if a size×size square centered at (cx, cy) overlaps
// any obstacle. Used identically for players and bullets.
func PointBlocked(cx, cy, size float64, obstacles []Obstacle) bool {
	f := Footprint(cx, cy, size)
	for _, o := range obstacles {
		if RectOverlap(f, o.Rect()) {
			return true
		}
	}
	return false
}

// CirclesOverlap checks if two circles overlap (distance strictly less
// than the radius sum).
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	radSum := r1 + r2
	return dx*dx+dy*dy < radSum*radSum
}

// Distance returns the distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Clamp restricts v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
