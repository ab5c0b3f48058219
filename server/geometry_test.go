package main

import "testing"

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	// Overlapping
	if !RectOverlap(a, Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Error("rects should overlap")
	}

	// Edge-touching rects do not collide (strict inequalities)
	if RectOverlap(a, Rect{X: 10, Y: 0, W: 10, H: 10}) {
		t.Error("edge-touching rects should not overlap")
	}
	if RectOverlap(a, Rect{X: 0, Y: 10, W: 10, H: 10}) {
		t.Error("edge-touching rects should not overlap on y axis")
	}

	// Disjoint
	if RectOverlap(a, Rect{X: 20, Y: 20, W: 5, H: 5}) {
		t.Error("disjoint rects should not overlap")
	}

	// Containment
	if !RectOverlap(a, Rect{X: 2, Y: 2, W: 2, H: 2}) {
		t.Error("contained rect should overlap")
	}
}

func TestPointBlocked(t *testing.T) {
	obstacles := []Obstacle{{X: 100, Y: 100, Width: 50, Height: 50}}

	// Footprint inside the obstacle
	if !PointBlocked(125, 125, 20, obstacles) {
		t.Error("center inside obstacle should be blocked")
	}

	// Footprint flush against the obstacle edge: 10-half square at x=90
	// spans [80,100], touching x=100 only
	if PointBlocked(90, 125, 20, obstacles) {
		t.Error("footprint touching obstacle edge should not be blocked")
	}

	// One unit of overlap
	if !PointBlocked(91, 125, 20, obstacles) {
		t.Error("footprint overlapping obstacle by 1 should be blocked")
	}

	// Far away
	if PointBlocked(300, 300, 20, obstacles) {
		t.Error("distant footprint should not be blocked")
	}

	// Same size square used for bullets
	if PointBlocked(96, 125, 6, obstacles) {
		t.Error("small footprint touching edge should not be blocked")
	}
}

func TestCirclesOverlap(t *testing.T) {
	// Overlapping
	if !CirclesOverlap(0, 0, 10, 15, 0, 10) {
		t.Error("circles should overlap")
	}

	// Exactly touching: distance == radius sum is not an overlap
	if CirclesOverlap(0, 0, 10, 20, 0, 10) {
		t.Error("touching circles should not overlap")
	}

	// Disjoint
	if CirclesOverlap(0, 0, 10, 25, 0, 10) {
		t.Error("distant circles should not overlap")
	}

	// Same position
	if !CirclesOverlap(5, 5, 1, 5, 5, 1) {
		t.Error("coincident circles should overlap")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("in-range value should pass through")
	}
	if Clamp(-1, 0, 10) != 0 {
		t.Error("low value should clamp to min")
	}
	if Clamp(11, 0, 10) != 10 {
		t.Error("high value should clamp to max")
	}
}
