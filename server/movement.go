package main

// CanOccupy reports whether an entity with the given footprint size may
// stand centered at (x, y): inside canvas bounds and clear of obstacles.
// Bounds are inclusive, so a footprint flush against the canvas edge or an
// obstacle edge is allowed.
func CanOccupy(x, y, size float64, m *GameMap) bool {
	half := size / 2
	if x < half || x > m.Width-half {
		return false
	}
	if y < half || y > m.Height-half {
		return false
	}
	return !PointBlocked(x, y, size, m.Obstacles)
}

// ResolveMove validates a candidate position for an entity. Movement is
// atomic: if the combined (nx, ny) is invalid the entity does not move at
// all, so the caller keeps the old position. Returns the accepted position
// and whether it changed.
func ResolveMove(cur Body, nx, ny float64, m *GameMap) (float64, float64, bool) {
	if !CanOccupy(nx, ny, cur.Size, m) {
		return cur.X, cur.Y, false
	}
	return nx, ny, true
}
