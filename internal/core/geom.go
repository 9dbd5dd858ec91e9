// Package core provides the shared types of the lane-crossing arcade: geometry,
// actions, the screen buffer and runtime configuration. It has no external
// dependencies (especially no Bubble Tea) so the simulation stays pure and testable.
package core

// Rect is an integer cell rectangle used for drawing on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned rectangle in tile units. X grows to the right and
// Y is a grid row (0 = bottom). Obstacles have fractional X while the player
// always occupies a whole 1x1 tile.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// TileBox returns the 1x1 box covering tile (x, y).
func TileBox(x, y int) Box {
	return Box{X: float64(x), Y: float64(y), W: 1, H: 1}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Top returns the y-coordinate of the upper edge.
func (b Box) Top() float64 {
	return b.Y + b.H
}

// Intersects reports whether the interiors of two boxes overlap.
// Boxes that only touch along an edge do not intersect.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Top() || other.Y >= b.Top() {
		return false
	}
	return true
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
