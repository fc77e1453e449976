package math

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle with fractional coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the exclusive right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Round snaps the rectangle edges to the nearest integer pixel.
// Two rects sharing an edge round that edge to the same column, so
// adjacent rects tile without gaps or overlap.
func (r Rect) Round() image.Rectangle {
	return image.Rect(roundHalfUp(r.X), roundHalfUp(r.Y), roundHalfUp(r.Right()), roundHalfUp(r.Bottom()))
}

// Cover returns the smallest integer rectangle containing r.
func (r Rect) Cover() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
