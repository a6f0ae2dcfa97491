// Package geometry holds the pixel-space value types shared by the
// renderer: bounds, positions, and position offsets.
package geometry

// Bounds is the pixel dimensions of a render target.
type Bounds struct {
	Width  int
	Height int
}

// Center is the pixel at the middle of the bounds.
//
// Odd dimensions round down, matching integer cell grids.
func (b Bounds) Center() Pos {
	return Pos{X: b.Width / 2, Y: b.Height / 2}
}

// A Pos is a pixel position within some grid, e.g. an escape matrix or image.
type Pos struct {
	X int
	Y int
}

// Sub is the offset from other to p.
func (p Pos) Sub(other Pos) Offset {
	return Offset{X: p.X - other.X, Y: p.Y - other.Y}
}

// An Offset is a signed displacement between two positions.
type Offset struct {
	X int
	Y int
}
