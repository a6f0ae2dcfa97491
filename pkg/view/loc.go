// Package view describes a rectangular window onto the complex plane,
// independent of any pixel resolution.
package view

import (
	"github.com/willbeason/mandelterm/pkg/geometry"
)

// RefSpan is the plane span, in units, that an initial view fits across
// its smaller pixel dimension. The Mandelbrot set's interesting region is
// roughly 3 units wide, so 1.5 units from center to edge keeps it fully
// visible regardless of terminal shape.
const RefSpan = 1.5

// Iteration cap defaults and floor.
const (
	DefaultMaxIter = 100
	MinIter        = 1
)

// An Aspect holds per-axis scaling factors compensating for non-square
// pixel grids, e.g. terminal cells being roughly twice as tall as wide.
type Aspect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Square is the aspect for ordinary square pixels.
func Square() Aspect {
	return Aspect{X: 1, Y: 1}
}

// Terminal compensates for terminal character cell geometry.
func Terminal() Aspect {
	return Aspect{X: 1, Y: 2.3}
}

// A Loc is a location and magnification within the complex plane.
//
// The origin (Re0, Im0) and Scalar jointly define the plane window;
// MaxIter caps escape evaluation for every point in it.
type Loc struct {
	// Im0 is the imaginary axis origin.
	Im0 float64 `json:"im0"`

	// Re0 is the real axis origin.
	Re0 float64 `json:"re0"`

	// Aspect compensates for non-square pixel grids.
	Aspect Aspect `json:"aspect"`

	// Scalar is the plane distance covered by one pixel step before
	// aspect compensation. Invariant: Scalar > 0.
	Scalar float64 `json:"scalar"`

	// MaxIter is the iteration cap before declaring a point interior.
	// Invariant: MaxIter >= MinIter.
	MaxIter int `json:"max_iter"`
}

// Default is a view of the whole set at terminal-ish magnification.
func Default() Loc {
	return Loc{
		Im0:     0,
		Re0:     0,
		Aspect:  Aspect{X: 1, Y: 2},
		Scalar:  0.1,
		MaxIter: DefaultMaxIter,
	}
}

// ForBounds is a Loc whose magnification fits RefSpan plane units across
// the smaller of the two pixel dimensions, after aspect compensation.
func ForBounds(bounds geometry.Bounds) Loc {
	loc := Default()

	reStep := RefSpan / (loc.Aspect.X * float64(bounds.Width))
	imStep := RefSpan / (loc.Aspect.Y * float64(bounds.Height))

	if reStep > imStep {
		loc.Scalar = reStep
	} else {
		loc.Scalar = imStep
	}

	return loc
}

// ComplexAt maps a pixel position to its complex number with respect to
// bounds. This is the single source of truth for the pixel-to-plane
// correspondence; evaluation and screenshot logic all route through it.
func (l Loc) ComplexAt(bounds geometry.Bounds, pos geometry.Pos) complex128 {
	offset := pos.Sub(bounds.Center())

	re := l.Aspect.X*float64(offset.X)*l.Scalar + l.Re0
	im := l.Aspect.Y*float64(offset.Y)*l.Scalar + l.Im0

	return complex(re, im)
}

// A ScaleMethod selects how the two axes' resize ratios combine when
// rescaling a Loc between bounds.
type ScaleMethod int

const (
	// ScaleMin preserves the full extent of the old view; nothing is
	// cropped, the new view may show more.
	ScaleMin ScaleMethod = iota
	// ScaleMax fills the new bounds, possibly cropping.
	ScaleMax
	// ScaleAvg splits the difference.
	ScaleAvg
)

// Scale recomputes the magnification so the same plane region is
// represented at a different pixel resolution.
func (l Loc) Scale(old, next geometry.Bounds, method ScaleMethod) Loc {
	reRatio := float64(next.Width) / float64(old.Width)
	imRatio := float64(next.Height) / float64(old.Height)

	var ratio float64
	switch method {
	case ScaleMax:
		ratio = max(reRatio, imRatio)
	case ScaleAvg:
		ratio = (reRatio + imRatio) / 2
	default:
		ratio = min(reRatio, imRatio)
	}

	l.Scalar /= ratio
	return l
}

// Origin is the view center as a complex number.
func (l Loc) Origin() complex128 {
	return complex(l.Re0, l.Im0)
}

// MoveTo recenters the view on a complex number.
func (l *Loc) MoveTo(c complex128) {
	l.Re0 = real(c)
	l.Im0 = imag(c)
}

// AddIterations adjusts the iteration cap, clamping at MinIter so a
// decrement can never push evaluation into a degenerate loop.
func (l *Loc) AddIterations(delta int) {
	l.MaxIter += delta
	if l.MaxIter < MinIter {
		l.MaxIter = MinIter
	}
}
