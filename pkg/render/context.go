// Package render composes a view location, an escape function, and a
// colorer into one evaluatable unit, and evaluates it in parallel over a
// pixel grid.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/willbeason/mandelterm/pkg/escape"
	"github.com/willbeason/mandelterm/pkg/geometry"
	"github.com/willbeason/mandelterm/pkg/palette"
	"github.com/willbeason/mandelterm/pkg/view"
)

// Step sizes for the named transforms.
const (
	TranslateStep  = 10.0
	ZoomStep       = 2.0
	IterationsStep = 25
	ExpStep        = 0.001
)

// A Context is the full state needed to render one fractal view: where to
// look, which function to iterate, and how to color the escapes.
//
// A Context gives magnification, scaling factors, and other view
// properties but does not bound precise pixel dimensions; Bind attaches
// it to a concrete bounds.
type Context struct {
	Loc view.Loc

	// Fn is the active escape function, Mandelbrot or Julia.
	Fn escape.Func

	Colorer palette.SineRGB

	// Aspect compensates for the output surface's cell geometry. It
	// supersedes Loc's own aspect when the context samples the plane.
	Aspect view.Aspect
}

// NewContext is a default Mandelbrot context for square pixels.
func NewContext() *Context {
	return &Context{
		Loc:     view.Default(),
		Fn:      escape.NewMandelbrot(),
		Colorer: palette.Sunset(),
		Aspect:  view.Square(),
	}
}

// NewTerminalContext is a default context compensated for terminal cells.
func NewTerminalContext(loc view.Loc) *Context {
	ctx := NewContext()
	ctx.Loc = loc
	ctx.Aspect = view.Terminal()
	return ctx
}

// ComplexAt maps a pixel position to its complex number. The context's
// surface aspect supersedes the location's own at sampling time, so the
// same Loc renders correctly on terminal cells and square pixels alike.
func (c *Context) ComplexAt(bounds geometry.Bounds, pos geometry.Pos) complex128 {
	loc := c.Loc
	loc.Aspect = c.Aspect
	return loc.ComplexAt(bounds, pos)
}

// A Transform is a discrete, named mutation of a Context.
type Transform int

const (
	// TranslateUp moves the view up the imaginary axis.
	TranslateUp Transform = iota
	TranslateDown
	TranslateLeft
	TranslateRight
	// ScaleIn zooms in by halving the scalar.
	ScaleIn
	ScaleOut
	// IncIterations raises the escape iteration cap.
	IncIterations
	DecIterations
	// IncExp raises the function exponent.
	IncExp
	DecExp
	// SwitchFn toggles between the Mandelbrot and Julia families.
	SwitchFn
	// Reset restores the default location. The function family is kept.
	Reset
)

// Apply mutates the context by one transform.
func (c *Context) Apply(t Transform) {
	switch t {
	case TranslateUp:
		c.Loc.Im0 -= c.Loc.Scalar * TranslateStep
	case TranslateDown:
		c.Loc.Im0 += c.Loc.Scalar * TranslateStep
	case TranslateLeft:
		c.Loc.Re0 -= c.Loc.Scalar * TranslateStep
	case TranslateRight:
		c.Loc.Re0 += c.Loc.Scalar * TranslateStep

	case ScaleIn:
		c.Loc.Scalar /= ZoomStep
	case ScaleOut:
		c.Loc.Scalar *= ZoomStep

	case IncIterations:
		c.Loc.AddIterations(IterationsStep)
	case DecIterations:
		c.Loc.AddIterations(-IterationsStep)

	case IncExp:
		c.Fn.SetExp(c.Fn.Exp() + ExpStep)
	case DecExp:
		c.Fn.SetExp(c.Fn.Exp() - ExpStep)

	case SwitchFn:
		c.switchFn()

	case Reset:
		c.Loc = view.Default()
	}
}

// switchFn toggles the function family while preserving visual
// continuity.
//
// Julia to Mandelbrot recenters the view on the Julia offset, so toggling
// back and forth shows how Julia sets change with position in the
// Mandelbrot set. Mandelbrot to Julia fixes the new offset at the current
// view origin, which generally maps to a similar looking region.
func (c *Context) switchFn() {
	switch fn := c.Fn.(type) {
	case *escape.Julia:
		c.Fn = escape.MandelbrotFromJulia(fn)
		c.Loc.MoveTo(fn.COffset.Complex())
	case *escape.Mandelbrot:
		c.Fn = escape.JuliaFromMandelbrot(fn, c.Loc.Origin())
	}
}

// Bind attaches the context to concrete pixel bounds, yielding a
// read-only render job.
func (c *Context) Bind(bounds geometry.Bounds) *Job {
	return &Job{ctx: c, bounds: bounds}
}

// Function family tags in the persisted form.
const (
	kindMandelbrot = "mandelbrot"
	kindJulia      = "julia"
)

// contextJSON is the persisted shape of a Context. The function variant
// is tagged by kind so a load restores the right family.
type contextJSON struct {
	Loc        view.Loc           `json:"loc"`
	Kind       string             `json:"kind"`
	Mandelbrot *escape.Mandelbrot `json:"mandelbrot,omitempty"`
	Julia      *escape.Julia      `json:"julia,omitempty"`
	Colorer    palette.SineRGB    `json:"colorer"`
	Aspect     view.Aspect        `json:"aspect"`
}

func (c *Context) MarshalJSON() ([]byte, error) {
	out := contextJSON{
		Loc:     c.Loc,
		Colorer: c.Colorer,
		Aspect:  c.Aspect,
	}

	switch fn := c.Fn.(type) {
	case *escape.Mandelbrot:
		out.Kind = kindMandelbrot
		out.Mandelbrot = fn
	case *escape.Julia:
		out.Kind = kindJulia
		out.Julia = fn
	default:
		return nil, fmt.Errorf("render: cannot persist escape function %T", c.Fn)
	}

	return json.Marshal(out)
}

func (c *Context) UnmarshalJSON(data []byte) error {
	var in contextJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch in.Kind {
	case kindMandelbrot:
		if in.Mandelbrot == nil {
			return fmt.Errorf("render: %q context missing function body", in.Kind)
		}
		c.Fn = in.Mandelbrot
	case kindJulia:
		if in.Julia == nil {
			return fmt.Errorf("render: %q context missing function body", in.Kind)
		}
		c.Fn = in.Julia
	default:
		return fmt.Errorf("render: unknown escape function kind %q", in.Kind)
	}

	c.Loc = in.Loc
	c.Colorer = in.Colorer
	c.Aspect = in.Aspect
	return nil
}

// Clone is a deep copy, so a variant computation (e.g. a high-resolution
// screenshot) cannot disturb the live interactive state.
func (c *Context) Clone() *Context {
	clone := *c

	switch fn := c.Fn.(type) {
	case *escape.Mandelbrot:
		fnCopy := *fn
		clone.Fn = &fnCopy
	case *escape.Julia:
		fnCopy := *fn
		clone.Fn = &fnCopy
	}

	return &clone
}
