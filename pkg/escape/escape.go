// Package escape evaluates complex polynomial escape-time functions.
//
// The two families, Mandelbrot and Julia, iterate z ← z^exp + offset and
// report how quickly a sampled point's orbit leaves a fixed radius. Escape
// counts are fractional: an escaping point gets a smoothing correction so
// colorized output does not band.
package escape

import (
	"math"
	"math/cmplx"
)

// EscapeValue is the squared-magnitude threshold past which an orbit is
// considered escaped.
const EscapeValue = 8.0

// MinExp is the smallest exponent a Func accepts. The smoothed count
// divides by ln(exp), so exponents at or below 1 are rejected before they
// reach the evaluation loop.
const MinExp = 1.01

// A Result is the escape status of one evaluated point.
//
// The zero Result means the orbit stayed bounded for the whole iteration
// limit (an interior point).
type Result struct {
	// Count is the smoothed, fractional iteration count at escape.
	// Only meaningful when Escaped is true.
	Count float64

	Escaped bool
}

// After is the Result for an orbit that escaped after a smoothed count.
func After(count float64) Result {
	return Result{Count: count, Escaped: true}
}

// A Func is a complex polynomial function with a variable exponent.
type Func interface {
	// Escape iterates the function at c for at most limit steps.
	Escape(c complex128, limit int) Result

	Exp() float64

	// SetExp changes the exponent, clamping at MinExp.
	SetExp(exp float64)
}

// clampExp keeps ln(exp) in the smoothing denominator away from zero.
func clampExp(exp float64) float64 {
	if exp < MinExp {
		return MinExp
	}
	return exp
}

// smooth is the fractional correction subtracted from the integer
// iteration index at escape.
func smooth(normSqr, exp float64) float64 {
	return math.Log(math.Log(normSqr)/math.Log(EscapeValue)) / math.Log(exp)
}

func normSqr(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// Mandelbrot iterates z ← z^exp + c from z = 0, where c is the sampled
// point.
type Mandelbrot struct {
	Exponent float64 `json:"exp"`
}

// NewMandelbrot is the classic z² + c Mandelbrot function.
func NewMandelbrot() *Mandelbrot {
	return &Mandelbrot{Exponent: 2}
}

// MandelbrotFromJulia carries a Julia set's exponent into the Mandelbrot
// family.
func MandelbrotFromJulia(j *Julia) *Mandelbrot {
	return &Mandelbrot{Exponent: j.Exponent}
}

func (m *Mandelbrot) Escape(c complex128, limit int) Result {
	z := complex(0, 0)
	for i := 0; i < limit; i++ {
		z = cmplx.Pow(z, complex(m.Exponent, 0)) + c
		if n := normSqr(z); n > EscapeValue {
			return After(float64(i) - smooth(n, m.Exponent))
		}
	}
	return Result{}
}

func (m *Mandelbrot) Exp() float64 {
	return m.Exponent
}

func (m *Mandelbrot) SetExp(exp float64) {
	m.Exponent = clampExp(exp)
}

// A Coord is a serializable complex number.
type Coord struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// CoordOf splits a complex number into its serializable form.
func CoordOf(c complex128) Coord {
	return Coord{Re: real(c), Im: imag(c)}
}

func (c Coord) Complex() complex128 {
	return complex(c.Re, c.Im)
}

// Julia iterates z ← z^exp + c_offset starting from the sampled point,
// with a fixed offset shared by every sample.
type Julia struct {
	Exponent float64 `json:"exp"`
	COffset  Coord   `json:"c_offset"`
}

// NewJulia is a default Julia set with a pleasant offset.
func NewJulia() *Julia {
	return &Julia{Exponent: 2, COffset: Coord{Re: 0.6, Im: 0.4}}
}

// JuliaFromMandelbrot carries a Mandelbrot function's exponent into the
// Julia family, fixing the offset at cOffset. Passing the current view
// origin preserves visual continuity across the switch.
func JuliaFromMandelbrot(m *Mandelbrot, cOffset complex128) *Julia {
	return &Julia{Exponent: m.Exponent, COffset: CoordOf(cOffset)}
}

func (j *Julia) Escape(c complex128, limit int) Result {
	z := c
	offset := j.COffset.Complex()
	for i := 0; i < limit; i++ {
		z = cmplx.Pow(z, complex(j.Exponent, 0)) + offset
		if n := normSqr(z); n > EscapeValue {
			return After(float64(i) - smooth(n, j.Exponent))
		}
	}
	return Result{}
}

func (j *Julia) Exp() float64 {
	return j.Exponent
}

func (j *Julia) SetExp(exp float64) {
	j.Exponent = clampExp(exp)
}

var (
	_ Func = &Mandelbrot{}
	_ Func = &Julia{}
)
