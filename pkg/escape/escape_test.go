package escape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/mandelterm/pkg/escape"
)

func TestMandelbrotInteriorOrigin(t *testing.T) {
	m := escape.NewMandelbrot()

	// The origin is the classic interior point; it never escapes at any
	// iteration limit.
	for _, limit := range []int{1, 10, 100, 10000} {
		result := m.Escape(complex(0, 0), limit)
		assert.False(t, result.Escaped, "limit %d", limit)
	}
}

func TestMandelbrotImmediateEscape(t *testing.T) {
	m := escape.NewMandelbrot()

	// 0^2 + 3 = 3 and |3|^2 = 9 > 8, so the orbit escapes on the very
	// first iteration with a small negative smoothing correction.
	result := m.Escape(complex(3, 0), 100)

	require.True(t, result.Escaped)
	assert.InDelta(t, -0.0795, result.Count, 1e-3)
}

func TestMandelbrotSmoothedCountsAreContinuous(t *testing.T) {
	m := escape.NewMandelbrot()

	// Nearby escaping points get nearby fractional counts. Both of
	// these escape on the second iteration.
	a := m.Escape(complex(1, 1), 1000)
	b := m.Escape(complex(1.0001, 1), 1000)

	require.True(t, a.Escaped)
	require.True(t, b.Escaped)
	assert.InDelta(t, a.Count, b.Count, 0.01)
}

func TestJuliaStartsFromSample(t *testing.T) {
	j := &escape.Julia{Exponent: 2, COffset: escape.Coord{Re: 0, Im: 0}}

	// With a zero offset the iteration is z <- z^2, so any |c| > 1
	// escapes and any |c| < 1 does not.
	assert.True(t, j.Escape(complex(2, 0), 100).Escaped)
	assert.False(t, j.Escape(complex(0.5, 0), 100).Escaped)
}

func TestFamilyConversions(t *testing.T) {
	m := &escape.Mandelbrot{Exponent: 2.5}

	j := escape.JuliaFromMandelbrot(m, complex(0.3, -0.2))
	assert.Equal(t, 2.5, j.Exponent)
	assert.Equal(t, escape.Coord{Re: 0.3, Im: -0.2}, j.COffset)

	back := escape.MandelbrotFromJulia(j)
	assert.Equal(t, 2.5, back.Exponent)
}

func TestSetExpClamps(t *testing.T) {
	for _, fn := range []escape.Func{escape.NewMandelbrot(), escape.NewJulia()} {
		fn.SetExp(0.5)
		assert.Equal(t, escape.MinExp, fn.Exp())

		fn.SetExp(3)
		assert.Equal(t, 3.0, fn.Exp())
	}
}

func TestCoordRoundTrip(t *testing.T) {
	c := complex(1.25, -0.75)
	assert.Equal(t, c, escape.CoordOf(c).Complex())
}
