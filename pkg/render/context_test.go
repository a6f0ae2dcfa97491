package render_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/mandelterm/pkg/escape"
	"github.com/willbeason/mandelterm/pkg/render"
	"github.com/willbeason/mandelterm/pkg/view"
)

func TestTranslateTransforms(t *testing.T) {
	ctx := render.NewContext()
	step := ctx.Loc.Scalar * render.TranslateStep

	ctx.Apply(render.TranslateRight)
	assert.InDelta(t, step, ctx.Loc.Re0, 1e-12)

	ctx.Apply(render.TranslateLeft)
	ctx.Apply(render.TranslateLeft)
	assert.InDelta(t, -step, ctx.Loc.Re0, 1e-12)

	ctx.Apply(render.TranslateDown)
	assert.InDelta(t, step, ctx.Loc.Im0, 1e-12)

	ctx.Apply(render.TranslateUp)
	ctx.Apply(render.TranslateUp)
	assert.InDelta(t, -step, ctx.Loc.Im0, 1e-12)
}

func TestScaleTransforms(t *testing.T) {
	ctx := render.NewContext()
	start := ctx.Loc.Scalar

	ctx.Apply(render.ScaleIn)
	assert.InDelta(t, start/2, ctx.Loc.Scalar, 1e-12)

	ctx.Apply(render.ScaleOut)
	ctx.Apply(render.ScaleOut)
	assert.InDelta(t, start*2, ctx.Loc.Scalar, 1e-12)
}

func TestIterationTransformsClamp(t *testing.T) {
	ctx := render.NewContext()

	ctx.Apply(render.IncIterations)
	assert.Equal(t, 125, ctx.Loc.MaxIter)

	// Repeated decrements floor at the minimum rather than underflowing.
	for i := 0; i < 10; i++ {
		ctx.Apply(render.DecIterations)
	}
	assert.Equal(t, view.MinIter, ctx.Loc.MaxIter)
}

func TestExpTransformsClamp(t *testing.T) {
	ctx := render.NewContext()

	ctx.Apply(render.IncExp)
	assert.InDelta(t, 2+render.ExpStep, ctx.Fn.Exp(), 1e-12)

	// Driving the exponent down stops above 1, keeping ln(exp) away
	// from zero in the smoothing denominator.
	for i := 0; i < 2000; i++ {
		ctx.Apply(render.DecExp)
	}
	assert.Equal(t, escape.MinExp, ctx.Fn.Exp())
}

func TestSwitchFnRoundTrip(t *testing.T) {
	ctx := render.NewContext()
	ctx.Fn.SetExp(2.5)
	ctx.Loc.MoveTo(complex(0.3, -0.2))

	// Mandelbrot -> Julia fixes the offset at the view origin and keeps
	// the view where it is.
	ctx.Apply(render.SwitchFn)
	j, ok := ctx.Fn.(*escape.Julia)
	require.True(t, ok)
	assert.Equal(t, 2.5, j.Exponent)
	assert.Equal(t, complex(0.3, -0.2), j.COffset.Complex())
	assert.Equal(t, complex(0.3, -0.2), ctx.Loc.Origin())

	// Julia -> Mandelbrot recenters on the Julia offset, restoring the
	// original origin and exponent exactly.
	ctx.Apply(render.SwitchFn)
	m, ok := ctx.Fn.(*escape.Mandelbrot)
	require.True(t, ok)
	assert.Equal(t, 2.5, m.Exponent)
	assert.Equal(t, complex(0.3, -0.2), ctx.Loc.Origin())
}

func TestResetKeepsFunctionFamily(t *testing.T) {
	ctx := render.NewContext()
	ctx.Apply(render.SwitchFn)
	ctx.Apply(render.ScaleIn)
	ctx.Apply(render.TranslateRight)

	ctx.Apply(render.Reset)

	assert.Equal(t, view.Default(), ctx.Loc)
	assert.IsType(t, &escape.Julia{}, ctx.Fn)
}

func TestContextJSONRoundTrip(t *testing.T) {
	for name, mutate := range map[string]func(*render.Context){
		"mandelbrot": func(ctx *render.Context) {
			ctx.Fn.SetExp(2.125)
			ctx.Apply(render.ScaleIn)
			ctx.Loc.MoveTo(complex(-0.745, 0.113))
		},
		"julia": func(ctx *render.Context) {
			ctx.Apply(render.SwitchFn)
			ctx.Apply(render.IncIterations)
		},
	} {
		t.Run(name, func(t *testing.T) {
			ctx := render.NewContext()
			mutate(ctx)

			data, err := json.Marshal(ctx)
			require.NoError(t, err)

			loaded := &render.Context{}
			require.NoError(t, json.Unmarshal(data, loaded))

			assert.Equal(t, ctx.Loc, loaded.Loc)
			assert.Equal(t, ctx.Fn, loaded.Fn)
			assert.Equal(t, ctx.Colorer, loaded.Colorer)
			assert.Equal(t, ctx.Aspect, loaded.Aspect)
		})
	}
}

func TestContextJSONUnknownKind(t *testing.T) {
	loaded := &render.Context{}
	err := json.Unmarshal([]byte(`{"kind":"newton"}`), loaded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newton")
}

func TestCloneIsIndependent(t *testing.T) {
	ctx := render.NewContext()
	clone := ctx.Clone()

	clone.Apply(render.ScaleIn)
	clone.Fn.SetExp(3)

	assert.Equal(t, 0.1, ctx.Loc.Scalar)
	assert.Equal(t, 2.0, ctx.Fn.Exp())
}
