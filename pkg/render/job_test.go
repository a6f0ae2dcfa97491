package render_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/mandelterm/pkg/escape"
	"github.com/willbeason/mandelterm/pkg/geometry"
	"github.com/willbeason/mandelterm/pkg/render"
)

func TestEMatrixEndToEnd(t *testing.T) {
	ctx := render.NewContext()
	bounds := geometry.Bounds{Width: 100, Height: 100}

	mat := ctx.Bind(bounds).EMatrix()

	require.Equal(t, 100, mat.NCols())
	require.Equal(t, 100, mat.NRows())

	// The default view is centered on the set, so the matrix must
	// contain both interior and escaping cells.
	interior, escaped := 0, 0
	mat.Each(func(_ int, r escape.Result) {
		if r.Escaped {
			escaped++
		} else {
			interior++
		}
	})
	assert.NotZero(t, interior)
	assert.NotZero(t, escaped)

	// The center pixel is the origin, the classic interior point.
	assert.False(t, mat.AtPos(50, 50).Escaped)

	img := mat.ToImage(ctx.Colorer)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestEMatrixMatchesSequentialSampling(t *testing.T) {
	ctx := render.NewContext()
	bounds := geometry.Bounds{Width: 17, Height: 9}

	mat := ctx.Bind(bounds).EMatrix()

	// Parallel construction preserves the coordinate-to-index mapping:
	// every cell equals a direct evaluation of its pixel.
	for y := 0; y < bounds.Height; y++ {
		for x := 0; x < bounds.Width; x++ {
			c := ctx.ComplexAt(bounds, geometry.Pos{X: x, Y: y})
			want := ctx.Fn.Escape(c, ctx.Loc.MaxIter)
			assert.Equal(t, want, mat.AtPos(y, x), "pixel (%d,%d)", x, y)
		}
	}
}

func TestEMatrixProgress(t *testing.T) {
	ctx := render.NewContext()
	bounds := geometry.Bounds{Width: 10, Height: 8}

	var mu sync.Mutex
	maxDone, calls := 0, 0

	mat := ctx.Bind(bounds).EMatrixProgress(func(done, total int) {
		mu.Lock()
		defer mu.Unlock()

		assert.Equal(t, 80, total)
		assert.LessOrEqual(t, done, total)
		if done > maxDone {
			maxDone = done
		}
		calls++
	})

	require.Equal(t, 80, mat.Len())
	assert.Equal(t, 80, maxDone, "progress must reach done == total")
	assert.Equal(t, 8, calls, "one progress call per row")
}
