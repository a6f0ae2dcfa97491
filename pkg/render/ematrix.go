package render

import (
	"image"

	"github.com/willbeason/mandelterm/pkg/escape"
	"github.com/willbeason/mandelterm/pkg/palette"
)

// An EMatrix maps the cells of a render pass to their evaluated escapes.
//
// Cells are stored row-major: index = row*NCols + col. Construction,
// iteration, blurring, and image conversion all share that ordering.
type EMatrix struct {
	ncols int
	nrows int
	cells []escape.Result
}

// FromSlice wraps a row-major buffer of ncols*nrows escapes.
// It panics if the buffer length does not match the dimensions.
func FromSlice(ncols, nrows int, cells []escape.Result) *EMatrix {
	if len(cells) != ncols*nrows {
		panic("render: escape buffer does not match matrix dimensions")
	}
	return &EMatrix{ncols: ncols, nrows: nrows, cells: cells}
}

func (m *EMatrix) NCols() int { return m.ncols }

func (m *EMatrix) NRows() int { return m.nrows }

// Len is the number of cells.
func (m *EMatrix) Len() int { return len(m.cells) }

// At is the cell at a linear row-major index.
func (m *EMatrix) At(i int) escape.Result {
	return m.cells[i]
}

// AtPos is the cell at (row, col).
func (m *EMatrix) AtPos(row, col int) escape.Result {
	return m.cells[row*m.ncols+col]
}

// Each visits every cell in linear index order.
func (m *EMatrix) Each(visit func(i int, r escape.Result)) {
	for i, r := range m.cells {
		visit(i, r)
	}
}

// The blur kernel. Weights are relative; the divisor is their sum.
var blurKernel = [3][3]float64{
	{1, 2, 1},
	{2, 16, 2},
	{1, 2, 1},
}

var blurDivisor = func() float64 {
	sum := 0.0
	for _, row := range blurKernel {
		for _, w := range row {
			sum += w
		}
	}
	return sum
}()

// GaussianBlur is a new matrix with each interior cell replaced by a
// weighted 3x3 neighborhood average. Border cells pass through unmodified,
// and an interior cell that did not escape stays that way.
//
// Non-escaped neighbors are excluded from the accumulation but the
// divisor stays fixed, slightly darkening cells that border the set.
// Renormalizing by the present-neighbor weight would instead brighten a
// visible outline around the set boundary.
func (m *EMatrix) GaussianBlur() *EMatrix {
	cells := make([]escape.Result, len(m.cells))

	for row := 0; row < m.nrows; row++ {
		for col := 0; col < m.ncols; col++ {
			i := row*m.ncols + col

			if row == 0 || col == 0 || row == m.nrows-1 || col == m.ncols-1 {
				cells[i] = m.cells[i]
				continue
			}

			center := m.cells[i]
			if !center.Escaped {
				continue
			}

			acc := 0.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					neighbor := m.AtPos(row+dy, col+dx)
					if !neighbor.Escaped {
						continue
					}
					acc += neighbor.Count * blurKernel[dy+1][dx+1]
				}
			}

			cells[i] = escape.After(acc / blurDivisor)
		}
	}

	return FromSlice(m.ncols, m.nrows, cells)
}

// ToImage colors every cell through the given palette into a pixel
// buffer of the same dimensions.
func (m *EMatrix) ToImage(colorer palette.SineRGB) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.ncols, m.nrows))

	for row := 0; row < m.nrows; row++ {
		for col := 0; col < m.ncols; col++ {
			r, g, b := colorer.RGB(m.AtPos(row, col))

			offset := img.PixOffset(col, row)
			img.Pix[offset] = r
			img.Pix[offset+1] = g
			img.Pix[offset+2] = b
			img.Pix[offset+3] = 0xff
		}
	}

	return img
}
