package render

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/willbeason/mandelterm/pkg/escape"
	"github.com/willbeason/mandelterm/pkg/geometry"
)

// A Job is a Context bound to concrete pixel bounds. It is read-only:
// the bound context must not be mutated while the job evaluates.
type Job struct {
	ctx    *Context
	bounds geometry.Bounds
}

func (j *Job) Bounds() geometry.Bounds {
	return j.bounds
}

// A Progress sink receives completion updates during evaluation. It is
// called per finished row from worker goroutines and must be safe for
// concurrent use.
type Progress func(done, total int)

// EMatrix evaluates the escape function over the full pixel grid.
//
// This is the most expensive operation in the system.
func (j *Job) EMatrix() *EMatrix {
	return j.eval(nil)
}

// EMatrixProgress is EMatrix with a progress sink, for long-running
// high-resolution renders.
func (j *Job) EMatrixProgress(progress Progress) *EMatrix {
	return j.eval(progress)
}

// eval fans rows out across workers. Each cell's result lands at its
// pre-determined row-major index, so the output is deterministic no
// matter the completion order, and no two workers touch the same cell.
func (j *Job) eval(progress Progress) *EMatrix {
	width, height := j.bounds.Width, j.bounds.Height
	cells := make([]escape.Result, width*height)

	rows := make(chan int)
	go func() {
		for y := 0; y < height; y++ {
			rows <- y
		}
		close(rows)
	}()

	var done atomic.Int64
	total := width * height

	workers := runtime.NumCPU()
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			// Hoisted out of the per-pixel loop.
			fn := j.ctx.Fn
			limit := j.ctx.Loc.MaxIter

			for y := range rows {
				base := y * width
				for x := 0; x < width; x++ {
					c := j.ctx.ComplexAt(j.bounds, geometry.Pos{X: x, Y: y})
					cells[base+x] = fn.Escape(c, limit)
				}

				if progress != nil {
					progress(int(done.Add(int64(width))), total)
				}
			}
		}()
	}
	wg.Wait()

	return FromSlice(width, height, cells)
}
