// Package termui is the interactive terminal frontend: a raw-mode key
// loop that paints the current view as colored background cells and maps
// keystrokes to render transforms.
package termui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/willbeason/mandelterm/pkg/geometry"
	"github.com/willbeason/mandelterm/pkg/render"
)

// Options configures an interactive session.
type Options struct {
	// ImgDir is where screenshots and their state files land.
	ImgDir string
}

// An App owns the terminal for the duration of an interactive session.
type App struct {
	ctx    *render.Context
	opts   Options
	in     *os.File
	out    *termenv.Output
	frame  strings.Builder
	status []string
}

// NewApp prepares an interactive session around a render context.
func NewApp(ctx *render.Context, opts Options) *App {
	if opts.ImgDir == "" {
		opts.ImgDir = "."
	}

	return &App{
		ctx:  ctx,
		opts: opts,
		in:   os.Stdin,
		out:  termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.TrueColor)),
	}
}

// Run enters raw mode and loops drawing frames and handling keys until
// the user quits or stdin closes. The terminal is restored on return.
func (a *App) Run() error {
	fd := int(a.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	a.out.AltScreen()
	a.out.HideCursor()
	defer func() {
		a.out.ShowCursor()
		a.out.ExitAltScreen()
	}()

	buf := make([]byte, 1)
	for {
		bounds, err := a.bounds()
		if err != nil {
			return err
		}

		if err := a.draw(bounds); err != nil {
			return err
		}

		n, err := a.in.Read(buf)
		if err == io.EOF || n == 0 {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if !a.handleKey(buf[0], bounds) {
			return nil
		}
	}
}

func (a *App) bounds() (geometry.Bounds, error) {
	width, height, err := term.GetSize(int(a.in.Fd()))
	if err != nil {
		return geometry.Bounds{}, fmt.Errorf("reading terminal size: %w", err)
	}
	return geometry.Bounds{Width: width, Height: height}, nil
}

// handleKey applies one keystroke and reports whether to keep running.
//
// The bindings match the classic layout: wasd pans, +/- zooms, t/g and
// y/h step iterations and exponent, x switches family, m resets, p saves
// a screenshot, q quits.
func (a *App) handleKey(key byte, bounds geometry.Bounds) bool {
	switch key {
	case 'q':
		return false

	case '+', '=':
		a.ctx.Apply(render.ScaleIn)
	case '-', '_':
		a.ctx.Apply(render.ScaleOut)

	case 'a':
		a.ctx.Apply(render.TranslateLeft)
	case 'd':
		a.ctx.Apply(render.TranslateRight)
	case 'w':
		a.ctx.Apply(render.TranslateUp)
	case 's':
		a.ctx.Apply(render.TranslateDown)

	case 't':
		a.ctx.Apply(render.IncIterations)
	case 'g':
		a.ctx.Apply(render.DecIterations)

	case 'y':
		a.ctx.Apply(render.IncExp)
	case 'h':
		a.ctx.Apply(render.DecExp)

	case 'x':
		a.ctx.Apply(render.SwitchFn)
	case 'm':
		a.ctx.Apply(render.Reset)

	case 'p':
		if err := Screenshot(a.ctx, bounds, a.opts.ImgDir); err != nil {
			a.status = append(a.status, fmt.Sprintf("save failed: %v", err))
		}
	}

	return true
}

// draw renders one full frame plus the status overlay.
func (a *App) draw(bounds geometry.Bounds) error {
	renderStart := time.Now()
	mat := a.ctx.Bind(bounds).EMatrix()
	a.renderFrame(mat)
	renderDelta := time.Since(renderStart)

	drawStart := time.Now()
	if _, err := a.out.WriteString(a.frame.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	drawDelta := time.Since(drawStart)

	labels := []string{
		fmt.Sprintf("exp    = %.4f", a.ctx.Fn.Exp()),
		fmt.Sprintf("re     = %.4e", a.ctx.Loc.Re0),
		fmt.Sprintf("im     = %.4e", a.ctx.Loc.Im0),
		fmt.Sprintf("iter   = %d", a.ctx.Loc.MaxIter),
		fmt.Sprintf("scalar = %.4e", a.ctx.Loc.Scalar),
		fmt.Sprintf("render = %dms", renderDelta.Milliseconds()),
		fmt.Sprintf("draw   = %dms", drawDelta.Milliseconds()),
	}
	labels = append(labels, a.status...)
	a.status = a.status[:0]

	for i, label := range labels {
		a.out.MoveCursor(i+1, 1)
		a.out.Reset()
		if _, err := a.out.WriteString(label); err != nil {
			return err
		}
	}

	return nil
}

// renderFrame rebuilds the frame buffer as ANSI background cells. The
// builder is reused across frames to keep allocation out of the loop.
func (a *App) renderFrame(mat *render.EMatrix) {
	a.frame.Reset()

	for row := 0; row < mat.NRows(); row++ {
		fmt.Fprintf(&a.frame, "%s%d;%dH", termenv.CSI, row+1, 1)
		for col := 0; col < mat.NCols(); col++ {
			r, g, b := a.ctx.Colorer.RGB(mat.AtPos(row, col))
			color := termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", r, g, b))
			fmt.Fprintf(&a.frame, "%s%sm ", termenv.CSI, color.Sequence(true))
		}
	}
}
