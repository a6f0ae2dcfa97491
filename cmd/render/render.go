package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelterm/pkg/geometry"
	"github.com/willbeason/mandelterm/pkg/render"
	"github.com/willbeason/mandelterm/pkg/view"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render STATE",
		Short: "Render a saved view to a PNG at arbitrary resolution",
		Args:  cobra.ExactArgs(1),
		RunE:  runCmd,
	}

	cmd.Flags().StringP("out", "o", "mandel.png", "destination image path")
	cmd.Flags().Int("width", 1920, "output width in pixels")
	cmd.Flags().Int("height", 1080, "output height in pixels")
	cmd.Flags().Int("ref-width", 4000, "pixel width the state was saved for")
	cmd.Flags().Int("ref-height", 4000, "pixel height the state was saved for")
	cmd.Flags().Bool("blur", false, "apply a gaussian blur before colorizing")

	return cmd
}

func runCmd(cmd *cobra.Command, args []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return err
	}
	height, err := cmd.Flags().GetInt("height")
	if err != nil {
		return err
	}
	refWidth, err := cmd.Flags().GetInt("ref-width")
	if err != nil {
		return err
	}
	refHeight, err := cmd.Flags().GetInt("ref-height")
	if err != nil {
		return err
	}
	blur, err := cmd.Flags().GetBool("blur")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading state %s: %w", args[0], err)
	}

	rctx := &render.Context{}
	if err := json.Unmarshal(data, rctx); err != nil {
		return fmt.Errorf("decoding state %s: %w", args[0], err)
	}

	ref := geometry.Bounds{Width: refWidth, Height: refHeight}
	bounds := geometry.Bounds{Width: width, Height: height}
	rctx.Loc = rctx.Loc.Scale(ref, bounds, view.ScaleMin)
	rctx.Aspect = view.Square()

	log.Printf("rendering %dx%d at re=%g im=%g scalar=%g iter=%d",
		width, height, rctx.Loc.Re0, rctx.Loc.Im0, rctx.Loc.Scalar, rctx.Loc.MaxIter)

	mat := rctx.Bind(bounds).EMatrixProgress(logProgress())
	if blur {
		mat = mat.GaussianBlur()
	}

	img := mat.ToImage(rctx.Colorer)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", out, err)
	}

	log.Printf("saved to %q", out)
	return nil
}

// logProgress reports render completion at 10% increments. The returned
// sink is called concurrently from render workers.
func logProgress() render.Progress {
	var lastDecile atomic.Int64

	return func(done, total int) {
		decile := int64(done * 10 / total)
		if prev := lastDecile.Load(); decile > prev && lastDecile.CompareAndSwap(prev, decile) {
			log.Printf("rendered: %d%%", decile*10)
		}
	}
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
