package termui

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/willbeason/mandelterm/pkg/geometry"
	"github.com/willbeason/mandelterm/pkg/render"
	"github.com/willbeason/mandelterm/pkg/view"
)

// ScreenshotBounds is the pixel size of saved stills.
var ScreenshotBounds = geometry.Bounds{Width: 4000, Height: 4000}

// Screenshot writes a high-resolution still of the current view plus a
// state file that can re-render it later, as mb-<unix>.png and
// mb-<unix>.json in imgDir.
//
// The live context is cloned, its location rescaled from the interactive
// bounds with the Min method so nothing visible is cropped, and its
// aspect neutralized for square pixels.
func Screenshot(ctx *render.Context, old geometry.Bounds, imgDir string) error {
	still := ctx.Clone()
	still.Loc = still.Loc.Scale(old, ScreenshotBounds, view.ScaleMin)
	still.Aspect = view.Square()

	unix := time.Now().Unix()

	state, err := json.Marshal(still)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	jsonPath := filepath.Join(imgDir, fmt.Sprintf("mb-%d.json", unix))
	if err := os.WriteFile(jsonPath, state, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", jsonPath, err)
	}

	img := still.Bind(ScreenshotBounds).EMatrix().ToImage(still.Colorer)

	pngPath := filepath.Join(imgDir, fmt.Sprintf("mb-%d.png", unix))
	f, err := os.Create(pngPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", pngPath, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", pngPath, err)
	}

	return nil
}
