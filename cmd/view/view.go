package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelterm/pkg/render"
	"github.com/willbeason/mandelterm/pkg/termui"
	"github.com/willbeason/mandelterm/pkg/view"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the Mandelbrot and Julia sets interactively in the terminal",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	cmd.Flags().String("img-dir", ".", "directory for screenshots and their state files")
	cmd.Flags().String("state", "", "saved state file to resume from")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	imgDir, err := cmd.Flags().GetString("img-dir")
	if err != nil {
		return err
	}
	statePath, err := cmd.Flags().GetString("state")
	if err != nil {
		return err
	}

	ctx := render.NewTerminalContext(view.Default())
	if statePath != "" {
		saved, err := loadState(statePath)
		if err != nil {
			return err
		}
		// The saved colorer and function resume as-is; the aspect is
		// re-fit to terminal cells.
		ctx = saved
		ctx.Aspect = view.Terminal()
	}

	app := termui.NewApp(ctx, termui.Options{ImgDir: imgDir})
	return app.Run()
}

func loadState(path string) (*render.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading state %s: %w", path, err)
	}

	ctx := &render.Context{}
	if err := json.Unmarshal(data, ctx); err != nil {
		return nil, fmt.Errorf("decoding state %s: %w", path, err)
	}
	return ctx, nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
