package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelterm/pkg/render"
	"github.com/willbeason/mandelterm/pkg/web"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live, browser-navigable view over HTTP",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	cmd.Flags().String("addr", "localhost:8080", "listen address")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}

	server := web.NewServer(render.NewContext())
	return server.ListenAndServe(addr)
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
