// Package cli implements the sketchpad command-line interface.
//
// The CLI drives a headless engine: it builds a canvas from a TOML file and
// flags, replays a JSON script of pointer events and operations against it,
// and writes the composite as PNG. It is built on cobra and logs through
// charmbracelet/log, which also receives the engine's slog output.
//
// # Commands
//
//   - render: replay a script and write the composite image and state
//   - inspect: summarize a saved state file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, including
// the engine's stroke smoothing and repaint messages.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/sketchpad"
)

var (
	version = "dev"
	commit  string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the sketchpad CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "sketchpad",
		Short:        "Headless layered drawing engine",
		Long:         `sketchpad replays drawing sessions (strokes, text, images, selections and undo) against a layered raster canvas and exports the result.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			sketchpad.SetLogger(slog.New(logger))
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("sketchpad %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newInspectCmd())
	return root
}
