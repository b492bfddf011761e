package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/sketchpad"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config string // TOML canvas file
	script string // JSON step list
	from   string // state file to restore before replaying
	output string // PNG output path
	state  string // optional state output path
	layers string // comma-separated layer indices to composite
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Replay a drawing script and write the composite as PNG",
		Long: `render builds a canvas from --config (or restores one with --from),
replays the steps in --script and composites the visible layers onto a
white background.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "canvas configuration (TOML)")
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "drawing script (JSON)")
	cmd.Flags().StringVar(&opts.from, "from", "", "restore a saved state before replaying")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "sketch.png", "output PNG file")
	cmd.Flags().StringVar(&opts.state, "state", "", "also write the full state (JSON) to this file")
	cmd.Flags().StringVar(&opts.layers, "layers", "", "layers to composite (comma-separated, default visible)")

	return cmd
}

// parseLayers parses the --layers flag. An empty string selects the
// visible layers.
func parseLayers(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid layer %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	indices, err := parseLayers(opts.layers)
	if err != nil {
		return err
	}
	cfg, err := loadCanvasConfig(opts.config)
	if err != nil {
		return err
	}
	spOpts, err := cfg.options()
	if err != nil {
		return err
	}
	if opts.from != "" {
		snap, err := readSnapshot(opts.from)
		if err != nil {
			return err
		}
		spOpts = append(spOpts, sketchpad.WithSnapshot(snap))
	}

	sp, err := sketchpad.New(spOpts...)
	if err != nil {
		return err
	}
	defer sp.Close()

	if err := sp.Wait(ctx); err != nil {
		return err
	}
	if opts.script != "" {
		steps, err := readScript(opts.script)
		if err != nil {
			return err
		}
		logger.Info("Replaying script", "file", opts.script, "steps", len(steps))
		if err := replay(ctx, sp, steps, logger); err != nil {
			return err
		}
	}

	img, err := composite(ctx, sp, indices)
	if err != nil {
		return err
	}
	if err := writePNG(opts.output, img); err != nil {
		return err
	}
	if opts.state != "" {
		if err := writeSnapshot(opts.state, sp.ToObject(false)); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Rendered %dx%d to %s", sp.Width(), sp.Height(), opts.output))
	return nil
}

func composite(ctx context.Context, sp *sketchpad.Sketchpad, indices []int) (*image.RGBA, error) {
	var (
		img  *image.RGBA
		cerr error
	)
	sp.ToCanvas(func(out *image.RGBA, err error) {
		img, cerr = out, err
	}, indices...)
	if err := sp.Wait(ctx); err != nil {
		return nil, err
	}
	return img, cerr
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func readSnapshot(path string) (*sketchpad.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap sketchpad.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("state %s: %w", path, err)
	}
	return &snap, nil
}

func writeSnapshot(path string, snap *sketchpad.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
