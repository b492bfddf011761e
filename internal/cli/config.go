package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/drawable"
)

// canvasConfig is the TOML canvas file.
//
//	width = 800
//	height = 600
//	layers = 2
//	initial_layer = 0
//	color = "#1565c0"
//	pen_size = 4
//	font_family = "sans"
//	font_size = 18
//
//	[[fonts]]
//	family = "serif"
//	path = "fonts/serif.ttf"
type canvasConfig struct {
	Width        int          `toml:"width"`
	Height       int          `toml:"height"`
	Layers       int          `toml:"layers"`
	InitialLayer int          `toml:"initial_layer"`
	Color        string       `toml:"color"`
	PenSize      float64      `toml:"pen_size"`
	FontFamily   string       `toml:"font_family"`
	FontSize     float64      `toml:"font_size"`
	Fonts        []fontConfig `toml:"fonts"`
}

type fontConfig struct {
	Family string `toml:"family"`
	Path   string `toml:"path"`
}

func defaultCanvasConfig() canvasConfig {
	return canvasConfig{
		Width:      800,
		Height:     600,
		Layers:     1,
		Color:      sketchpad.DefaultColor,
		PenSize:    sketchpad.DefaultPenSize,
		FontFamily: drawable.DefaultFont.Family,
		FontSize:   drawable.DefaultFont.Size,
	}
}

// loadCanvasConfig reads path over the defaults. An empty path returns the
// defaults.
func loadCanvasConfig(path string) (canvasConfig, error) {
	cfg := defaultCanvasConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, keys[0].String())
	}
	return cfg, nil
}

// options converts cfg into engine options, reading any font files.
func (cfg canvasConfig) options() ([]sketchpad.Option, error) {
	opts := []sketchpad.Option{
		sketchpad.WithSize(cfg.Width, cfg.Height),
		sketchpad.WithLayerCount(cfg.Layers),
		sketchpad.WithInitialLayer(cfg.InitialLayer),
		sketchpad.WithColor(cfg.Color),
		sketchpad.WithPenSize(cfg.PenSize),
		sketchpad.WithTextFont(drawable.Font{Family: cfg.FontFamily, Size: cfg.FontSize}),
	}
	for _, f := range cfg.Fonts {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", f.Family, err)
		}
		opts = append(opts, sketchpad.WithFont(f.Family, data))
	}
	return opts, nil
}
