package sketchpad

import (
	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/internal/imageload"
)

// Defaults applied by New.
const (
	DefaultColor   = "#000000"
	DefaultPenSize = 5
)

// Option configures a Sketchpad during creation.
//
// Example:
//
//	sp, err := sketchpad.New(
//		sketchpad.WithSize(800, 600),
//		sketchpad.WithLayerCount(3),
//		sketchpad.WithPenSize(3),
//	)
type Option func(*config)

// config holds the construction settings.
type config struct {
	width, height int
	layerCount    int
	initialLayer  int
	readOnly      bool
	color         string
	penSize       float64
	textFont      drawable.Font
	observer      Observer
	snapshot      *Snapshot
	loader        ImageLoader
	dispatch      func(func())
	fonts         []fontFile
}

type fontFile struct {
	family string
	data   []byte
}

// defaultConfig returns the settings used when no option overrides them.
func defaultConfig() config {
	return config{
		layerCount: 1,
		color:      DefaultColor,
		penSize:    DefaultPenSize,
		textFont:   drawable.DefaultFont,
		loader:     imageload.Default{},
	}
}

// WithSize sets the canvas size in pixels. It is required unless a
// snapshot provides it.
func WithSize(width, height int) Option {
	return func(c *config) {
		c.width, c.height = width, height
	}
}

// WithLayerCount sets the number of content layers. An overlay layer is
// always added on top.
func WithLayerCount(n int) Option {
	return func(c *config) {
		c.layerCount = n
	}
}

// WithInitialLayer sets the layer new strokes and objects go to.
func WithInitialLayer(i int) Option {
	return func(c *config) {
		c.initialLayer = i
	}
}

// WithReadOnly makes the pointer handlers ignore input.
func WithReadOnly(readOnly bool) Option {
	return func(c *config) {
		c.readOnly = readOnly
	}
}

// WithColor sets the initial pen color as a hex string.
func WithColor(color string) Option {
	return func(c *config) {
		c.color = color
	}
}

// WithPenSize sets the initial pen width in pixels.
func WithPenSize(size float64) Option {
	return func(c *config) {
		c.penSize = size
	}
}

// WithTextFont sets the font new text boxes are measured with.
func WithTextFont(f drawable.Font) Option {
	return func(c *config) {
		c.textFont = f
	}
}

// WithFont registers a TTF or OTF font under family, in addition to the
// built-in "sans", "bold", "italic" and "mono" families.
func WithFont(family string, data []byte) Option {
	return func(c *config) {
		c.fonts = append(c.fonts, fontFile{family, data})
	}
}

// WithObserver installs change callbacks.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// WithSnapshot restores the drawables and history saved by ToObject. The
// snapshot's size and layer count apply unless a later option overrides
// them.
func WithSnapshot(s *Snapshot) Option {
	return func(c *config) {
		c.snapshot = s
		if s == nil {
			return
		}
		if s.Width > 0 && s.Height > 0 {
			c.width, c.height = s.Width, s.Height
		}
		if s.LayerCount > 0 {
			c.layerCount = s.LayerCount
		}
	}
}

// WithLoader replaces the image loader. The default resolves data, http(s)
// and file URLs.
func WithLoader(l ImageLoader) Option {
	return func(c *config) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithDispatcher routes background completions through dispatch, which
// must run the function on the goroutine that owns the Sketchpad. Without
// it completions are queued and run by Wait.
func WithDispatcher(dispatch func(func())) Option {
	return func(c *config) {
		c.dispatch = dispatch
	}
}
