package sketchpad

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/geom"
	"github.com/gogpu/sketchpad/history"
	"github.com/gogpu/sketchpad/internal/layers"
	"github.com/gogpu/sketchpad/internal/render"
	"github.com/gogpu/sketchpad/rubberband"
)

// Mode is the interaction mode.
type Mode string

// Modes.
const (
	ModeDraw   Mode = "draw"
	ModeErase  Mode = "erase"
	ModeSelect Mode = "select"
	ModeText   Mode = "text"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeDraw, ModeErase, ModeSelect, ModeText:
		return true
	default:
		return false
	}
}

// State is the selection sub-state.
type State string

// States.
const (
	// StateNone means no selection is shown.
	StateNone State = ""
	// StateSelecting means taps add to the selection until
	// CompleteSelection.
	StateSelecting State = "selecting"
	// StateDeselecting means taps remove from the selection until
	// CompleteSelection.
	StateDeselecting State = "deselecting"
	// StateSelected means the rubber band is shown around the selection.
	StateSelected State = "selected"
)

// Modifiers are the keyboard modifiers held during a pointer press.
type Modifiers uint8

// Modifier bits.
const (
	// ModCtrl toggles the object under the pointer without dropping the
	// rest of the selection.
	ModCtrl Modifiers = 1 << iota
)

// KindSet is the set of drawable kinds in a selection.
type KindSet map[drawable.Kind]bool

// Observer receives change notifications. Any field may be nil.
type Observer struct {
	// CanUndo fires when undo becomes available or unavailable.
	CanUndo func(bool)
	// CanRedo fires when redo becomes available or unavailable.
	CanRedo func(bool)
	// ModeChanged fires after SetMode switches modes.
	ModeChanged func(Mode)
	// StateChanged fires on selection state changes. kinds is set when a
	// selection is completed and nil otherwise.
	StateChanged func(state State, kinds KindSet)
}

func (o Observer) modeChanged(m Mode) {
	if o.ModeChanged != nil {
		o.ModeChanged(m)
	}
}

func (o Observer) stateChanged(s State, kinds KindSet) {
	if o.StateChanged != nil {
		o.StateChanged(s, kinds)
	}
}

// ImageLoader decodes the image at a URL. It is called from background
// goroutines.
type ImageLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// DefaultLayer selects the current drawing layer in operations that take
// a layer index.
const DefaultLayer = -1

// KeepLayer leaves the current drawing layer unchanged in ActivateLayer.
const KeepLayer = -1

// Snapshot is the persisted form of a Sketchpad, produced by ToObject and
// restored by WithSnapshot.
type Snapshot struct {
	LayerCount int                  `json:"layerCount"`
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	Drawables  []*drawable.Drawable `json:"drawables"`
	History    []history.Entry      `json:"undoHistory,omitempty"`
	Cursor     int                  `json:"curHistory,omitempty"`
}

// Sketchpad is a layered drawing engine. Create one with New.
type Sketchpad struct {
	width, height int

	stack    *layers.Stack
	renderer *render.Renderer
	band     *rubberband.RubberBand
	log      *history.Log
	obs      Observer
	loader   ImageLoader

	drawables []*drawable.Drawable
	index     map[*drawable.Drawable]int

	mode         Mode
	state        State
	erase        bool
	color        string
	penSize      float64
	textFont     drawable.Font
	currentLayer int
	readOnly     bool

	sel *selection
	// selCursor is the history cursor when the selection was first made,
	// -1 when there is none. Restarting and completing keep it; only a
	// reset clears it.
	selCursor int
	// pending holds the value each object had before the first uncommitted
	// ApplyColorToSelection or ApplyPenSizeToSelection.
	pending map[*drawable.Drawable]drawable.Attr

	gesture gesture
	edit    *textEdit

	async
}

// New creates a Sketchpad. Configuration errors are logged and returned;
// no partial engine is created.
func New(opts ...Option) (*Sketchpad, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s, err := newSketchpad(cfg)
	if err != nil {
		Logger().Error("sketchpad: configuration error", "err", err)
		return nil, err
	}
	return s, nil
}

func newSketchpad(cfg config) (*Sketchpad, error) {
	if cfg.width <= 0 || cfg.height <= 0 || cfg.layerCount < 1 {
		return nil, fmt.Errorf("%w: %dx%d with %d layers", ErrInvalidSize, cfg.width, cfg.height, cfg.layerCount)
	}
	if cfg.initialLayer < 0 || cfg.initialLayer >= cfg.layerCount {
		return nil, fmt.Errorf("%w: initial layer %d of %d", ErrInvalidLayer, cfg.initialLayer, cfg.layerCount)
	}
	stack, err := layers.New(cfg.layerCount, cfg.width, cfg.height)
	if err != nil {
		return nil, err
	}
	fonts, err := render.NewFonts()
	if err != nil {
		return nil, err
	}
	for _, f := range cfg.fonts {
		if err := fonts.Register(f.family, f.data); err != nil {
			return nil, err
		}
	}

	s := &Sketchpad{
		width:        cfg.width,
		height:       cfg.height,
		stack:        stack,
		renderer:     render.New(fonts),
		band:         rubberband.New(),
		obs:          cfg.observer,
		loader:       cfg.loader,
		index:        make(map[*drawable.Drawable]int),
		mode:         ModeDraw,
		color:        cfg.color,
		penSize:      cfg.penSize,
		textFont:     cfg.textFont,
		currentLayer: cfg.initialLayer,
		readOnly:     cfg.readOnly,
		pending:      make(map[*drawable.Drawable]drawable.Attr),
		selCursor:    -1,
	}
	s.band.SetBoundary(geom.NewRect(0, 0, float64(cfg.width), float64(cfg.height)))
	s.initAsync(cfg.dispatch)

	var records []history.Entry
	cursor := 0
	if snap := cfg.snapshot; snap != nil {
		for i, d := range snap.Drawables {
			if d == nil {
				return nil, fmt.Errorf("%w: drawable %d is empty", ErrInvalidSnapshot, i)
			}
			if !stack.Valid(d.Layer) {
				return nil, fmt.Errorf("%w: drawable %d on layer %d of %d", ErrInvalidSnapshot, i, d.Layer, cfg.layerCount)
			}
			d = d.Clone()
			d.Selected = false
			s.append(d)
		}
		if err := s.validateHistory(snap.History); err != nil {
			return nil, err
		}
		records, cursor = append([]history.Entry(nil), snap.History...), snap.Cursor
	}
	s.log = history.New(records, cursor, history.Observer{
		CanUndo: cfg.observer.CanUndo,
		CanRedo: cfg.observer.CanRedo,
	})

	s.redrawAll()
	s.loadSnapshotImages()
	return s, nil
}

func (s *Sketchpad) validateHistory(records []history.Entry) error {
	for i, e := range records {
		for _, l := range e.Leaves(true) {
			if l.Object < 0 || l.Object >= len(s.drawables) {
				return fmt.Errorf("%w: entry %d refers to drawable %d of %d", ErrInvalidSnapshot, i, l.Object, len(s.drawables))
			}
			switch l.Action {
			case history.ActionMove:
				if l.FromRect == nil || l.ToRect == nil {
					return fmt.Errorf("%w: move entry %d without rectangles", ErrInvalidSnapshot, i)
				}
			case history.ActionAttr:
				if l.FromAttr == nil || l.ToAttr == nil {
					return fmt.Errorf("%w: attr entry %d without attributes", ErrInvalidSnapshot, i)
				}
			}
		}
	}
	return nil
}

// loadSnapshotImages decodes restored images in the background and repaints
// their layers as they arrive.
func (s *Sketchpad) loadSnapshotImages() {
	for _, d := range s.drawables {
		if d.Kind != drawable.KindImage || d.Image == nil || d.Image.Image != nil || d.Image.URL == "" {
			continue
		}
		s.spawn(func(ctx context.Context) func() {
			img, err := s.loader.Load(ctx, d.Image.URL)
			return func() {
				if err != nil {
					Logger().Warn("sketchpad: restore image", "err", err)
					return
				}
				d.Image.Image = img
				s.renderer.Forget(d.ID)
				s.repaint(layers.SetOf(d.Layer))
			}
		})
	}
}

// Close tears the engine down. Background work still in flight is
// cancelled or ignored when it completes.
func (s *Sketchpad) Close() error {
	s.shutdown()
	return nil
}

// Width returns the canvas width in pixels.
func (s *Sketchpad) Width() int { return s.width }

// Height returns the canvas height in pixels.
func (s *Sketchpad) Height() int { return s.height }

// LayerCount returns the number of content layers.
func (s *Sketchpad) LayerCount() int { return s.stack.Count() }

// Overlay returns the index of the overlay layer.
func (s *Sketchpad) Overlay() int { return s.stack.Overlay() }

// Pixmap returns the pixels of layer i, which may be the overlay.
func (s *Sketchpad) Pixmap(i int) *gg.Pixmap { return s.stack.Pixmap(i) }

// Visible reports whether content layer i is shown.
func (s *Sketchpad) Visible(i int) bool { return s.stack.Visible(i) }

// CurrentLayer returns the layer new content goes to.
func (s *Sketchpad) CurrentLayer() int { return s.currentLayer }

// Mode returns the interaction mode.
func (s *Sketchpad) Mode() Mode { return s.mode }

// State returns the selection state.
func (s *Sketchpad) State() State { return s.state }

// Color returns the pen color.
func (s *Sketchpad) Color() string { return s.color }

// SetColor sets the pen color used for new strokes and text. Apply it to
// the selection with ApplyColorToSelection.
func (s *Sketchpad) SetColor(color string) { s.color = color }

// PenSize returns the pen width.
func (s *Sketchpad) PenSize() float64 { return s.penSize }

// SetPenSize sets the pen width used for new strokes. Apply it to the
// selection with ApplyPenSizeToSelection.
func (s *Sketchpad) SetPenSize(size float64) {
	if size > 0 {
		s.penSize = size
	}
}

// Drawables returns the drawable collection in z-order, dead entries
// included. The slice is a copy; the drawables are shared.
func (s *Sketchpad) Drawables() []*drawable.Drawable {
	return append([]*drawable.Drawable(nil), s.drawables...)
}

// History returns a copy of the history entries and the cursor.
func (s *Sketchpad) History() (entries []history.Entry, cursor int) {
	return s.log.Records(), s.log.Cursor()
}

// CanUndo reports whether Undo would change anything.
func (s *Sketchpad) CanUndo() bool { return s.log.CanUndo() }

// CanRedo reports whether Redo would change anything.
func (s *Sketchpad) CanRedo() bool { return s.log.CanRedo() }

// RubberBand returns the move/resize controller so the host can draw it.
func (s *Sketchpad) RubberBand() *rubberband.RubberBand { return s.band }

// KeepAspect sets the rubber band's aspect mode and returns the locked
// ratio, 0 for free. When locking reshapes a shown band, the selection
// follows and the change is recorded like a resize.
func (s *Sketchpad) KeepAspect(mode rubberband.AspectMode) float64 {
	before := s.band.Rect()
	ratio := s.band.KeepAspect(mode)
	if s.state == StateSelected && s.sel != nil && !before.Equal(s.band.Rect()) {
		s.commitBandMove()
	}
	return ratio
}

func (s *Sketchpad) resolveLayer(layer int) (int, error) {
	if layer == DefaultLayer {
		return s.currentLayer, nil
	}
	if !s.stack.Valid(layer) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLayer, layer)
	}
	return layer, nil
}

// append adds d to the collection without recording history and returns
// its index.
func (s *Sketchpad) append(d *drawable.Drawable) int {
	i := len(s.drawables)
	s.drawables = append(s.drawables, d)
	s.index[d] = i
	return i
}

// addObject appends d and records its addition.
func (s *Sketchpad) addObject(d *drawable.Drawable) {
	s.log.Record(history.Add(s.append(d)))
}

// draw paints d on its own layer.
func (s *Sketchpad) draw(d *drawable.Drawable) {
	if err := s.renderer.Draw(s.stack.Layer(d.Layer), d); err != nil {
		Logger().Warn("sketchpad: draw", "kind", d.Kind, "err", err)
	}
}

// redraw paints every live drawable whose layer is in set.
func (s *Sketchpad) redraw(set layers.Set) {
	for _, d := range s.drawables {
		if set.Has(d.Layer) {
			s.draw(d)
		}
	}
}

// repaint clears the layers in set and redraws them.
func (s *Sketchpad) repaint(set layers.Set) {
	s.stack.ClearSet(set)
	s.redraw(set)
	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("sketchpad: repaint", "layers", set.Indices())
	}
}

// redrawAll clears and redraws every content layer.
func (s *Sketchpad) redrawAll() {
	s.stack.Clear()
	for _, d := range s.drawables {
		s.draw(d)
	}
}
