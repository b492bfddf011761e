package sketchpad

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/internal/imageload"
	"github.com/gogpu/sketchpad/internal/layers"
)

// exportSet returns the requested content layers, or the visible ones when
// none are given.
func (s *Sketchpad) exportSet(indices []int) layers.Set {
	if len(indices) == 0 {
		return s.stack.VisibleSet()
	}
	set := make(layers.Set)
	for _, i := range indices {
		if s.stack.Valid(i) {
			set.Add(i)
		}
	}
	return set
}

// ToCanvas composites the given layers, or every visible layer, over white
// and passes the result to done on the owner goroutine. The layers are
// captured before ToCanvas returns; compositing runs in the background.
func (s *Sketchpad) ToCanvas(done func(*image.RGBA, error), indices ...int) {
	s.export(indices, func(img *image.RGBA, err error) func() {
		return func() { done(img, err) }
	})
}

// ToImage is ToCanvas encoded as a PNG data URL.
func (s *Sketchpad) ToImage(done func(string, error), indices ...int) {
	s.export(indices, func(img *image.RGBA, err error) func() {
		var u string
		if err == nil {
			u, err = imageload.DataURL(img)
		}
		return func() { done(u, err) }
	})
}

// export snapshots the layers and composites them in the background. finish
// runs on the background goroutine and returns the completion.
func (s *Sketchpad) export(indices []int, finish func(*image.RGBA, error) func()) {
	set := s.exportSet(indices)
	if len(set) == 0 {
		s.spawn(func(context.Context) func() {
			return finish(nil, ErrNoLayers)
		})
		return
	}
	snaps := s.stack.Snapshot(set)
	w, h := s.width, s.height
	s.spawn(func(ctx context.Context) func() {
		img, err := layers.Composite(ctx, snaps, w, h, gg.White)
		if err != nil {
			Logger().Warn("sketchpad: export", "err", err)
		}
		return finish(img, err)
	})
}

// LayerImage returns a copy of content layer i without a background.
func (s *Sketchpad) LayerImage(i int) (*image.RGBA, error) {
	if !s.stack.Valid(i) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLayer, i)
	}
	return s.stack.Pixmap(i).ToImage(), nil
}

// ToObject returns the persisted form of the drawing. slim keeps only the
// live drawables and no history; otherwise dead drawables and the history
// are included so WithSnapshot restores undo and redo.
func (s *Sketchpad) ToObject(slim bool) *Snapshot {
	snap := &Snapshot{
		LayerCount: s.stack.Count(),
		Width:      s.width,
		Height:     s.height,
	}
	for _, d := range s.drawables {
		if slim && !d.Alive {
			continue
		}
		c := d.Clone()
		c.Selected = false
		snap.Drawables = append(snap.Drawables, c)
	}
	if snap.Drawables == nil {
		snap.Drawables = []*drawable.Drawable{}
	}
	if !slim {
		snap.History = s.log.Records()
		snap.Cursor = s.log.Cursor()
	}
	return snap
}
