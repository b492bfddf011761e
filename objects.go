package sketchpad

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"math"

	"github.com/google/uuid"

	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/geom"
	"github.com/gogpu/sketchpad/history"
	"github.com/gogpu/sketchpad/internal/imageload"
	"github.com/gogpu/sketchpad/internal/layers"
)

// Clip is the clipboard form of a selection. Paste accepts it only on a
// canvas of the same size.
type Clip struct {
	Width   int                  `json:"width"`
	Height  int                  `json:"height"`
	Objects []*drawable.Drawable `json:"objects"`
}

// SetMode switches the interaction mode. An open text edit is committed
// and the selection is reset first. Unknown modes are ignored.
func (s *Sketchpad) SetMode(m Mode) {
	if !m.Valid() || m == s.mode {
		return
	}
	s.CommitText()
	s.ResetSelection()
	s.mode = m
	s.erase = m == ModeErase
	s.obs.modeChanged(m)
}

// ActivateLayer sets which content layers are shown and, unless drawLayer
// is KeepLayer, the layer new content goes to. Members of the selection on
// layers that become hidden drop out of it.
func (s *Sketchpad) ActivateLayer(visible []bool, drawLayer int) error {
	if drawLayer != KeepLayer && !s.stack.Valid(drawLayer) {
		return fmt.Errorf("%w: %d", ErrInvalidLayer, drawLayer)
	}
	s.stack.SetVisible(visible)
	if drawLayer != KeepLayer {
		s.currentLayer = drawLayer
	}
	if s.sel != nil {
		if !s.dropDeadMembers() {
			s.ResetSelection()
		} else {
			s.syncSelection()
			s.drawSelection()
		}
	}
	return nil
}

// AddText places a text box measured with the text font. pos is the box's
// top-left; nil centers it. The new box becomes the selection.
func (s *Sketchpad) AddText(content string, layer int, pos *geom.Point) (*drawable.Drawable, error) {
	layer, err := s.resolveLayer(layer)
	if err != nil {
		return nil, err
	}
	content = drawable.NormalizeText(content)
	mt := s.renderer.Fonts().Measure(content, s.textFont, 0)
	var at geom.Point
	if pos != nil {
		at = *pos
	} else {
		at = geom.Pt((float64(s.width)-mt.Width)/2, (float64(s.height)-mt.Height)/2)
	}
	d := drawable.NewText(layer, content, s.textFont, s.color, geom.RectXYWH(at.X, at.Y, mt.Width, mt.Height))
	s.addObject(d)
	s.draw(d)
	s.selectObjects([]*drawable.Drawable{d})
	return d, nil
}

// AddImage loads url in the background and inserts the image centered,
// scaled down to fit the canvas. On success the image becomes the
// selection. done, if not nil, receives the new object or the load error.
func (s *Sketchpad) AddImage(url string, layer int, done func(*drawable.Drawable, error)) {
	if done == nil {
		done = func(*drawable.Drawable, error) {}
	}
	layer, err := s.resolveLayer(layer)
	if err != nil {
		done(nil, err)
		return
	}
	s.spawn(func(ctx context.Context) func() {
		img, err := s.loader.Load(ctx, url)
		return func() {
			if err != nil {
				Logger().Warn("sketchpad: add image", "err", err)
				done(nil, err)
				return
			}
			d := drawable.NewImage(layer, img, url, s.imageInitialRect(img))
			s.addObject(d)
			s.draw(d)
			s.selectObjects([]*drawable.Drawable{d})
			done(d, nil)
		}
	})
}

// imageInitialRect centers img on the canvas, scaled down to fit.
func (s *Sketchpad) imageInitialRect(img image.Image) geom.Rect {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w <= 0 || h <= 0 {
		return geom.RectXYWH(float64(s.width)/2, float64(s.height)/2, 0, 0)
	}
	scale := math.Min(1, math.Min(float64(s.width)/w, float64(s.height)/h))
	w, h = w*scale, h*scale
	return geom.RectXYWH((float64(s.width)-w)/2, (float64(s.height)-h)/2, w, h)
}

// Paste inserts clipboard content on layer.
//
// KindText pastes payload as a text box and KindImage loads payload as an
// image URL. KindStroke decodes a Clip; a Clip for a canvas of another size
// is ignored. All images a Clip refers to are loaded before anything is
// inserted, and the objects are added as one history entry. If any load
// fails nothing is inserted.
//
// done, if not nil, receives the inserted objects. It may run before Paste
// returns when no loading is needed. A malformed payload is returned as an
// error without calling done.
func (s *Sketchpad) Paste(kind drawable.Kind, payload string, layer int, done func([]*drawable.Drawable, error)) error {
	if done == nil {
		done = func([]*drawable.Drawable, error) {}
	}
	layer, err := s.resolveLayer(layer)
	if err != nil {
		return err
	}
	switch kind {
	case drawable.KindText:
		d, err := s.AddText(payload, layer, nil)
		if err != nil {
			return err
		}
		done([]*drawable.Drawable{d}, nil)
		return nil
	case drawable.KindImage:
		s.AddImage(payload, layer, func(d *drawable.Drawable, err error) {
			if err != nil {
				done(nil, err)
				return
			}
			done([]*drawable.Drawable{d}, nil)
		})
		return nil
	case drawable.KindStroke:
	default:
		return fmt.Errorf("%w: %q", drawable.ErrUnknownKind, kind)
	}

	var clip Clip
	if err := json.Unmarshal([]byte(payload), &clip); err != nil {
		return fmt.Errorf("sketchpad: paste: %w", err)
	}
	if clip.Width != s.width || clip.Height != s.height {
		Logger().Debug("sketchpad: paste size mismatch", "width", clip.Width, "height", clip.Height)
		return nil
	}
	objs := make([]*drawable.Drawable, 0, len(clip.Objects))
	var urls []string
	var pending []*drawable.Drawable
	for _, d := range clip.Objects {
		if d == nil {
			continue
		}
		d.ID = uuid.New()
		d.Layer = layer
		d.Alive = true
		d.Selected = false
		objs = append(objs, d)
		if d.Kind == drawable.KindImage && d.Image != nil && d.Image.Image == nil {
			urls = append(urls, d.Image.URL)
			pending = append(pending, d)
		}
	}
	if len(objs) == 0 {
		return nil
	}
	if len(urls) == 0 {
		s.addGroupedObjects(objs)
		done(objs, nil)
		return nil
	}
	s.spawn(func(ctx context.Context) func() {
		imgs, err := imageload.LoadAll(ctx, s.loader, urls)
		return func() {
			if err != nil {
				Logger().Warn("sketchpad: paste", "err", err)
				done(nil, err)
				return
			}
			for i, d := range pending {
				d.Image.Image = imgs[i]
			}
			s.addGroupedObjects(objs)
			done(objs, nil)
		}
	})
	return nil
}

// addGroupedObjects appends objs as one history entry and selects them.
func (s *Sketchpad) addGroupedObjects(objs []*drawable.Drawable) {
	adds := make([]history.Entry, len(objs))
	set := make(layers.Set)
	for i, d := range objs {
		adds[i] = history.Add(s.append(d))
		set.Add(d.Layer)
	}
	if len(adds) == 1 {
		s.log.Record(adds[0])
	} else {
		s.log.Record(history.Group(adds...))
	}
	for _, d := range objs {
		s.draw(d)
	}
	s.selectObjects(objs)
}

// DeleteSelectedObjects marks the selection dead as one history entry and
// resets the selection.
func (s *Sketchpad) DeleteSelectedObjects() {
	if s.sel == nil {
		return
	}
	s.discardPending()
	sel := s.sel
	dels := make([]history.Entry, len(sel.objects))
	for i, d := range sel.objects {
		d.Alive = false
		d.Selected = false
		dels[i] = history.Delete(s.index[d])
	}
	if len(dels) == 1 {
		s.log.Record(dels[0])
	} else {
		s.log.Record(history.Group(dels...))
	}
	s.repaint(sel.layers)
	s.ResetSelection()
}

// ApplyPenSizeToSelection applies the pen size to the selected strokes.
// Without commit the change is a preview: further previews and the final
// commit record a single entry from the value before the first preview.
func (s *Sketchpad) ApplyPenSizeToSelection(commit bool) {
	s.applyAttr(drawable.Attr{Size: s.penSize}, commit)
}

// ApplyColorToSelection applies the pen color to the selected strokes and
// text boxes, with the same preview rules as ApplyPenSizeToSelection.
func (s *Sketchpad) ApplyColorToSelection(commit bool) {
	s.applyAttr(drawable.Attr{Color: s.color}, commit)
}

func (s *Sketchpad) applyAttr(a drawable.Attr, commit bool) {
	sel := s.sel
	if sel == nil {
		return
	}
	for _, d := range sel.objects {
		old, changed := d.Modify(a)
		if !changed {
			continue
		}
		if before, ok := s.pending[d]; ok {
			s.pending[d] = mergeAttr(before, old)
		} else {
			s.pending[d] = old
		}
	}
	s.repaint(sel.layers)
	s.syncSelection()
	s.drawSelection()
	if commit {
		s.commitPending()
	}
}

// mergeAttr returns first with the fields it lacks taken from next.
func mergeAttr(first, next drawable.Attr) drawable.Attr {
	if first.Color == "" {
		first.Color = next.Color
	}
	if first.Size == 0 {
		first.Size = next.Size
	}
	if first.Text == "" {
		first.Text = next.Text
	}
	return first
}

// commitPending records the accumulated attribute previews.
func (s *Sketchpad) commitPending() {
	if len(s.pending) == 0 {
		return
	}
	var changes []history.Entry
	for _, d := range s.drawables {
		from, ok := s.pending[d]
		if !ok {
			continue
		}
		if to := d.Current(from); to != from {
			changes = append(changes, history.AttrChange(s.index[d], from, to))
		}
	}
	clear(s.pending)
	switch len(changes) {
	case 0:
	case 1:
		s.log.Record(changes[0])
	default:
		s.log.Record(history.Group(changes...))
	}
}

// discardPending rolls uncommitted previews back.
func (s *Sketchpad) discardPending() {
	if len(s.pending) == 0 {
		return
	}
	set := make(layers.Set)
	for d, from := range s.pending {
		d.Modify(from)
		set.Add(d.Layer)
	}
	clear(s.pending)
	s.repaint(set)
	if s.sel != nil {
		s.syncSelection()
		s.drawSelection()
	}
}

// SelectionJSON returns the selection as a Clip. It returns "" when nothing
// is selected.
func (s *Sketchpad) SelectionJSON() (string, error) {
	if s.sel == nil {
		return "", nil
	}
	clip := Clip{Width: s.width, Height: s.height}
	for _, d := range s.sel.objects {
		if d.Alive {
			clip.Objects = append(clip.Objects, d)
		}
	}
	b, err := json.Marshal(clip)
	if err != nil {
		return "", fmt.Errorf("sketchpad: selection: %w", err)
	}
	return string(b), nil
}
