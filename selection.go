package sketchpad

import (
	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/geom"
	"github.com/gogpu/sketchpad/internal/layers"
)

// selection is the completed set of objects bound to the rubber band.
type selection struct {
	objects []*drawable.Drawable
	layers  layers.Set
	// moveFrom is the band rectangle the current rects were captured at.
	moveFrom geom.Rect
	rects    []geom.Rect
}

// Selection returns the selected objects, or nil when no selection is
// complete.
func (s *Sketchpad) Selection() []*drawable.Drawable {
	if s.sel == nil {
		return nil
	}
	return append([]*drawable.Drawable(nil), s.sel.objects...)
}

// selectable reports whether d can be hit, marked and selected.
func (s *Sketchpad) selectable(d *drawable.Drawable) bool {
	return d.Alive && !d.Erase() && s.stack.Visible(d.Layer)
}

// hitTest returns the topmost selectable object containing p.
func (s *Sketchpad) hitTest(p geom.Point, kinds ...drawable.Kind) *drawable.Drawable {
	for i := len(s.drawables) - 1; i >= 0; i-- {
		d := s.drawables[i]
		if !s.selectable(d) || !d.Rect.HitTest(p) {
			continue
		}
		if len(kinds) == 0 {
			return d
		}
		for _, k := range kinds {
			if d.Kind == k {
				return d
			}
		}
	}
	return nil
}

// CompleteSelection binds the marked objects to the rubber band and enters
// StateSelected. With nothing marked it resets the selection instead.
func (s *Sketchpad) CompleteSelection() {
	var objs []*drawable.Drawable
	for _, d := range s.drawables {
		if d.Selected && s.selectable(d) {
			objs = append(objs, d)
		} else {
			d.Selected = false
		}
	}
	if len(objs) == 0 {
		s.ResetSelection()
		return
	}
	if s.selCursor < 0 {
		s.selCursor = s.log.Cursor()
	}
	s.sel = &selection{objects: objs, layers: make(layers.Set)}
	kinds := make(KindSet)
	for _, d := range objs {
		s.sel.layers.Add(d.Layer)
		kinds[d.Kind] = true
	}
	s.syncSelection()
	s.band.Show()
	s.state = StateSelected
	s.drawSelection()
	s.obs.stateChanged(s.state, kinds)
}

// RestartSelection hides the rubber band and lets further taps add to the
// selection (selecting true) or remove from it, until CompleteSelection.
// It only applies in select mode.
func (s *Sketchpad) RestartSelection(selecting bool) {
	if s.mode != ModeSelect {
		return
	}
	s.commitPending()
	state := StateDeselecting
	if selecting {
		state = StateSelecting
	}
	s.band.Hide()
	s.sel = nil
	s.state = state
	s.drawSelection()
	s.obs.stateChanged(s.state, nil)
}

// ResetSelection clears the selection and hides the rubber band. Attribute
// previews that were never committed are rolled back.
func (s *Sketchpad) ResetSelection() {
	s.discardPending()
	for _, d := range s.drawables {
		d.Selected = false
	}
	s.sel = nil
	s.selCursor = -1
	s.band.Hide()
	s.stack.ClearLayer(s.stack.Overlay())
	if s.state != StateNone {
		s.state = StateNone
		s.obs.stateChanged(s.state, nil)
	}
}

// selectObjects replaces the selection with objs and completes it,
// switching to select mode when drawing.
func (s *Sketchpad) selectObjects(objs []*drawable.Drawable) {
	s.ResetSelection()
	if s.mode != ModeSelect && s.mode != ModeText {
		s.mode = ModeSelect
		s.erase = false
		s.obs.modeChanged(s.mode)
	}
	for _, d := range objs {
		d.Selected = true
	}
	s.CompleteSelection()
}

// syncSelection recaptures the union rectangle and member rectangles after
// the members changed geometry outside a band gesture.
func (s *Sketchpad) syncSelection() {
	sel := s.sel
	if sel == nil {
		return
	}
	sel.rects = sel.rects[:0]
	var union geom.Rect
	for i, d := range sel.objects {
		if i == 0 {
			union = d.Rect
		} else {
			union.Union(d.Rect)
		}
		sel.rects = append(sel.rects, d.Rect)
	}
	sel.moveFrom = union
	s.band.SetRect(union)
}

// dropDeadMembers removes members that are no longer selectable and
// reports whether any remain.
func (s *Sketchpad) dropDeadMembers() bool {
	sel := s.sel
	live := sel.objects[:0]
	sel.layers = make(layers.Set)
	for _, d := range sel.objects {
		if s.selectable(d) {
			live = append(live, d)
			sel.layers.Add(d.Layer)
		} else {
			d.Selected = false
		}
	}
	clear(sel.objects[len(live):])
	sel.objects = live
	return len(live) > 0
}

// drawSelection repaints the overlay marks. While selecting or deselecting
// every selectable object gets a mark; otherwise only selected ones do.
func (s *Sketchpad) drawSelection() {
	overlay := s.stack.Layer(s.stack.Overlay())
	s.stack.ClearLayer(s.stack.Overlay())
	all := s.state == StateSelecting || s.state == StateDeselecting || s.gesture.kind == gestureSelect
	for _, d := range s.drawables {
		if !s.selectable(d) || (!all && !d.Selected) {
			continue
		}
		if err := s.renderer.Mark(overlay, d); err != nil {
			Logger().Warn("sketchpad: mark", "err", err)
		}
	}
}
