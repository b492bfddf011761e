package sketchpad

import (
	"github.com/gogpu/sketchpad/history"
	"github.com/gogpu/sketchpad/internal/layers"
)

// Undo reverts the last applied history entry. It does nothing at the start
// of the history or while a gesture is in progress.
func (s *Sketchpad) Undo() {
	if s.gesture.kind != gestureNone {
		return
	}
	s.CancelText()
	s.discardPending()
	e, ok := s.log.Undo()
	if !ok {
		return
	}
	s.apply(e, false)
}

// Redo reapplies the next history entry. It does nothing at the end of the
// history or while a gesture is in progress.
func (s *Sketchpad) Redo() {
	if s.gesture.kind != gestureNone {
		return
	}
	s.CancelText()
	s.discardPending()
	e, ok := s.log.Redo()
	if !ok {
		return
	}
	s.apply(e, true)
}

// apply replays e and repaints each touched layer once.
func (s *Sketchpad) apply(e history.Entry, forward bool) {
	touched := make(layers.Set)
	leaves := e.Leaves(forward)
	for _, l := range leaves {
		d := s.drawables[l.Object]
		s.applyLeaf(l, forward)
		touched.Add(d.Layer)
	}
	s.repaint(touched)
	Logger().Debug("sketchpad: history replay",
		"action", e.Action, "forward", forward, "leaves", len(leaves),
		"layers", len(touched), "cursor", s.log.Cursor())

	if s.sel == nil {
		return
	}
	if s.log.Cursor() < s.selCursor || !s.dropDeadMembers() {
		s.ResetSelection()
		return
	}
	s.syncSelection()
	s.drawSelection()
}

func (s *Sketchpad) applyLeaf(l history.Entry, forward bool) {
	d := s.drawables[l.Object]
	switch l.Action {
	case history.ActionAdd:
		d.Alive = forward
	case history.ActionDelete:
		d.Alive = !forward
	case history.ActionMove:
		if forward {
			d.MoveTo(*l.ToRect)
		} else {
			d.MoveTo(*l.FromRect)
		}
	case history.ActionAttr:
		if forward {
			d.Modify(*l.ToAttr)
		} else {
			d.Modify(*l.FromAttr)
		}
	}
	if !d.Alive {
		d.Selected = false
	}
}
