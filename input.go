package sketchpad

import (
	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/geom"
	"github.com/gogpu/sketchpad/history"
	"github.com/gogpu/sketchpad/internal/layers"
	"github.com/gogpu/sketchpad/internal/render"
	"github.com/gogpu/sketchpad/rubberband"
)

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureStroke
	gestureBand
	gestureSelect
)

// gesture is the single pointer interaction in progress.
type gesture struct {
	kind gestureKind
	last geom.Point

	// stroke
	layer  int
	color  string
	size   float64
	erase  bool
	points []geom.Point

	// select
	mark bool
}

// PointerDown starts a gesture at p. It is ignored in read-only mode and
// while another gesture is in progress.
func (s *Sketchpad) PointerDown(p geom.Point, mods Modifiers) {
	if s.readOnly || s.closed.Load() || s.gesture.kind != gestureNone {
		return
	}
	if s.edit != nil {
		s.CommitText()
		return
	}
	if h := s.band.HandleAt(p); h != rubberband.HandleNone && s.sel != nil {
		s.band.Begin(h, p)
		s.gesture = gesture{kind: gestureBand, last: p}
		return
	}
	switch s.mode {
	case ModeDraw, ModeErase:
		s.beginStroke(p)
	case ModeSelect:
		s.beginSelect(p, mods)
	case ModeText:
		s.textDown(p)
	}
}

// PointerMove continues the gesture in progress.
func (s *Sketchpad) PointerMove(p geom.Point) {
	if s.readOnly {
		return
	}
	switch s.gesture.kind {
	case gestureStroke:
		s.extendStroke(p)
	case gestureBand:
		if s.band.Drag(p) {
			s.moveSelectionToBand()
		}
	case gestureSelect:
		s.updateSelect(p)
	}
	s.gesture.last = p
}

// PointerUp finishes the gesture in progress.
func (s *Sketchpad) PointerUp(p geom.Point) {
	if s.readOnly {
		return
	}
	g := s.gesture
	switch g.kind {
	case gestureStroke:
		if p != g.last {
			s.extendStroke(p)
		}
		s.endStroke()
	case gestureBand:
		if s.band.Drag(p) {
			s.moveSelectionToBand()
		}
		s.endBand(p)
	case gestureSelect:
		s.updateSelect(p)
		s.endSelect()
	}
	s.gesture = gesture{}
}

func (s *Sketchpad) beginStroke(p geom.Point) {
	if s.sel != nil || s.state != StateNone {
		s.ResetSelection()
	}
	s.gesture = gesture{
		kind:   gestureStroke,
		last:   p,
		layer:  s.currentLayer,
		color:  s.color,
		size:   s.penSize,
		erase:  s.erase,
		points: []geom.Point{p},
	}
	s.liveSegment(p, p)
}

func (s *Sketchpad) extendStroke(p geom.Point) {
	g := &s.gesture
	s.liveSegment(g.last, p)
	g.points = append(g.points, p)
	g.last = p
}

// liveSegment draws one segment of the stroke being dragged. Pen strokes go
// to the overlay; eraser strokes cut the target layer directly.
func (s *Sketchpad) liveSegment(from, to geom.Point) {
	g := &s.gesture
	target := s.stack.Overlay()
	if g.erase {
		target = g.layer
	}
	if err := s.renderer.Line(s.stack.Layer(target), from, to, g.color, g.size, g.erase); err != nil {
		Logger().Warn("sketchpad: live stroke", "err", err)
	}
}

func (s *Sketchpad) endStroke() {
	g := s.gesture
	pts := render.Smooth(g.points)
	Logger().Debug("sketchpad: stroke smoothed", "points", len(g.points), "kept", len(pts))

	rect := geom.RectAt(pts[0])
	for _, pt := range pts[1:] {
		rect.AddPoint(pt.X, pt.Y)
	}
	rect.Inflate(g.size / 2)

	d := drawable.NewStroke(g.layer, g.color, g.size, g.erase, pts, rect)
	s.addObject(d)
	s.stack.ClearLayer(s.stack.Overlay())
	if g.erase {
		s.repaint(layers.SetOf(g.layer))
	} else {
		s.draw(d)
	}
}

func (s *Sketchpad) beginSelect(p geom.Point, mods Modifiers) {
	hit := s.hitTest(p)
	switch s.state {
	case StateSelected:
		if hit == nil {
			s.ResetSelection()
			break
		}
		if mods&ModCtrl != 0 {
			hit.Selected = !hit.Selected
			s.commitPending()
			s.CompleteSelection()
			return
		}
		s.selectObjects([]*drawable.Drawable{hit})
		return
	case StateDeselecting:
		if hit != nil {
			hit.Selected = false
		}
	default:
		if hit != nil {
			if mods&ModCtrl != 0 {
				hit.Selected = !hit.Selected
			} else {
				hit.Selected = true
			}
		}
	}
	s.gesture = gesture{kind: gestureSelect, last: p, mark: s.state != StateDeselecting}
	s.drawSelection()
}

// updateSelect marks every object the pointer swept across since the last
// frame.
func (s *Sketchpad) updateSelect(p geom.Point) {
	g := &s.gesture
	changed := false
	for _, d := range s.drawables {
		if !s.selectable(d) || d.Selected == g.mark {
			continue
		}
		if d.Rect.IntersectTest(g.last, p) {
			d.Selected = g.mark
			changed = true
		}
	}
	if changed {
		s.drawSelection()
	}
}

func (s *Sketchpad) endSelect() {
	s.gesture = gesture{}
	switch s.state {
	case StateSelecting, StateDeselecting:
		s.drawSelection()
	default:
		s.CompleteSelection()
	}
}

// moveSelectionToBand maps every member from its captured rectangle onto
// the band's live rectangle.
func (s *Sketchpad) moveSelectionToBand() {
	sel := s.sel
	if sel == nil {
		return
	}
	t := geom.NewTransformer(sel.moveFrom, s.band.Rect(), 0)
	for i, d := range sel.objects {
		d.MoveTo(t.Rect(sel.rects[i]))
	}
	s.repaint(sel.layers)
	s.drawSelection()
}

func (s *Sketchpad) endBand(p geom.Point) {
	res := s.band.End()
	switch {
	case res.Moved:
		s.commitBandMove()
	case res.Clicked && s.mode == ModeText:
		if hit := s.hitTest(p, drawable.KindText); hit != nil {
			s.editExisting(hit)
		}
	case res.Clicked:
		hit := s.hitTest(p)
		if hit == nil {
			s.ResetSelection()
			return
		}
		hit.Selected = !hit.Selected
		s.commitPending()
		s.CompleteSelection()
	}
}

// commitBandMove records one grouped move for the members whose rectangle
// differs from the one captured before the gesture.
func (s *Sketchpad) commitBandMove() {
	sel := s.sel
	if sel == nil {
		return
	}
	s.moveSelectionToBand()
	var moves []history.Entry
	for i, d := range sel.objects {
		if from := sel.rects[i]; !from.Equal(d.Rect) {
			moves = append(moves, history.Move(s.index[d], from, d.Rect))
		}
	}
	if len(moves) > 0 {
		s.log.Record(history.Group(moves...))
	}
	s.syncSelection()
}
