package sketchpad

import (
	"math"
	"strings"

	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/geom"
	"github.com/gogpu/sketchpad/history"
	"github.com/gogpu/sketchpad/internal/layers"
)

// Inline editor box limits for new text.
const (
	editMinWidth  = 200
	editMinHeight = 24
	editMaxWidth  = 300
	editMaxHeight = 250
)

// TextEdit is the inline text editor a host shows in text mode.
type TextEdit struct {
	// Rect is where the editor sits.
	Rect geom.Rect
	// Text is the edited content.
	Text string
	// Font is the face the content is measured with.
	Font drawable.Font
	// Target is the text box being edited, or nil for a new one.
	Target *drawable.Drawable
}

type textEdit struct {
	TextEdit
	layer int
}

// TextEdit returns the open editor, or nil.
func (s *Sketchpad) TextEdit() *TextEdit {
	if s.edit == nil {
		return nil
	}
	e := s.edit.TextEdit
	return &e
}

func (s *Sketchpad) textDown(p geom.Point) {
	if s.edit != nil {
		s.CommitText()
		return
	}
	if hit := s.hitTest(p, drawable.KindText); hit != nil {
		s.editExisting(hit)
		return
	}
	s.ResetSelection()
	s.edit = &textEdit{
		TextEdit: TextEdit{
			Rect: geom.RectXYWH(p.X, p.Y-editMinHeight/2, editMinWidth, editMinHeight),
			Font: s.textFont,
		},
		layer: s.currentLayer,
	}
}

func (s *Sketchpad) editExisting(d *drawable.Drawable) {
	s.edit = &textEdit{
		TextEdit: TextEdit{Rect: d.Rect, Text: d.Text.Content, Font: d.Text.Font, Target: d},
		layer:    d.Layer,
	}
}

// SetEditText replaces the content of the open editor. A new box grows to
// fit the text up to a fixed maximum; an existing box keeps its size.
func (s *Sketchpad) SetEditText(content string) {
	e := s.edit
	if e == nil {
		return
	}
	e.Text = content
	if e.Target != nil {
		return
	}
	mt := s.renderer.Fonts().Measure(content, e.Font, editMaxWidth)
	w := math.Min(math.Max(editMinWidth, math.Ceil(mt.Width)), editMaxWidth)
	h := math.Min(math.Max(editMinHeight, math.Ceil(mt.Height)), editMaxHeight)
	e.Rect = geom.RectXYWH(e.Rect.Left, e.Rect.Top, w, h)
}

// CommitText closes the editor. Empty text deletes the edited box; other
// text updates it or creates a new one, which becomes the selection.
func (s *Sketchpad) CommitText() {
	e := s.edit
	if e == nil {
		return
	}
	s.edit = nil
	content := drawable.NormalizeText(e.Text)
	empty := strings.TrimSpace(content) == ""

	if d := e.Target; d != nil {
		switch {
		case !d.Alive:
		case empty:
			d.Alive = false
			d.Selected = false
			s.log.Record(history.Delete(s.index[d]))
			s.repaint(layers.SetOf(d.Layer))
			s.ResetSelection()
		default:
			s.updateText(d, content)
		}
		return
	}
	if empty {
		return
	}
	mt := s.renderer.Fonts().Measure(content, e.Font, 0)
	rect := geom.RectXYWH(e.Rect.Left, e.Rect.Top, mt.Width, mt.Height)
	d := drawable.NewText(e.layer, content, e.Font, s.color, rect)
	s.addObject(d)
	s.draw(d)
	s.selectObjects([]*drawable.Drawable{d})
}

// CancelText closes the editor without changes.
func (s *Sketchpad) CancelText() {
	s.edit = nil
}

// updateText replaces d's content, keeping its rectangle, and selects it.
func (s *Sketchpad) updateText(d *drawable.Drawable, content string) {
	old, changed := d.Modify(drawable.Attr{Text: content})
	if changed {
		s.log.Record(history.AttrChange(s.index[d], old, drawable.Attr{Text: content}))
		s.repaint(layers.SetOf(d.Layer))
	}
	s.selectObjects([]*drawable.Drawable{d})
}
