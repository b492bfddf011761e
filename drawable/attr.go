package drawable

import "golang.org/x/text/unicode/norm"

// Attr is a partial attribute set. Zero fields are unset.
type Attr struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// Modify applies the set attributes that differ from d's current values and
// returns the previous values of those that changed.
//
// Color applies to strokes and text, Size to strokes and Text to text boxes.
// A size change inflates both BaseRect and Rect by half the size delta so
// the outline keeps its position. Undo and redo replay through Modify, so
// the inflation is reproduced in both directions.
func (d *Drawable) Modify(a Attr) (old Attr, changed bool) {
	switch d.Kind {
	case KindStroke:
		s := d.Stroke
		if a.Color != "" && a.Color != s.Color {
			old.Color = s.Color
			s.Color = a.Color
			changed = true
		}
		if a.Size != 0 && a.Size != s.Size {
			old.Size = s.Size
			delta := (a.Size - s.Size) / 2
			s.Size = a.Size
			s.BaseRect.Inflate(delta)
			d.Rect.Inflate(delta)
			d.UpdateTransform()
			changed = true
		}
	case KindText:
		t := d.Text
		if a.Color != "" && a.Color != t.Color {
			old.Color = t.Color
			t.Color = a.Color
			changed = true
		}
		if a.Text != "" && a.Text != t.Content {
			old.Text = t.Content
			t.Content = a.Text
			changed = true
		}
	}
	return old, changed
}

// Current returns d's values for the attributes set in a.
func (d *Drawable) Current(a Attr) Attr {
	var cur Attr
	switch d.Kind {
	case KindStroke:
		if a.Color != "" {
			cur.Color = d.Stroke.Color
		}
		if a.Size != 0 {
			cur.Size = d.Stroke.Size
		}
	case KindText:
		if a.Color != "" {
			cur.Color = d.Text.Color
		}
		if a.Text != "" {
			cur.Text = d.Text.Content
		}
	}
	return cur
}

// NormalizeText returns s in Unicode NFC form so that visually identical
// edits compare equal.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}
