package drawable

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/gogpu/sketchpad/geom"
	"github.com/gogpu/sketchpad/internal/imageload"
)

// wire is the flat serialized form shared by every kind.
type wire struct {
	ID          uuid.UUID         `json:"id"`
	Type        Kind              `json:"type"`
	Layer       int               `json:"layer"`
	Alive       bool              `json:"alive"`
	Rect        geom.Rect         `json:"rect"`
	Color       string            `json:"color,omitempty"`
	Size        float64           `json:"size,omitempty"`
	Erase       bool              `json:"erase,omitempty"`
	Points      []geom.Point      `json:"points,omitempty"`
	BaseRect    *geom.Rect        `json:"baseRect,omitempty"`
	Transformer *geom.Transformer `json:"transformer,omitempty"`
	URL         string            `json:"url,omitempty"`
	Text        string            `json:"text,omitempty"`
	Font        *Font             `json:"font,omitempty"`
}

// MarshalJSON encodes d in the flat wire form. Images are written as their
// source URL; an image without one is embedded as a PNG data URL.
func (d *Drawable) MarshalJSON() ([]byte, error) {
	w := wire{
		ID:    d.ID,
		Type:  d.Kind,
		Layer: d.Layer,
		Alive: d.Alive,
		Rect:  d.Rect,
	}
	switch d.Kind {
	case KindStroke:
		s := d.Stroke
		w.Color = s.Color
		w.Size = s.Size
		w.Erase = s.Erase
		w.Points = s.Points
		base := s.BaseRect
		w.BaseRect = &base
		w.Transformer = s.Transformer
	case KindImage:
		w.URL = d.Image.URL
		if w.URL == "" && d.Image.Image != nil {
			u, err := imageload.DataURL(d.Image.Image)
			if err != nil {
				return nil, fmt.Errorf("drawable: encode image: %w", err)
			}
			w.URL = u
		}
	case KindText:
		w.Color = d.Text.Color
		w.Text = d.Text.Content
		f := d.Text.Font
		w.Font = &f
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the flat wire form. Image pixels are not loaded;
// the caller resolves Image.URL. A missing ID is replaced by a fresh one.
func (d *Drawable) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, w.Type)
	}
	*d = Drawable{
		ID:    w.ID,
		Kind:  w.Type,
		Layer: w.Layer,
		Alive: w.Alive,
		Rect:  geom.NewRect(w.Rect.Left, w.Rect.Top, w.Rect.Right, w.Rect.Bottom),
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	switch w.Type {
	case KindStroke:
		base := d.Rect
		if w.BaseRect != nil {
			base = *w.BaseRect
			base.Normalize()
		}
		d.Stroke = &Stroke{
			Color:    w.Color,
			Size:     w.Size,
			Erase:    w.Erase,
			Points:   w.Points,
			BaseRect: base,
		}
		d.UpdateTransform()
	case KindImage:
		d.Image = &Image{URL: w.URL}
	case KindText:
		font := DefaultFont
		if w.Font != nil {
			font = *w.Font
		}
		d.Text = &Text{Content: w.Text, Font: font, Color: w.Color}
	}
	return nil
}
