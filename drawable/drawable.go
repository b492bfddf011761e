// Package drawable defines the persisted sketch objects: strokes, images
// and text boxes.
//
// A Drawable is a closed tagged variant. The shared header (ID, Kind, Layer,
// Alive, Rect) is common to every kind and exactly one payload pointer is
// set, matching Kind. Code that needs per-kind behavior switches on Kind.
//
// Drawables are never removed from an engine once added. Deleting one sets
// Alive to false so that history can bring it back.
package drawable

import (
	"errors"
	"image"

	"github.com/google/uuid"

	"github.com/gogpu/sketchpad/geom"
)

// Kind identifies the payload carried by a Drawable.
type Kind string

// Drawable kinds.
const (
	KindStroke Kind = "stroke"
	KindImage  Kind = "image"
	KindText   Kind = "text"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindStroke, KindImage, KindText:
		return true
	default:
		return false
	}
}

// ErrUnknownKind is returned when decoding a drawable with an unrecognized type.
var ErrUnknownKind = errors.New("drawable: unknown kind")

// Font describes the face a text box was measured with.
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
}

// DefaultFont is used for text boxes that carry no font.
var DefaultFont = Font{Family: "sans", Size: 16}

// Drawable is a stroke, an image or a text box placed on a layer.
type Drawable struct {
	ID    uuid.UUID
	Kind  Kind
	Layer int
	Alive bool
	Rect  geom.Rect

	// Selected is transient selection state. It is not serialized.
	Selected bool

	Stroke *Stroke
	Image  *Image
	Text   *Text
}

// Stroke is a pen or eraser path.
//
// Points are kept in the coordinates they were drawn in. BaseRect is the
// bounding rectangle at that time; after a move or resize Rect differs and
// Transformer maps BaseRect onto Rect.
type Stroke struct {
	Color       string
	Size        float64
	Erase       bool
	Points      []geom.Point
	BaseRect    geom.Rect
	Transformer *geom.Transformer
}

// Image is a decoded raster placed at the drawable's Rect.
type Image struct {
	Image image.Image
	// URL is the source the image was decoded from.
	URL string
}

// Text is a text box. Its glyphs are scaled to fit Rect.
type Text struct {
	Content string
	Font    Font
	Color   string
}

// NewStroke returns a live stroke. rect is the stroke's bounding box with
// the pen size already accounted for; it also becomes the base rectangle.
func NewStroke(layer int, color string, size float64, erase bool, points []geom.Point, rect geom.Rect) *Drawable {
	return &Drawable{
		ID:    uuid.New(),
		Kind:  KindStroke,
		Layer: layer,
		Alive: true,
		Rect:  rect,
		Stroke: &Stroke{
			Color:    color,
			Size:     size,
			Erase:    erase,
			Points:   points,
			BaseRect: rect,
		},
	}
}

// NewImage returns a live image placed at rect.
func NewImage(layer int, img image.Image, url string, rect geom.Rect) *Drawable {
	return &Drawable{
		ID:    uuid.New(),
		Kind:  KindImage,
		Layer: layer,
		Alive: true,
		Rect:  rect,
		Image: &Image{Image: img, URL: url},
	}
}

// NewText returns a live text box occupying rect.
func NewText(layer int, content string, font Font, color string, rect geom.Rect) *Drawable {
	return &Drawable{
		ID:    uuid.New(),
		Kind:  KindText,
		Layer: layer,
		Alive: true,
		Rect:  rect,
		Text:  &Text{Content: content, Font: font, Color: color},
	}
}

// Clone returns a deep copy of d. The decoded image itself is shared.
func (d *Drawable) Clone() *Drawable {
	c := *d
	if d.Stroke != nil {
		s := *d.Stroke
		s.Points = append([]geom.Point(nil), d.Stroke.Points...)
		if d.Stroke.Transformer != nil {
			t := *d.Stroke.Transformer
			s.Transformer = &t
		}
		c.Stroke = &s
	}
	if d.Image != nil {
		i := *d.Image
		c.Image = &i
	}
	if d.Text != nil {
		t := *d.Text
		c.Text = &t
	}
	return &c
}

// Erase reports whether d is an eraser stroke.
func (d *Drawable) Erase() bool {
	return d.Kind == KindStroke && d.Stroke != nil && d.Stroke.Erase
}

// MoveTo places d at r and refreshes the stroke transformer.
func (d *Drawable) MoveTo(r geom.Rect) {
	d.Rect = r
	d.UpdateTransform()
}

// UpdateTransform re-derives the stroke transformer from BaseRect and Rect.
// It is a no-op for other kinds.
func (d *Drawable) UpdateTransform() {
	if d.Kind != KindStroke || d.Stroke == nil {
		return
	}
	s := d.Stroke
	if s.BaseRect.Equal(d.Rect) {
		s.Transformer = nil
		return
	}
	if s.Transformer == nil {
		s.Transformer = new(geom.Transformer)
	}
	s.Transformer.Set(s.BaseRect, d.Rect, s.Size)
}

// Transform returns the mapping used to render the stroke's points.
func (d *Drawable) Transform() geom.Transformer {
	if d.Stroke == nil || d.Stroke.Transformer == nil {
		return geom.Identity()
	}
	return *d.Stroke.Transformer
}
