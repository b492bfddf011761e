// Package render paints drawables onto layers.
//
// Strokes with three or more points are drawn as quadratic curves through
// the midpoints of successive points. Eraser strokes remove pixels from
// their layer instead of painting: the stroke is rasterized into a scratch
// pixmap and its coverage is subtracted from the destination.
//
// Text boxes are measured at their nominal font size and then drawn with the
// face scaled uniformly to fit the box, so resizing a box rescales the text
// rather than reflowing it.
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/google/uuid"

	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/geom"
	"github.com/gogpu/sketchpad/internal/layers"
)

// maxCachedFaces bounds the scaled face cache. Resizing a text box produces
// a new size on every frame.
const maxCachedFaces = 256

// Renderer draws drawables. It is not safe for concurrent use.
type Renderer struct {
	fonts  *Fonts
	images map[uuid.UUID]*gg.ImageBuf

	scratch   *gg.Context
	scratchPM *gg.Pixmap
}

// New returns a renderer measuring text with fonts.
func New(fonts *Fonts) *Renderer {
	return &Renderer{
		fonts:  fonts,
		images: make(map[uuid.UUID]*gg.ImageBuf),
	}
}

// Fonts returns the font registry.
func (r *Renderer) Fonts() *Fonts { return r.fonts }

// Draw paints d onto l. Dead drawables are skipped.
func (r *Renderer) Draw(l *layers.Layer, d *drawable.Drawable) error {
	if d == nil || !d.Alive {
		return nil
	}
	switch d.Kind {
	case drawable.KindStroke:
		return r.drawStroke(l, d)
	case drawable.KindImage:
		r.drawImage(l.Context(), d)
		return nil
	case drawable.KindText:
		r.drawText(l.Context(), d)
		return nil
	default:
		return fmt.Errorf("%w: %q", drawable.ErrUnknownKind, d.Kind)
	}
}

// Line draws a single segment, as used while a stroke is being dragged.
func (r *Renderer) Line(l *layers.Layer, from, to geom.Point, color string, size float64, erase bool) error {
	pts := []geom.Point{from, to}
	paint := func(dc *gg.Context) error {
		return strokePoints(dc, pts, geom.Identity(), size)
	}
	if erase {
		area := geom.NewRect(from.X, from.Y, to.X, to.Y)
		area.Inflate(size/2 + 2)
		return r.erase(l.Pixmap(), area.Bounds(), paint)
	}
	dc := l.Context()
	dc.SetHexColor(color)
	return paint(dc)
}

// Forget drops the cached pixel buffer of the image drawable id, so the
// next draw converts its current image again.
func (r *Renderer) Forget(id uuid.UUID) {
	delete(r.images, id)
}

func (r *Renderer) drawStroke(l *layers.Layer, d *drawable.Drawable) error {
	s := d.Stroke
	if s == nil || len(s.Points) == 0 {
		return nil
	}
	t := d.Transform()
	paint := func(dc *gg.Context) error {
		return strokePoints(dc, s.Points, t, s.Size)
	}
	if s.Erase {
		area := d.Rect
		area.Inflate(2)
		return r.erase(l.Pixmap(), area.Bounds(), paint)
	}
	dc := l.Context()
	dc.SetHexColor(s.Color)
	return paint(dc)
}

// strokePoints strokes pts mapped through t with round caps and joins.
func strokePoints(dc *gg.Context, pts []geom.Point, t geom.Transformer, size float64) error {
	dc.ClearPath()
	dc.ClearDash()
	dc.SetLineWidth(size)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	p0 := t.Point(pts[0])
	if len(pts) == 1 || (len(pts) == 2 && pts[0] == pts[1]) {
		// A zero-length segment has no direction to cap; paint the dot.
		dc.DrawCircle(p0.X, p0.Y, size/2)
		return dc.Fill()
	}

	dc.MoveTo(p0.X, p0.Y)
	if len(pts) == 2 {
		p1 := t.Point(pts[1])
		dc.LineTo(p1.X, p1.Y)
		return dc.Stroke()
	}
	i := 1
	for ; i < len(pts)-2; i++ {
		c := t.Point(pts[i])
		m := t.Point(pts[i].Mid(pts[i+1]))
		dc.QuadraticTo(c.X, c.Y, m.X, m.Y)
	}
	c := t.Point(pts[i])
	e := t.Point(pts[i+1])
	dc.QuadraticTo(c.X, c.Y, e.X, e.Y)
	return dc.Stroke()
}

func (r *Renderer) scratchFor(w, h int) *gg.Context {
	if r.scratchPM == nil || r.scratchPM.Width() != w || r.scratchPM.Height() != h {
		r.scratchPM = gg.NewPixmap(w, h)
		r.scratch = gg.NewContext(w, h, gg.WithPixmap(r.scratchPM))
	}
	return r.scratch
}

// erase runs paint on a cleared scratch surface and removes the painted
// coverage from dst within area.
func (r *Renderer) erase(dst *gg.Pixmap, area image.Rectangle, paint func(*gg.Context) error) error {
	dc := r.scratchFor(dst.Width(), dst.Height())
	dc.Clear()
	dc.SetRGBA(0, 0, 0, 1)
	if err := paint(dc); err != nil {
		return err
	}
	area = area.Intersect(dst.Bounds())
	mask := r.scratchPM.Data()
	data := dst.Data()
	stride := dst.Width() * 4
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			i := y*stride + x*4
			cov := uint32(mask[i+3])
			if cov == 0 {
				continue
			}
			keep := 255 - cov
			for c := range 4 {
				data[i+c] = uint8((uint32(data[i+c])*keep + 127) / 255)
			}
		}
	}
	return nil
}

func (r *Renderer) drawImage(dc *gg.Context, d *drawable.Drawable) {
	if d.Image == nil || d.Image.Image == nil {
		return
	}
	if d.Rect.Width() <= 0 || d.Rect.Height() <= 0 {
		return
	}
	buf, ok := r.images[d.ID]
	if !ok {
		buf = gg.ImageBufFromImage(d.Image.Image)
		r.images[d.ID] = buf
	}
	if buf == nil {
		return
	}
	dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:         d.Rect.Left,
		Y:         d.Rect.Top,
		DstWidth:  d.Rect.Width(),
		DstHeight: d.Rect.Height(),
		Opacity:   1,
		BlendMode: gg.BlendNormal,
	})
}

// TextScale returns the factor that fits a text box's measured size into
// its rectangle.
func TextScale(mt Metrics, rect geom.Rect) float64 {
	sx := rect.Width() / nonZero(mt.Width)
	sy := rect.Height() / nonZero(mt.Height)
	return min(sx, sy)
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func (r *Renderer) drawText(dc *gg.Context, d *drawable.Drawable) {
	t := d.Text
	if t == nil || t.Content == "" {
		return
	}
	font := t.Font
	if font.Size <= 0 {
		font.Size = drawable.DefaultFont.Size
	}
	mt := r.fonts.Measure(t.Content, font, 0)
	scale := TextScale(mt, d.Rect)
	if scale <= 0 {
		return
	}

	// Quantize so a resize drag does not mint a new face per pixel.
	font.Size = math.Round(font.Size*scale*8) / 8
	if font.Size <= 0 {
		return
	}
	r.fonts.trim(maxCachedFaces)
	face := r.fonts.Face(font)
	if face == nil {
		return
	}
	dc.SetFont(face)
	dc.SetHexColor(t.Color)
	for i, line := range mt.Lines {
		y := d.Rect.Top + (float64(i)*mt.LineHeight+mt.Ascent)*scale
		dc.DrawString(line, d.Rect.Left, y)
	}
}
