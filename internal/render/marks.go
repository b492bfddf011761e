package render

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/internal/layers"
)

// Selection mark colors.
const (
	MarkSelected      = "#ef6c00"
	MarkSelectedUnder = "#ffffff"
	MarkHover         = "#eeeeee"
	MarkHoverOuter    = "#bdbdbd"
)

// Mark outlines d on l: a dashed orange frame over a white one when d is
// selected, a thin grey double frame otherwise. Dead drawables and eraser
// strokes get no mark.
func (r *Renderer) Mark(l *layers.Layer, d *drawable.Drawable) error {
	if d == nil || !d.Alive || d.Erase() {
		return nil
	}
	dc := l.Context()
	dc.ClearPath()
	dc.SetLineJoin(gg.LineJoinMiter)
	dc.SetLineCap(gg.LineCapSquare)

	x, y := float64(d.Rect.IX()), float64(d.Rect.IY())
	w, h := float64(d.Rect.IW()), float64(d.Rect.IH())

	if d.Selected {
		dc.SetLineWidth(2)
		dc.ClearDash()
		dc.SetHexColor(MarkSelectedUnder)
		dc.DrawRectangle(x-1, y-1, w+2, h+2)
		if err := dc.Stroke(); err != nil {
			return err
		}
		dc.SetDash(5, 5)
		dc.SetHexColor(MarkSelected)
		dc.DrawRectangle(x-1, y-1, w+2, h+2)
		err := dc.Stroke()
		dc.ClearDash()
		return err
	}

	// Half-pixel offset puts 1px lines on pixel centers.
	dc.SetLineWidth(1)
	dc.ClearDash()
	dc.SetHexColor(MarkHover)
	dc.DrawRectangle(x+0.5, y+0.5, w, h)
	if err := dc.Stroke(); err != nil {
		return err
	}
	dc.SetHexColor(MarkHoverOuter)
	dc.DrawRectangle(x-0.5, y-0.5, w+2, h+2)
	return dc.Stroke()
}
