// Package rubberband implements the move/resize handles drawn around a
// selection.
//
// A RubberBand owns a live rectangle. A pointer gesture starts on one of
// eight resize handles or on the body, and each Drag frame rewrites the
// rectangle with minimum-size, boundary and aspect-ratio constraints
// applied. The caller derives a geom.Transformer from the rectangle it had
// before the gesture to Rect() and applies it to whatever it is moving.
//
//	rb := rubberband.New()
//	rb.SetBoundary(geom.NewRect(0, 0, 400, 300))
//	rb.SetRect(selectionBounds)
//	rb.Show()
//
//	rb.Begin(rb.HandleAt(p), p)
//	if rb.Drag(q) {
//		t := geom.NewTransformer(selectionBounds, rb.Rect(), 0)
//		...
//	}
//	res := rb.End()
package rubberband

import (
	"math"

	"github.com/gogpu/sketchpad/geom"
)

const (
	// DragThreshold is the distance a body drag must exceed on either axis
	// before it counts as a move instead of a click.
	DragThreshold = 5

	// MinLedge is the smallest width or height a resize may produce, and
	// the least overlap a moved rectangle keeps with the boundary.
	MinLedge = 4

	// Margin is the gap between the rectangle and the drawn band.
	Margin = 4

	// KnobRadius is the hit radius of the corner and mid-edge knobs.
	KnobRadius = 6

	// edgeSlop is the hit half-width of the band's edge lines.
	edgeSlop = 3
)

// Handle identifies the part of the band a gesture started on.
type Handle int

// Handles.
const (
	HandleNone Handle = iota
	HandleLeft
	HandleTop
	HandleRight
	HandleBottom
	HandleLeftTop
	HandleRightTop
	HandleLeftBottom
	HandleRightBottom
	HandleBody
)

var handleNames = [...]string{
	HandleNone:        "none",
	HandleLeft:        "left",
	HandleTop:         "top",
	HandleRight:       "right",
	HandleBottom:      "bottom",
	HandleLeftTop:     "left-top",
	HandleRightTop:    "right-top",
	HandleLeftBottom:  "left-bottom",
	HandleRightBottom: "right-bottom",
	HandleBody:        "body",
}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "unknown"
	}
	return handleNames[h]
}

// hint names the rectangle edge a handle moves on one axis.
type hint int

const (
	hintNone hint = iota
	hintMin       // left or top
	hintMax       // right or bottom
)

func (h Handle) hints() (x, y hint) {
	switch h {
	case HandleLeft:
		return hintMin, hintNone
	case HandleRight:
		return hintMax, hintNone
	case HandleTop:
		return hintNone, hintMin
	case HandleBottom:
		return hintNone, hintMax
	case HandleLeftTop:
		return hintMin, hintMin
	case HandleRightTop:
		return hintMax, hintMin
	case HandleLeftBottom:
		return hintMin, hintMax
	case HandleRightBottom:
		return hintMax, hintMax
	default:
		return hintNone, hintNone
	}
}

// IsResize reports whether h resizes rather than moves.
func (h Handle) IsResize() bool {
	x, y := h.hints()
	return x != hintNone || y != hintNone
}

// AspectMode selects how resizes constrain the width/height ratio.
type AspectMode string

// Aspect modes.
const (
	// AspectFree applies no constraint.
	AspectFree AspectMode = "free"
	// AspectKeepCurrent freezes the ratio of the rectangle at the time
	// KeepAspect is called.
	AspectKeepCurrent AspectMode = "keepCurrent"
	// AspectKeepSetting uses the ratio configured with SetAspect.
	AspectKeepSetting AspectMode = "keepSetting"
)

// Result describes a finished gesture.
type Result struct {
	// Moved is set when a resize or a body drag past the threshold
	// changed the rectangle.
	Moved bool
	// Clicked is set when a body gesture never passed the threshold.
	Clicked bool
}

// RubberBand is the move/resize controller. The zero value is not usable;
// call New.
type RubberBand struct {
	rect     geom.Rect
	boundary *geom.Rect

	aspect        float64
	aspectSetting float64

	shown bool

	// gesture state
	handle   Handle
	start    geom.Point
	from     geom.Rect
	dragging bool
}

// New returns a hidden band with no boundary and no aspect constraint.
func New() *RubberBand {
	return &RubberBand{}
}

// SetRect replaces the live rectangle.
func (rb *RubberBand) SetRect(r geom.Rect) {
	rb.rect = r
}

// Rect returns the live rectangle.
func (rb *RubberBand) Rect() geom.Rect {
	return rb.rect
}

// SetBoundary constrains resizes and moves so that at least MinLedge
// pixels of the rectangle stay inside r.
func (rb *RubberBand) SetBoundary(r geom.Rect) {
	rb.boundary = &r
}

// SetAspect stores the ratio used by AspectKeepSetting.
func (rb *RubberBand) SetAspect(aspect float64) {
	rb.aspectSetting = aspect
}

// Aspect returns the active ratio, or 0 when resizing is free.
func (rb *RubberBand) Aspect() float64 {
	return rb.aspect
}

// KeepAspect switches the aspect mode and returns the active ratio (0 for
// free). AspectKeepSetting without a configured ratio falls back to
// AspectKeepCurrent, which falls back to AspectFree for an empty rectangle.
// Locking a ratio immediately reshapes the rectangle from its top-left.
func (rb *RubberBand) KeepAspect(mode AspectMode) float64 {
	switch mode {
	case AspectKeepSetting:
		if rb.aspectSetting != 0 {
			rb.aspect = rb.aspectSetting
			rb.applyAspect(hintMax, hintMax)
			break
		}
		fallthrough
	case AspectKeepCurrent:
		if w, h := rb.rect.Width(), rb.rect.Height(); w != 0 && h != 0 {
			rb.aspect = w / h
			rb.applyAspect(hintMax, hintMax)
			break
		}
		fallthrough
	case AspectFree:
		rb.aspect = 0
	}
	return rb.aspect
}

// Show makes the band visible and hit-testable.
func (rb *RubberBand) Show() { rb.shown = true }

// Hide hides the band and abandons any gesture in progress.
func (rb *RubberBand) Hide() {
	rb.shown = false
	rb.handle = HandleNone
}

// Shown reports whether the band is visible.
func (rb *RubberBand) Shown() bool { return rb.shown }

// Active reports whether a gesture is in progress.
func (rb *RubberBand) Active() bool { return rb.handle != HandleNone }

// Frame returns the rectangle the band is drawn on, Margin outside Rect.
func (rb *RubberBand) Frame() geom.Rect {
	f := rb.rect
	f.Inflate(Margin)
	return f
}

// Knobs returns the centers of the eight knobs keyed by handle.
func (rb *RubberBand) Knobs() map[Handle]geom.Point {
	f := rb.Frame()
	c := f.Center()
	return map[Handle]geom.Point{
		HandleLeftTop:     geom.Pt(f.Left, f.Top),
		HandleRightTop:    geom.Pt(f.Right, f.Top),
		HandleLeftBottom:  geom.Pt(f.Left, f.Bottom),
		HandleRightBottom: geom.Pt(f.Right, f.Bottom),
		HandleLeft:        geom.Pt(f.Left, c.Y),
		HandleRight:       geom.Pt(f.Right, c.Y),
		HandleTop:         geom.Pt(c.X, f.Top),
		HandleBottom:      geom.Pt(c.X, f.Bottom),
	}
}

// knobOrder lists knobs in hit-test priority: corners first.
var knobOrder = [...]Handle{
	HandleLeftTop, HandleRightTop, HandleLeftBottom, HandleRightBottom,
	HandleLeft, HandleRight, HandleTop, HandleBottom,
}

// HandleAt returns the handle under p, or HandleNone when the band is
// hidden or p misses it.
func (rb *RubberBand) HandleAt(p geom.Point) Handle {
	if !rb.shown {
		return HandleNone
	}
	knobs := rb.Knobs()
	for _, h := range knobOrder {
		if p.Distance(knobs[h]) <= KnobRadius {
			return h
		}
	}

	f := rb.Frame()
	inX := p.X >= f.Left-edgeSlop && p.X <= f.Right+edgeSlop
	inY := p.Y >= f.Top-edgeSlop && p.Y <= f.Bottom+edgeSlop
	switch {
	case inY && math.Abs(p.X-f.Left) <= edgeSlop:
		return HandleLeft
	case inY && math.Abs(p.X-f.Right) <= edgeSlop:
		return HandleRight
	case inX && math.Abs(p.Y-f.Top) <= edgeSlop:
		return HandleTop
	case inX && math.Abs(p.Y-f.Bottom) <= edgeSlop:
		return HandleBottom
	}
	if f.HitTest(p) {
		return HandleBody
	}
	return HandleNone
}

// Begin starts a gesture on h at p. It returns false for HandleNone.
func (rb *RubberBand) Begin(h Handle, p geom.Point) bool {
	if h == HandleNone {
		return false
	}
	rb.handle = h
	rb.start = p
	rb.from = rb.rect
	rb.dragging = false
	return true
}

// Drag updates the rectangle for the pointer at p and reports whether it
// changed. Body drags within DragThreshold of the start are ignored.
func (rb *RubberBand) Drag(p geom.Point) bool {
	if rb.handle == HandleNone {
		return false
	}
	before := rb.rect
	dx, dy := p.X-rb.start.X, p.Y-rb.start.Y

	if hx, hy := rb.handle.hints(); hx != hintNone || hy != hintNone {
		switch hx {
		case hintMin:
			rb.resizeX(rb.from.Left+dx, hx)
		case hintMax:
			rb.resizeX(rb.from.Right+dx, hx)
		}
		switch hy {
		case hintMin:
			rb.resizeY(rb.from.Top+dy, hy)
		case hintMax:
			rb.resizeY(rb.from.Bottom+dy, hy)
		}
		rb.applyAspect(hx, hy)
		rb.dragging = true
	} else {
		if !rb.dragging {
			if math.Abs(dx) < DragThreshold && math.Abs(dy) < DragThreshold {
				return false
			}
			rb.dragging = true
		}
		rb.moveContent(rb.from.Left+dx, rb.from.Top+dy)
	}
	return !rb.rect.Equal(before)
}

// End finishes the gesture.
func (rb *RubberBand) End() Result {
	if rb.handle == HandleNone {
		return Result{}
	}
	var res Result
	if rb.handle == HandleBody && !rb.dragging {
		res.Clicked = true
	} else {
		res.Moved = !rb.rect.Equal(rb.from)
	}
	rb.handle = HandleNone
	rb.dragging = false
	return res
}

func (rb *RubberBand) resizeX(x float64, h hint) {
	if h == hintMin {
		x = math.Min(x, rb.rect.Right-MinLedge)
		if rb.boundary != nil {
			x = math.Min(x, rb.boundary.Right-MinLedge)
		}
		rb.rect.Left = x
		return
	}
	x = math.Max(x, rb.rect.Left+MinLedge)
	if rb.boundary != nil {
		x = math.Max(x, rb.boundary.Left+MinLedge)
	}
	rb.rect.Right = x
}

func (rb *RubberBand) resizeY(y float64, h hint) {
	if h == hintMin {
		y = math.Min(y, rb.rect.Bottom-MinLedge)
		if rb.boundary != nil {
			y = math.Min(y, rb.boundary.Bottom-MinLedge)
		}
		rb.rect.Top = y
		return
	}
	y = math.Max(y, rb.rect.Top+MinLedge)
	if rb.boundary != nil {
		y = math.Max(y, rb.boundary.Top+MinLedge)
	}
	rb.rect.Bottom = y
}

// applyAspect reshapes the rectangle to the locked ratio, keeping the edges
// opposite the dragged ones fixed. Corner drags follow the dimension whose
// change since Begin is larger, measured in width units; edge drags solve
// for the other dimension.
func (rb *RubberBand) applyAspect(hx, hy hint) {
	if rb.aspect == 0 {
		return
	}
	r := &rb.rect
	w, h := r.Width(), r.Height()
	switch {
	case hx != hintNone && hy != hintNone:
		dw := w - rb.from.Width()
		dh := h - rb.from.Height()
		if math.Abs(dh)*rb.aspect > math.Abs(dw) {
			w = h * rb.aspect
		} else {
			h = w / rb.aspect
		}
		if hx == hintMin {
			r.Left = r.Right - w
			if rb.boundary != nil && r.Left > rb.boundary.Right-MinLedge {
				r.MoveLeft(rb.boundary.Right - MinLedge)
			}
		} else {
			r.Right = r.Left + w
			if rb.boundary != nil && r.Right < rb.boundary.Left+MinLedge {
				r.MoveRight(rb.boundary.Left + MinLedge)
			}
		}
		if hy == hintMin {
			r.Top = r.Bottom - h
			if rb.boundary != nil && r.Top > rb.boundary.Bottom-MinLedge {
				r.MoveTop(rb.boundary.Bottom - MinLedge)
			}
		} else {
			r.Bottom = r.Top + h
			if rb.boundary != nil && r.Bottom < rb.boundary.Top+MinLedge {
				r.MoveBottom(rb.boundary.Top + MinLedge)
			}
		}
	case hx != hintNone:
		r.Bottom = r.Top + w/rb.aspect
		if rb.boundary != nil && r.Bottom < rb.boundary.Top+MinLedge {
			r.MoveBottom(rb.boundary.Top + MinLedge)
		}
	case hy != hintNone:
		r.Right = r.Left + h*rb.aspect
		if rb.boundary != nil && r.Right < rb.boundary.Left+MinLedge {
			r.MoveRight(rb.boundary.Left + MinLedge)
		}
	}
}

// moveContent moves the rectangle's top-left to (x, y), then pulls it back
// so at least MinLedge pixels overlap the boundary.
func (rb *RubberBand) moveContent(x, y float64) {
	r := &rb.rect
	r.MoveLeftTop(x, y)
	if rb.boundary == nil {
		return
	}
	b := rb.boundary
	if r.Right < b.Left+MinLedge {
		r.MoveRight(b.Left + MinLedge)
	} else if r.Left > b.Right-MinLedge {
		r.MoveLeft(b.Right - MinLedge)
	}
	if r.Bottom < b.Top+MinLedge {
		r.MoveBottom(b.Top + MinLedge)
	} else if r.Top > b.Bottom-MinLedge {
		r.MoveTop(b.Bottom - MinLedge)
	}
}
