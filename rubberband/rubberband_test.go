package rubberband

import (
	"math"
	"testing"

	"github.com/gogpu/sketchpad/geom"
)

func newBand(r geom.Rect) *RubberBand {
	rb := New()
	rb.SetBoundary(geom.NewRect(0, 0, 400, 300))
	rb.SetRect(r)
	rb.Show()
	return rb
}

func TestRubberBand_HandleAt(t *testing.T) {
	rb := newBand(geom.NewRect(100, 100, 200, 150))
	f := rb.Frame() // 96,96 .. 204,154
	tests := []struct {
		name string
		p    geom.Point
		want Handle
	}{
		{"left-top knob", geom.Pt(f.Left, f.Top), HandleLeftTop},
		{"right-bottom knob", geom.Pt(f.Right+2, f.Bottom+2), HandleRightBottom},
		{"left mid knob", geom.Pt(f.Left, 125), HandleLeft},
		{"top edge", geom.Pt(130, f.Top+1), HandleTop},
		{"bottom edge", geom.Pt(170, f.Bottom), HandleBottom},
		{"body", geom.Pt(150, 125), HandleBody},
		{"outside", geom.Pt(10, 10), HandleNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rb.HandleAt(tt.p); got != tt.want {
				t.Errorf("HandleAt(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	rb.Hide()
	if got := rb.HandleAt(geom.Pt(150, 125)); got != HandleNone {
		t.Errorf("hidden HandleAt = %v, want none", got)
	}
}

func TestRubberBand_BodyClickBelowThreshold(t *testing.T) {
	rb := newBand(geom.NewRect(100, 100, 200, 150))
	rb.Begin(HandleBody, geom.Pt(150, 125))
	if rb.Drag(geom.Pt(154, 121)) {
		t.Error("Drag within threshold changed the rect")
	}
	res := rb.End()
	if !res.Clicked || res.Moved {
		t.Errorf("End = %+v, want click", res)
	}
	if !rb.Rect().Equal(geom.NewRect(100, 100, 200, 150)) {
		t.Errorf("rect = %+v after click", rb.Rect())
	}
}

func TestRubberBand_BodyMove(t *testing.T) {
	rb := newBand(geom.NewRect(100, 100, 200, 150))
	rb.Begin(HandleBody, geom.Pt(150, 125))
	if !rb.Drag(geom.Pt(170, 135)) {
		t.Fatal("Drag past threshold did not move")
	}
	want := geom.NewRect(120, 110, 220, 160)
	if !rb.Rect().Equal(want) {
		t.Errorf("rect = %+v, want %+v", rb.Rect(), want)
	}
	// Coming back inside the threshold still moves once dragging started.
	rb.Drag(geom.Pt(151, 125))
	if rb.Rect().Left != 101 {
		t.Errorf("left = %v, want 101", rb.Rect().Left)
	}
	if res := rb.End(); !res.Moved || res.Clicked {
		t.Errorf("End = %+v, want moved", res)
	}
}

func TestRubberBand_MoveClampsToBoundary(t *testing.T) {
	rb := newBand(geom.NewRect(100, 100, 200, 150))
	rb.Begin(HandleBody, geom.Pt(150, 125))
	rb.Drag(geom.Pt(-500, -500))
	r := rb.Rect()
	if r.Right != MinLedge || r.Bottom != MinLedge {
		t.Errorf("rect = %+v, want right/bottom at %d", r, MinLedge)
	}
	if r.Width() != 100 || r.Height() != 50 {
		t.Errorf("size changed to %vx%v", r.Width(), r.Height())
	}
}

func TestRubberBand_ResizeMinLedge(t *testing.T) {
	rb := newBand(geom.NewRect(100, 100, 200, 150))
	rb.Begin(HandleRight, geom.Pt(204, 125))
	rb.Drag(geom.Pt(0, 125))
	if w := rb.Rect().Width(); w != MinLedge {
		t.Errorf("width = %v, want %d", w, MinLedge)
	}
	if res := rb.End(); !res.Moved {
		t.Errorf("End = %+v, want moved", res)
	}
}

func TestRubberBand_ResizeWithoutChange(t *testing.T) {
	rb := newBand(geom.NewRect(100, 100, 200, 150))
	rb.Begin(HandleLeftTop, geom.Pt(96, 96))
	rb.Drag(geom.Pt(96, 96))
	if res := rb.End(); res.Moved || res.Clicked {
		t.Errorf("End = %+v, want neither moved nor clicked", res)
	}
}

func TestRubberBand_KeepSettingCorner(t *testing.T) {
	const ratio = 2.0
	handles := []Handle{HandleLeftTop, HandleRightTop, HandleLeftBottom, HandleRightBottom}
	deltas := []geom.Point{geom.Pt(30, 5), geom.Pt(-7, 40), geom.Pt(12, -18)}
	for _, h := range handles {
		for _, d := range deltas {
			rb := newBand(geom.NewRect(100, 100, 200, 150))
			rb.SetAspect(ratio)
			if got := rb.KeepAspect(AspectKeepSetting); got != ratio {
				t.Fatalf("KeepAspect = %v, want %v", got, ratio)
			}
			start := rb.Knobs()[h]
			rb.Begin(h, start)
			rb.Drag(start.Add(d))
			r := rb.Rect()
			if got := r.Width() / r.Height(); math.Abs(got-ratio) > 1e-9 {
				t.Errorf("%v by %v: aspect = %v, want %v (rect %+v)", h, d, got, ratio, r)
			}
			rb.End()
		}
	}
}

func TestRubberBand_KeepSettingCornerLargerDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta geom.Point
		want  geom.Rect
	}{
		{"vertical on wide band", geom.Pt(0, 20), geom.NewRect(20, 20, 260, 80)},
		{"mostly vertical", geom.Pt(5, 20), geom.NewRect(20, 20, 260, 80)},
		{"horizontal", geom.Pt(40, 0), geom.NewRect(20, 20, 220, 70)},
		{"shrink vertically", geom.Pt(0, -10), geom.NewRect(20, 20, 140, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := newBand(geom.NewRect(20, 20, 180, 60))
			rb.SetAspect(4)
			rb.KeepAspect(AspectKeepSetting)
			start := rb.Knobs()[HandleRightBottom]
			rb.Begin(HandleRightBottom, start)
			rb.Drag(start.Add(tt.delta))
			if got := rb.Rect(); !got.Equal(tt.want) {
				t.Errorf("drag by %v: rect = %+v, want %+v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestRubberBand_KeepCurrentEdge(t *testing.T) {
	rb := newBand(geom.NewRect(100, 100, 140, 120))
	if got := rb.KeepAspect(AspectKeepCurrent); got != 2 {
		t.Fatalf("KeepAspect = %v, want 2", got)
	}
	rb.Begin(HandleRight, geom.Pt(144, 110))
	rb.Drag(geom.Pt(164, 110))
	r := rb.Rect()
	if r.Width() != 60 || r.Height() != 30 {
		t.Errorf("rect = %vx%v, want 60x30", r.Width(), r.Height())
	}
}

func TestRubberBand_KeepAspectFallbacks(t *testing.T) {
	rb := newBand(geom.NewRect(0, 0, 30, 10))
	if got := rb.KeepAspect(AspectKeepSetting); got != 3 {
		t.Errorf("keepSetting without setting = %v, want current ratio 3", got)
	}
	rb.SetRect(geom.NewRect(5, 5, 5, 20))
	if got := rb.KeepAspect(AspectKeepCurrent); got != 0 {
		t.Errorf("keepCurrent on empty rect = %v, want 0", got)
	}
	rb.SetRect(geom.NewRect(0, 0, 30, 10))
	rb.KeepAspect(AspectKeepCurrent)
	if got := rb.KeepAspect(AspectFree); got != 0 || rb.Aspect() != 0 {
		t.Errorf("free = %v", got)
	}
}

func TestHandle_String(t *testing.T) {
	if HandleRightBottom.String() != "right-bottom" {
		t.Errorf("String = %q", HandleRightBottom.String())
	}
	if !HandleTop.IsResize() || HandleBody.IsResize() {
		t.Error("IsResize mismatch")
	}
}
