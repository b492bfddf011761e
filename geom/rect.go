package geom

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle. Constructors and Set keep it
// normalized (Left <= Right, Top <= Bottom). The field-level mutators
// (MoveLeft, Inflate, ...) do not renormalize; callers that can invert the
// rectangle call Normalize afterwards.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// NewRect returns the normalized rectangle spanning the two corners.
func NewRect(left, top, right, bottom float64) Rect {
	r := Rect{Left: left, Top: top, Right: right, Bottom: bottom}
	r.Normalize()
	return r
}

// RectAt returns an empty rectangle located at p.
func RectAt(p Point) Rect {
	return Rect{Left: p.X, Top: p.Y, Right: p.X, Bottom: p.Y}
}

// RectXYWH returns the rectangle with top-left (x, y) and the given size.
func RectXYWH(x, y, w, h float64) Rect {
	return NewRect(x, y, x+w, y+h)
}

// Set replaces all four edges and normalizes.
func (r *Rect) Set(left, top, right, bottom float64) *Rect {
	r.Left, r.Top, r.Right, r.Bottom = left, top, right, bottom
	return r.Normalize()
}

// Normalize swaps edges so that Left <= Right and Top <= Bottom.
func (r *Rect) Normalize() *Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Width returns Right - Left.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns Bottom - Top.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Aspect returns Width/Height, treating a zero height as 1.
func (r Rect) Aspect() float64 {
	h := r.Height()
	if h == 0 {
		h = 1
	}
	return r.Width() / h
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// IX returns the rounded left edge.
func (r Rect) IX() int { return int(math.Round(r.Left)) }

// IY returns the rounded top edge.
func (r Rect) IY() int { return int(math.Round(r.Top)) }

// IW returns the rounded width.
func (r Rect) IW() int { return int(math.Round(r.Width())) }

// IH returns the rounded height.
func (r Rect) IH() int { return int(math.Round(r.Height())) }

// Bounds returns the smallest integer rectangle covering r.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	)
}

// Equal reports whether both rectangles have identical edges.
func (r Rect) Equal(o Rect) bool {
	return r.Left == o.Left && r.Top == o.Top && r.Right == o.Right && r.Bottom == o.Bottom
}

// AddPoint grows the rectangle to include (x, y).
func (r *Rect) AddPoint(x, y float64) *Rect {
	if x < r.Left {
		r.Left = x
	} else if x > r.Right {
		r.Right = x
	}
	if y < r.Top {
		r.Top = y
	} else if y > r.Bottom {
		r.Bottom = y
	}
	return r
}

// Inflate moves every edge outward by v (inward when v is negative).
func (r *Rect) Inflate(v float64) *Rect {
	r.Left -= v
	r.Top -= v
	r.Right += v
	r.Bottom += v
	return r
}

// Union expands r in place so that it also covers o.
func (r *Rect) Union(o Rect) *Rect {
	r.Left = math.Min(r.Left, o.Left)
	r.Top = math.Min(r.Top, o.Top)
	r.Right = math.Max(r.Right, o.Right)
	r.Bottom = math.Max(r.Bottom, o.Bottom)
	return r
}

// MoveLeft translates horizontally so the left edge lands on x.
func (r *Rect) MoveLeft(x float64) *Rect {
	dx := x - r.Left
	r.Left = x
	r.Right += dx
	return r
}

// MoveTop translates vertically so the top edge lands on y.
func (r *Rect) MoveTop(y float64) *Rect {
	dy := y - r.Top
	r.Top = y
	r.Bottom += dy
	return r
}

// MoveRight translates horizontally so the right edge lands on x.
func (r *Rect) MoveRight(x float64) *Rect {
	dx := x - r.Right
	r.Right = x
	r.Left += dx
	return r
}

// MoveBottom translates vertically so the bottom edge lands on y.
func (r *Rect) MoveBottom(y float64) *Rect {
	dy := y - r.Bottom
	r.Bottom = y
	r.Top += dy
	return r
}

// MoveLeftTop translates so the top-left corner lands on (x, y).
func (r *Rect) MoveLeftTop(x, y float64) *Rect {
	return r.MoveLeft(x).MoveTop(y)
}

// HitTest reports whether p lies strictly inside r. Points on the
// boundary are outside.
func (r Rect) HitTest(p Point) bool {
	return r.Left < p.X && p.X < r.Right && r.Top < p.Y && p.Y < r.Bottom
}

// IntersectTest reports whether the segment p1-p2 touches r: either endpoint
// is inside, or the segment crosses one of the diagonals.
func (r Rect) IntersectTest(p1, p2 Point) bool {
	return r.HitTest(p1) ||
		r.HitTest(p2) ||
		segmentsCross(Pt(r.Left, r.Top), Pt(r.Right, r.Bottom), p1, p2) ||
		segmentsCross(Pt(r.Left, r.Bottom), Pt(r.Right, r.Top), p1, p2)
}

// segmentsCross reports a proper crossing of segments a-b and c-d.
// Collinear and touching segments do not cross.
func segmentsCross(a, b, c, d Point) bool {
	ta := (c.X-d.X)*(a.Y-c.Y) + (c.Y-d.Y)*(c.X-a.X)
	tb := (c.X-d.X)*(b.Y-c.Y) + (c.Y-d.Y)*(c.X-b.X)
	tc := (a.X-b.X)*(c.Y-a.Y) + (a.Y-b.Y)*(a.X-c.X)
	td := (a.X-b.X)*(d.Y-a.Y) + (a.Y-b.Y)*(a.X-d.X)
	return tc*td < 0 && ta*tb < 0
}
