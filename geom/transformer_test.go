package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestTransformerIdentity(t *testing.T) {
	tr := Identity()
	p := tr.Point(Pt(12.5, -3))
	if p != Pt(12.5, -3) {
		t.Errorf("Identity().Point = %v", p)
	}
}

func TestTransformerSameRect(t *testing.T) {
	r := NewRect(10, 10, 50, 30)
	tr := NewTransformer(r, r, 4)
	if tr.Ratio != Pt(1, 1) || tr.Translate != (Point{}) {
		t.Errorf("NewTransformer(r, r) = %+v, want unit ratio and no translation", tr)
	}
	got := tr.Rect(r)
	if !got.Equal(r) {
		t.Errorf("Rect(r) = %+v, want %+v", got, r)
	}
}

func TestTransformerTranslate(t *testing.T) {
	from := NewRect(0, 0, 10, 10)
	to := NewRect(20, 30, 30, 40)
	tr := NewTransformer(from, to, 0)
	p := tr.Point(Pt(5, 5))
	if !near(p.X, 25) || !near(p.Y, 35) {
		t.Errorf("Point(5,5) = %v, want (25,35)", p)
	}
}

func TestTransformerScaleWithMargin(t *testing.T) {
	// A 2px stroke bounding box doubled in size: the inner extent goes
	// from 8 to 18, so the ratio is 18/8.
	from := NewRect(0, 0, 10, 10)
	to := NewRect(0, 0, 20, 20)
	tr := NewTransformer(from, to, 2)

	if !near(tr.Ratio.X, 18.0/8.0) || !near(tr.Ratio.Y, 18.0/8.0) {
		t.Fatalf("Ratio = %v, want 2.25", tr.Ratio)
	}
	if tr.Origin != Pt(1, 1) {
		t.Errorf("Origin = %v, want (1,1)", tr.Origin)
	}

	// The stroke's centerline extremes (1 and 9) land on 1 and 19 so the
	// outline stays inside the destination.
	lo := tr.Point(Pt(1, 1))
	hi := tr.Point(Pt(9, 9))
	if !near(lo.X, 1) || !near(hi.X, 19) {
		t.Errorf("mapped extremes = %v..%v, want 1..19", lo.X, hi.X)
	}
}

func TestTransformerZeroExtent(t *testing.T) {
	// Zero-width extents count as 1 instead of dividing by zero.
	from := NewRect(0, 0, 0, 10)
	to := NewRect(0, 0, 5, 10)
	tr := NewTransformer(from, to, 0)
	if !near(tr.Ratio.X, 5) {
		t.Errorf("Ratio.X = %v, want 5", tr.Ratio.X)
	}
	if math.IsInf(tr.Ratio.X, 0) || math.IsNaN(tr.Ratio.X) {
		t.Error("Ratio.X is not finite")
	}
}

func TestTransformerRectNormalizes(t *testing.T) {
	tr := Transformer{Ratio: Pt(-1, 1)}
	got := tr.Rect(NewRect(1, 1, 5, 5))
	if got.Left > got.Right || got.Top > got.Bottom {
		t.Errorf("Rect = %+v, not normalized", got)
	}
}
