package layers

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/gg"
)

var red = gg.RGBA{R: 1, A: 1}

func newStack(t *testing.T) *Stack {
	t.Helper()
	s, err := New(2, 20, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func paint(s *Stack, i int) {
	s.Pixmap(i).SetPixel(1, 1, red)
}

func painted(s *Stack, i int) bool {
	return s.Pixmap(i).GetPixel(1, 1).A > 0
}

func TestNew_Invalid(t *testing.T) {
	for _, tc := range []struct{ n, w, h int }{{0, 10, 10}, {1, 0, 10}, {1, 10, -1}} {
		if _, err := New(tc.n, tc.w, tc.h); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d,%d,%d) error = %v, want ErrInvalidSize", tc.n, tc.w, tc.h, err)
		}
	}
}

func TestStack_Overlay(t *testing.T) {
	s := newStack(t)
	if s.Count() != 2 || s.Overlay() != 2 {
		t.Errorf("Count=%d Overlay=%d, want 2,2", s.Count(), s.Overlay())
	}
	if s.Layer(s.Overlay()) == nil {
		t.Error("overlay layer missing")
	}
	if s.Valid(s.Overlay()) {
		t.Error("overlay counted as content layer")
	}
	if s.Layer(3) != nil || s.Pixmap(-1) != nil {
		t.Error("out of range index returned a layer")
	}
}

func TestStack_ClearShapes(t *testing.T) {
	s := newStack(t)
	paintAll := func() {
		for i := range s.Count() + 1 {
			paint(s, i)
		}
	}

	paintAll()
	s.Clear()
	if painted(s, 0) || painted(s, 1) {
		t.Error("Clear left content layers painted")
	}
	if !painted(s, s.Overlay()) {
		t.Error("Clear touched the overlay")
	}

	paintAll()
	s.ClearLayer(1)
	if !painted(s, 0) || painted(s, 1) {
		t.Error("ClearLayer(1) cleared the wrong layers")
	}

	paintAll()
	s.ClearSet(SetOf(0, 2))
	if painted(s, 0) || !painted(s, 1) || painted(s, 2) {
		t.Error("ClearSet({0,2}) cleared the wrong layers")
	}

	paintAll()
	s.ClearSet(SetOf(0, 1, s.Overlay()))
	for i := range s.Count() + 1 {
		if painted(s, i) {
			t.Errorf("ClearSet(all) left layer %d painted", i)
		}
	}
}

func TestStack_VisibilityKeepsPixels(t *testing.T) {
	s := newStack(t)
	paint(s, 0)
	s.SetVisible([]bool{false, true})
	if s.Visible(0) || !s.Visible(1) {
		t.Errorf("Visible(0), Visible(1) = %v, %v", s.Visible(0), s.Visible(1))
	}
	if !painted(s, 0) {
		t.Error("hiding a layer cleared it")
	}
	if got := s.VisibleSet().Indices(); len(got) != 1 || got[0] != 1 {
		t.Errorf("VisibleSet = %v, want [1]", got)
	}

	s.SetVisible(nil)
	if len(s.VisibleSet()) != 0 {
		t.Error("nil mask left layers visible")
	}
}

func TestStack_SnapshotCopies(t *testing.T) {
	s := newStack(t)
	paint(s, 1)
	snaps := s.Snapshot(SetOf(1, 5))
	if len(snaps) != 1 {
		t.Fatalf("Snapshot len = %d, want 1", len(snaps))
	}
	s.ClearLayer(1)
	if snaps[0].GetPixel(1, 1).A == 0 {
		t.Error("snapshot shares pixels with the layer")
	}
}

func TestComposite(t *testing.T) {
	s := newStack(t)
	paint(s, 0)
	img, err := Composite(context.Background(), s.Snapshot(SetOf(0, 1)), s.Width(), s.Height(), gg.White)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if got := img.RGBAAt(1, 1); got.R < 200 || got.G > 50 {
		t.Errorf("painted pixel = %v, want red", got)
	}
	if got := img.RGBAAt(5, 5); got.R < 250 || got.G < 250 || got.B < 250 {
		t.Errorf("background pixel = %v, want white", got)
	}
}

func TestComposite_Cancelled(t *testing.T) {
	s := newStack(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Composite(ctx, s.Snapshot(SetOf(0)), 20, 10, gg.White); !errors.Is(err, context.Canceled) {
		t.Errorf("Composite error = %v, want context.Canceled", err)
	}
}

func TestSet_Indices(t *testing.T) {
	s := SetOf(3, 1, 2)
	s[2] = false
	got := s.Indices()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("Indices = %v, want [1 3]", got)
	}
}
