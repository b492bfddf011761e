package drawable

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gogpu/sketchpad/geom"
)

func testStroke() *Drawable {
	pts := []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50)}
	r := geom.NewRect(10, 10, 50, 50)
	r.Inflate(2.5)
	return NewStroke(0, "#000000", 5, false, pts, r)
}

func TestNewStroke_BaseRect(t *testing.T) {
	d := testStroke()
	if !d.Stroke.BaseRect.Equal(d.Rect) {
		t.Errorf("BaseRect = %+v, want %+v", d.Stroke.BaseRect, d.Rect)
	}
	if d.Stroke.Transformer != nil {
		t.Error("fresh stroke has a transformer")
	}
	if !d.Alive || d.ID == uuid.Nil {
		t.Errorf("Alive=%v ID=%v", d.Alive, d.ID)
	}
}

func TestDrawable_MoveTo(t *testing.T) {
	d := testStroke()
	moved := d.Rect
	moved.MoveLeftTop(100, 100)
	d.MoveTo(moved)
	if d.Stroke.Transformer == nil {
		t.Fatal("MoveTo did not derive a transformer")
	}
	p := d.Transform().Point(geom.Pt(10, 10))
	if p.X <= 100 || p.Y <= 100 {
		t.Errorf("mapped start = %v, want inside moved rect", p)
	}

	d.MoveTo(d.Stroke.BaseRect)
	if d.Stroke.Transformer != nil {
		t.Error("transformer kept after moving back to BaseRect")
	}
}

func TestDrawable_ModifySizeInflates(t *testing.T) {
	d := testStroke()
	before := d.Rect
	old, changed := d.Modify(Attr{Size: 9})
	if !changed || old.Size != 5 {
		t.Fatalf("Modify = %+v, %v; want Size 5, true", old, changed)
	}
	if d.Rect.Left != before.Left-2 || d.Rect.Right != before.Right+2 {
		t.Errorf("Rect = %+v, want inflated by 2 from %+v", d.Rect, before)
	}
	if !d.Stroke.BaseRect.Equal(d.Rect) {
		t.Errorf("BaseRect = %+v, want %+v", d.Stroke.BaseRect, d.Rect)
	}

	// Replaying the old value restores the geometry exactly.
	d.Modify(old)
	if !d.Rect.Equal(before) {
		t.Errorf("after revert Rect = %+v, want %+v", d.Rect, before)
	}
}

func TestDrawable_ModifyKinds(t *testing.T) {
	tests := []struct {
		name    string
		d       *Drawable
		attr    Attr
		changed bool
	}{
		{"stroke color", testStroke(), Attr{Color: "#ff0000"}, true},
		{"stroke same color", testStroke(), Attr{Color: "#000000"}, false},
		{"stroke ignores text", testStroke(), Attr{Text: "x"}, false},
		{"text color", NewText(0, "hi", DefaultFont, "#000000", geom.NewRect(0, 0, 10, 10)), Attr{Color: "#00ff00"}, true},
		{"text content", NewText(0, "hi", DefaultFont, "#000000", geom.NewRect(0, 0, 10, 10)), Attr{Text: "ho"}, true},
		{"text ignores size", NewText(0, "hi", DefaultFont, "#000000", geom.NewRect(0, 0, 10, 10)), Attr{Size: 3}, false},
		{"image ignores color", NewImage(0, nil, "a.png", geom.NewRect(0, 0, 10, 10)), Attr{Color: "#00ff00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, changed := tt.d.Modify(tt.attr)
			if changed != tt.changed {
				t.Errorf("Modify(%+v) changed = %v, want %v", tt.attr, changed, tt.changed)
			}
		})
	}
}

func TestDrawable_Clone(t *testing.T) {
	d := testStroke()
	d.MoveTo(geom.NewRect(0, 0, 200, 200))
	c := d.Clone()
	c.Stroke.Points[0] = geom.Pt(-1, -1)
	c.Stroke.Transformer.Ratio = geom.Pt(9, 9)
	if d.Stroke.Points[0] == geom.Pt(-1, -1) {
		t.Error("Clone shares Points")
	}
	if d.Stroke.Transformer.Ratio == geom.Pt(9, 9) {
		t.Error("Clone shares Transformer")
	}
}

func TestDrawable_JSONStroke(t *testing.T) {
	d := testStroke()
	d.MoveTo(geom.NewRect(20, 20, 80, 80))
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{`"type":"stroke"`, `"baseRect"`, `"transformer"`, `"points"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("encoded stroke lacks %s: %s", key, data)
		}
	}
	if strings.Contains(string(data), "Selected") {
		t.Errorf("transient selection state serialized: %s", data)
	}

	var got Drawable
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.ID != d.ID || !got.Rect.Equal(d.Rect) || !got.Stroke.BaseRect.Equal(d.Stroke.BaseRect) {
		t.Errorf("decoded = %+v, want %+v", got, d)
	}
	if got.Stroke.Transformer == nil || *got.Stroke.Transformer != *d.Stroke.Transformer {
		t.Errorf("decoded transformer = %v, want %v", got.Stroke.Transformer, d.Stroke.Transformer)
	}
}

func TestDrawable_JSONImageURL(t *testing.T) {
	d := NewImage(1, nil, "https://example.com/a.png", geom.NewRect(0, 0, 10, 10))
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"url":"https://example.com/a.png"`) {
		t.Errorf("encoded image = %s", data)
	}
}

func TestDrawable_JSONImageDataURL(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	d := NewImage(0, img, "", geom.NewRect(0, 0, 2, 2))
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"url":"data:image/png;base64,`) {
		t.Errorf("image without URL not embedded: %s", data)
	}
}

func TestDrawable_UnmarshalText(t *testing.T) {
	var d Drawable
	err := json.Unmarshal([]byte(`{"type":"text","layer":0,"alive":true,"rect":{"left":5,"top":5,"right":1,"bottom":1},"text":"hi","color":"#123456"}`), &d)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if d.Text == nil || d.Text.Content != "hi" || d.Text.Font != DefaultFont {
		t.Errorf("Text = %+v", d.Text)
	}
	if d.Rect.Left != 1 || d.Rect.Right != 5 {
		t.Errorf("Rect not normalized: %+v", d.Rect)
	}
	if d.ID == uuid.Nil {
		t.Error("missing ID not replaced")
	}
}

func TestDrawable_UnmarshalUnknownKind(t *testing.T) {
	var d Drawable
	err := json.Unmarshal([]byte(`{"type":"polygon"}`), &d)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Unmarshal error = %v, want ErrUnknownKind", err)
	}
}

func TestNormalizeText(t *testing.T) {
	decomposed := "e\u0301"
	if got := NormalizeText(decomposed); got != "\u00e9" {
		t.Errorf("NormalizeText(%q) = %q, want %q", decomposed, got, "\u00e9")
	}
}
