// Package layers provides the raster surfaces a sketchpad draws into.
//
// A Stack holds a fixed number of content layers plus one overlay layer on
// top for transient feedback (in-progress strokes, selection marks). Each
// layer is a gg.Pixmap with a gg.Context drawing into it.
//
// Visibility is bookkeeping only: hiding a layer never touches its pixels,
// and hidden layers still receive redraws.
package layers

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/gg"
)

// ErrInvalidSize is returned for non-positive dimensions or layer counts.
var ErrInvalidSize = errors.New("layers: invalid size")

// Layer is a single raster surface.
type Layer struct {
	pm  *gg.Pixmap
	dc  *gg.Context
	vis bool
}

// Context returns the drawing context targeting this layer.
func (l *Layer) Context() *gg.Context { return l.dc }

// Pixmap returns the layer's pixels.
func (l *Layer) Pixmap() *gg.Pixmap { return l.pm }

// Set is a set of layer indices.
type Set map[int]bool

// SetOf returns a set holding the given indices.
func SetOf(indices ...int) Set {
	s := make(Set, len(indices))
	for _, i := range indices {
		s[i] = true
	}
	return s
}

// Add inserts i.
func (s Set) Add(i int) { s[i] = true }

// Has reports whether i is in the set.
func (s Set) Has(i int) bool { return s[i] }

// Indices returns the members in ascending order.
func (s Set) Indices() []int {
	out := make([]int, 0, len(s))
	for i, ok := range s {
		if ok {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return out
}

// Stack is an ordered set of content layers plus an overlay.
type Stack struct {
	width, height int
	layers        []*Layer
}

// New creates count content layers and one overlay, all transparent and
// visible.
func New(count, width, height int) (*Stack, error) {
	if count < 1 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %d layers of %dx%d", ErrInvalidSize, count, width, height)
	}
	s := &Stack{width: width, height: height}
	for range count + 1 {
		pm := gg.NewPixmap(width, height)
		s.layers = append(s.layers, &Layer{
			pm:  pm,
			dc:  gg.NewContext(width, height, gg.WithPixmap(pm)),
			vis: true,
		})
	}
	return s, nil
}

// Width returns the layer width in pixels.
func (s *Stack) Width() int { return s.width }

// Height returns the layer height in pixels.
func (s *Stack) Height() int { return s.height }

// Count returns the number of content layers.
func (s *Stack) Count() int { return len(s.layers) - 1 }

// Overlay returns the overlay index, one past the last content layer.
func (s *Stack) Overlay() int { return len(s.layers) - 1 }

// Valid reports whether i names a content layer.
func (s *Stack) Valid(i int) bool { return i >= 0 && i < s.Count() }

// Layer returns layer i, or nil when i is out of range. The overlay is
// reachable through its index.
func (s *Stack) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// Pixmap returns the pixels of layer i.
func (s *Stack) Pixmap(i int) *gg.Pixmap {
	if l := s.Layer(i); l != nil {
		return l.pm
	}
	return nil
}

// Clear clears every content layer. The overlay is left alone.
func (s *Stack) Clear() {
	for i := range s.Count() {
		s.layers[i].dc.Clear()
	}
}

// ClearLayer clears layer i, which may be the overlay.
func (s *Stack) ClearLayer(i int) {
	if l := s.Layer(i); l != nil {
		l.dc.Clear()
	}
}

// ClearSet clears every layer in set.
func (s *Stack) ClearSet(set Set) {
	for i := range set {
		if set[i] {
			s.ClearLayer(i)
		}
	}
}

// SetVisible sets content layer visibility from mask. Missing entries hide
// the layer. The overlay is always visible.
func (s *Stack) SetVisible(mask []bool) {
	for i := range s.Count() {
		s.layers[i].vis = i < len(mask) && mask[i]
	}
}

// Visible reports whether content layer i is shown.
func (s *Stack) Visible(i int) bool {
	if !s.Valid(i) {
		return false
	}
	return s.layers[i].vis
}

// VisibleSet returns the shown content layers.
func (s *Stack) VisibleSet() Set {
	set := make(Set)
	for i := range s.Count() {
		if s.layers[i].vis {
			set[i] = true
		}
	}
	return set
}

// Snapshot returns copies of the content layers in set, bottom first.
// Indices outside the content range are skipped.
func (s *Stack) Snapshot(set Set) []*gg.Pixmap {
	idx := slices.Collect(maps.Keys(set))
	slices.Sort(idx)
	out := make([]*gg.Pixmap, 0, len(idx))
	for _, i := range idx {
		if !set[i] || !s.Valid(i) {
			continue
		}
		src := s.layers[i].pm
		cp := gg.NewPixmap(src.Width(), src.Height())
		copy(cp.Data(), src.Data())
		out = append(out, cp)
	}
	return out
}
