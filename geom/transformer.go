package geom

// Transformer maps coordinates from one rectangle onto another with a
// per-axis scale about Origin followed by Translate:
//
//	x' = (x - Origin.X) * Ratio.X + Origin.X + Translate.X
//
// The zero value is not the identity; use Identity or NewTransformer.
type Transformer struct {
	Origin    Point `json:"org"`
	Translate Point `json:"translate"`
	Ratio     Point `json:"ratio"`
}

// Identity returns a transformer that leaves coordinates unchanged.
func Identity() Transformer {
	return Transformer{Ratio: Point{X: 1, Y: 1}}
}

// NewTransformer returns the transformer mapping from onto to.
// margin is subtracted from both extents before the ratio is taken.
func NewTransformer(from, to Rect, margin float64) Transformer {
	var t Transformer
	t.Set(from, to, margin)
	return t
}

// Set re-derives t from the (from, to, margin) triple.
func (t *Transformer) Set(from, to Rect, margin float64) *Transformer {
	t.Origin = Point{X: from.Left + margin/2, Y: from.Top + margin/2}
	t.Translate = Point{X: to.Left - from.Left, Y: to.Top - from.Top}
	t.Ratio = Point{
		X: ratio(to.Width()-margin, from.Width()-margin),
		Y: ratio(to.Height()-margin, from.Height()-margin),
	}
	return t
}

// ratio divides lengths, treating zero-length extents as 1.
func ratio(to, from float64) float64 {
	if to == 0 {
		to = 1
	}
	if from == 0 {
		from = 1
	}
	return to / from
}

// X maps a horizontal coordinate.
func (t Transformer) X(x float64) float64 {
	return (x-t.Origin.X)*t.Ratio.X + t.Origin.X + t.Translate.X
}

// Y maps a vertical coordinate.
func (t Transformer) Y(y float64) float64 {
	return (y-t.Origin.Y)*t.Ratio.Y + t.Origin.Y + t.Translate.Y
}

// Point maps p.
func (t Transformer) Point(p Point) Point {
	return Point{X: t.X(p.X), Y: t.Y(p.Y)}
}

// Rect maps all four edges of r and returns the normalized result.
func (t Transformer) Rect(r Rect) Rect {
	return NewRect(t.X(r.Left), t.Y(r.Top), t.X(r.Right), t.Y(r.Bottom))
}
