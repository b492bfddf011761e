// Package geom provides the axis-aligned geometry used by the sketchpad
// engine: points, normalized rectangles and the scale+translate
// Transformer that maps one rectangle onto another.
//
// # Coordinate System
//
// Same as gg: origin at the top-left, X grows right, Y grows down.
// All values are float64 canvas pixels.
//
// # Transformer
//
// A Transformer is derived from a (from, to, margin) triple. The margin is
// the stroke width of the object being mapped: it keeps the stroke's own
// thickness out of the scale ratio so a resized stroke keeps its outline
// inside the destination rectangle.
//
//	t := geom.NewTransformer(before, after, penSize)
//	p := t.Point(geom.Pt(10, 10))
//
// Only translation and per-axis scale are supported. There is no rotation.
package geom
