// Package sketchpad is a layered raster drawing engine.
//
// # Overview
//
// A Sketchpad owns a fixed stack of raster layers plus one overlay layer,
// an append-only collection of drawables (strokes, images and text boxes)
// and a linear undo/redo history. Hosts feed it pointer events and call
// its operations; it paints into the layers and reports availability and
// mode changes through an Observer.
//
// # Quick Start
//
//	sp, err := sketchpad.New(
//		sketchpad.WithSize(400, 300),
//		sketchpad.WithLayerCount(2),
//		sketchpad.WithObserver(sketchpad.Observer{
//			CanUndo: func(ok bool) { undoButton.SetEnabled(ok) },
//		}),
//	)
//	if err != nil {
//		return err
//	}
//	defer sp.Close()
//
//	sp.PointerDown(geom.Pt(10, 10), 0)
//	sp.PointerMove(geom.Pt(50, 50))
//	sp.PointerUp(geom.Pt(50, 50))
//	sp.Undo()
//
// # Modes and Selection
//
// The engine is in one of four modes: draw, erase, select and text. In
// select mode a pointer press toggles the topmost object under it, a drag
// adds every object the pointer path crosses, and the release shows the
// rubber band around the union of the selection. Dragging the band moves
// or resizes every selected object and records one grouped history entry.
//
// # History
//
// Every edit is recorded as an add, delete, move or attribute entry, or as
// a group of them applied atomically. Drawables are never removed; deleting
// one marks it dead so that undo can bring it back. Undo and redo repaint
// each affected layer once, however many objects a group touches.
//
// # Concurrency
//
// A Sketchpad is single-threaded: call it from one goroutine. Image
// decoding and export run in the background and hand their completions to
// a dispatcher. By default completions are queued and run by Wait; hosts
// with an event loop install their own with WithDispatcher.
//
// # Coordinate System
//
// Canvas pixels, origin at top-left, X to the right and Y down.
package sketchpad
