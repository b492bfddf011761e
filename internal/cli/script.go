package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/gogpu/sketchpad"
	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/geom"
	"github.com/gogpu/sketchpad/rubberband"
)

// step is one scripted action. Op selects which fields apply.
//
//	[
//	  {"op": "stroke", "points": [[10,10],[40,60],[90,20]]},
//	  {"op": "mode", "mode": "select"},
//	  {"op": "click", "at": [40,40]},
//	  {"op": "drag", "points": [[40,40],[120,90]]},
//	  {"op": "color", "color": "#c62828", "commit": true},
//	  {"op": "undo"}
//	]
type step struct {
	Op       string       `json:"op"`
	At       *[2]float64  `json:"at,omitempty"`
	Points   [][2]float64 `json:"points,omitempty"`
	Ctrl     bool         `json:"ctrl,omitempty"`
	Mode     string       `json:"mode,omitempty"`
	Color    string       `json:"color,omitempty"`
	Size     float64      `json:"size,omitempty"`
	Commit   bool         `json:"commit,omitempty"`
	Text     string       `json:"text,omitempty"`
	URL      string       `json:"url,omitempty"`
	Kind     string       `json:"kind,omitempty"`
	Payload  string       `json:"payload,omitempty"`
	Layer    *int         `json:"layer,omitempty"`
	Visible  []bool       `json:"visible,omitempty"`
	Aspect   string       `json:"aspect,omitempty"`
	Ratio    float64      `json:"ratio,omitempty"`
	Deselect bool         `json:"deselect,omitempty"`
}

func readScript(path string) ([]step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var steps []step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return steps, nil
}

func pt(p [2]float64) geom.Point { return geom.Pt(p[0], p[1]) }

func (st step) layer() int {
	if st.Layer == nil {
		return sketchpad.DefaultLayer
	}
	return *st.Layer
}

func (st step) mods() sketchpad.Modifiers {
	if st.Ctrl {
		return sketchpad.ModCtrl
	}
	return 0
}

// replay runs steps against sp in order. Asynchronous steps are awaited
// before the next one so the script reads sequentially.
func replay(ctx context.Context, sp *sketchpad.Sketchpad, steps []step, logger *log.Logger) error {
	for i, st := range steps {
		if err := apply(ctx, sp, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
		if err := sp.Wait(ctx); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
		logger.Debug("step", "n", i, "op", st.Op, "state", sp.State(), "mode", sp.Mode())
	}
	return nil
}

func apply(ctx context.Context, sp *sketchpad.Sketchpad, st step) error {
	switch st.Op {
	case "stroke", "drag":
		if len(st.Points) == 0 {
			return errors.New("no points")
		}
		sp.PointerDown(pt(st.Points[0]), st.mods())
		for _, p := range st.Points[1:] {
			sp.PointerMove(pt(p))
		}
		sp.PointerUp(pt(st.Points[len(st.Points)-1]))
	case "click":
		if st.At == nil {
			return errors.New("no position")
		}
		sp.PointerDown(pt(*st.At), st.mods())
		sp.PointerUp(pt(*st.At))
	case "mode":
		m := sketchpad.Mode(st.Mode)
		if !m.Valid() {
			return fmt.Errorf("unknown mode %q", st.Mode)
		}
		sp.SetMode(m)
	case "color":
		sp.SetColor(st.Color)
		sp.ApplyColorToSelection(st.Commit)
	case "pen":
		sp.SetPenSize(st.Size)
		sp.ApplyPenSizeToSelection(st.Commit)
	case "undo":
		sp.Undo()
	case "redo":
		sp.Redo()
	case "text":
		var at *geom.Point
		if st.At != nil {
			p := pt(*st.At)
			at = &p
		}
		_, err := sp.AddText(st.Text, st.layer(), at)
		return err
	case "edit":
		sp.SetEditText(st.Text)
		if st.Commit {
			sp.CommitText()
		}
	case "image":
		return awaitImage(ctx, sp, st)
	case "paste":
		var perr error
		if err := sp.Paste(drawable.Kind(st.Kind), st.Payload, st.layer(), func(_ []*drawable.Drawable, err error) {
			perr = err
		}); err != nil {
			return err
		}
		if err := sp.Wait(ctx); err != nil {
			return err
		}
		return perr
	case "delete":
		sp.DeleteSelectedObjects()
	case "complete":
		sp.CompleteSelection()
	case "restart":
		sp.RestartSelection(!st.Deselect)
	case "reset":
		sp.ResetSelection()
	case "layer":
		visible := st.Visible
		if visible == nil {
			visible = make([]bool, sp.LayerCount())
			for i := range visible {
				visible[i] = sp.Visible(i)
			}
		}
		return sp.ActivateLayer(visible, st.layer())
	case "aspect":
		if st.Ratio > 0 {
			sp.RubberBand().SetAspect(st.Ratio)
		}
		sp.KeepAspect(rubberband.AspectMode(st.Aspect))
	default:
		return errors.New("unknown op")
	}
	return nil
}

func awaitImage(ctx context.Context, sp *sketchpad.Sketchpad, st step) error {
	var ierr error
	sp.AddImage(st.URL, st.layer(), func(_ *drawable.Drawable, err error) {
		ierr = err
	})
	if err := sp.Wait(ctx); err != nil {
		return err
	}
	return ierr
}
