// Package history implements a linear undo/redo log of edits.
//
// A Log is a single sequence of entries with a cursor. Entries before the
// cursor are applied; entries at or after it can be redone. Recording a new
// entry while redo entries exist discards them. There is no undo tree.
//
// The log stores edits only. Applying an entry to a drawing is the caller's
// job: entries name their subject by its index in the caller's drawable
// slice, which never shrinks.
package history

import (
	"github.com/gogpu/sketchpad/drawable"
	"github.com/gogpu/sketchpad/geom"
)

// Action is the kind of edit an Entry records.
type Action string

// Actions.
const (
	ActionAdd    Action = "add"
	ActionDelete Action = "del"
	ActionMove   Action = "move"
	ActionAttr   Action = "attr"
	ActionGroup  Action = "group"
)

// Entry is one undoable edit. Leaf entries act on Object; a group entry
// carries its leaves in Sub and is applied or reverted as one unit.
type Entry struct {
	Action Action `json:"act"`
	Object int    `json:"obj"`

	FromRect *geom.Rect `json:"fromRect,omitempty"`
	ToRect   *geom.Rect `json:"toRect,omitempty"`

	FromAttr *drawable.Attr `json:"from,omitempty"`
	ToAttr   *drawable.Attr `json:"to,omitempty"`

	Sub []Entry `json:"sub,omitempty"`
}

// Add records that object was appended.
func Add(object int) Entry {
	return Entry{Action: ActionAdd, Object: object}
}

// Delete records that object was marked dead.
func Delete(object int) Entry {
	return Entry{Action: ActionDelete, Object: object}
}

// Move records a change of object's rectangle.
func Move(object int, from, to geom.Rect) Entry {
	return Entry{Action: ActionMove, Object: object, FromRect: &from, ToRect: &to}
}

// AttrChange records an attribute edit.
func AttrChange(object int, from, to drawable.Attr) Entry {
	return Entry{Action: ActionAttr, Object: object, FromAttr: &from, ToAttr: &to}
}

// Group bundles leaves into one atomic entry.
func Group(leaves ...Entry) Entry {
	return Entry{Action: ActionGroup, Object: -1, Sub: leaves}
}

// IsGroup reports whether e bundles other entries.
func (e Entry) IsGroup() bool {
	return e.Action == ActionGroup
}

// Leaves returns the leaf entries in application order. Redo (forward)
// applies them as recorded; undo reverts them last to first. A leaf entry
// returns itself.
func (e Entry) Leaves(forward bool) []Entry {
	if !e.IsGroup() {
		return []Entry{e}
	}
	out := make([]Entry, 0, len(e.Sub))
	for i := range e.Sub {
		j := i
		if !forward {
			j = len(e.Sub) - 1 - i
		}
		out = append(out, e.Sub[j].Leaves(forward)...)
	}
	return out
}
