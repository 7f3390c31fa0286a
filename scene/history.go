package scene

import "github.com/labelforge/labelforge/api"

// MaxDepth bounds both history stacks. The oldest snapshot is evicted on
// overflow; eviction is not an error, those states simply become
// unrecoverable.
const MaxDepth = 10

// Snapshot is one immutable history entry: the viewport plus a full copy of
// the element list. Snapshots are whole-state replacements, not diffs.
type Snapshot struct {
	Window   Window        `json:"window"`
	Elements []api.Element `json:"elements"`
}

// Clone deep-copies the snapshot so restored state never aliases the stacks.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{Window: s.Window, Elements: api.CloneElements(s.Elements)}
}

// History is the bounded undo/redo machine layered on top of the scene.
// The top of the undo stack is always the current state, so a single undo
// restores the state before the latest mutation.
type History struct {
	undo []Snapshot
	redo []Snapshot
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Record pushes a post-mutation snapshot onto the undo stack and clears the
// redo stack. Called once per scene mutation, never by undo/redo.
func (h *History) Record(snap Snapshot) {
	h.undo = append(h.undo, snap.Clone())
	if len(h.undo) > MaxDepth {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// Undo pops the current state off the undo stack onto the redo stack and
// returns the snapshot to restore: the new top of the undo stack. When the
// stack is empty, or holds only the current state, nothing is restorable and
// both stacks are left untouched.
func (h *History) Undo() (Snapshot, bool) {
	if len(h.undo) <= 1 {
		return Snapshot{}, false
	}
	leaving := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, leaving)
	if len(h.redo) > MaxDepth {
		h.redo = h.redo[1:]
	}
	return h.undo[len(h.undo)-1].Clone(), true
}

// Redo pops the oldest redo snapshot, pushes the caller's current state onto
// the undo stack, and returns the popped snapshot to restore. No-op on an
// empty redo stack.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redo) == 0 {
		return Snapshot{}, false
	}
	next := h.redo[0]
	h.redo = h.redo[1:]
	h.undo = append(h.undo, current.Clone())
	if len(h.undo) > MaxDepth {
		h.undo = h.undo[1:]
	}
	return next, true
}

// UndoDepth returns the number of recorded undo snapshots.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of pending redo snapshots.
func (h *History) RedoDepth() int { return len(h.redo) }
