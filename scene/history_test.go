package scene

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/labelforge/api"
)

func textElement(id, text string) api.Element {
	return api.Element{
		ID:        id,
		Kind:      api.KindText,
		Draggable: true,
		Geometry:  api.Geometry{X: 10, Y: 10, Width: 100, Height: 20},
		Text:      &api.TextState{Text: text, FontSize: 20, Fill: "#000000"},
	}
}

// editor wires a scene to a history the way the editor session does: every
// mutation records a post-mutation snapshot.
func wired() (*Scene, *History) {
	s := New(api.NewLabelFormat(3, 2, api.Inches))
	h := NewHistory()
	s.Observe(func() { h.Record(s.Snapshot()) })
	return s, h
}

func TestUndoRestoresStateBeforeLastMutation(t *testing.T) {
	s, h := wired()
	s.Apply(textElement("1", "first"), Change{}, TopChange{})
	s.Apply(textElement("2", "second"), Change{}, TopChange{})

	snap, ok := h.Undo()
	require.True(t, ok)
	s.Restore(snap)

	require.Equal(t, 1, s.Len())
	el, _ := s.Find("1")
	assert.Equal(t, "first", el.Text.Text)
}

func TestRedoRestoresUndoneMutation(t *testing.T) {
	s, h := wired()
	s.Apply(textElement("1", "first"), Change{}, TopChange{})
	s.Apply(textElement("2", "second"), Change{}, TopChange{})

	snap, ok := h.Undo()
	require.True(t, ok)
	s.Restore(snap)

	snap, ok = h.Redo(s.Snapshot())
	require.True(t, ok)
	s.Restore(snap)

	require.Equal(t, 2, s.Len())
	_, found := s.Find("2")
	assert.True(t, found)
}

func TestUndoRedoInverseLawAtEveryDepth(t *testing.T) {
	for k := 2; k <= MaxDepth; k++ {
		s, h := wired()
		for i := 0; i < k; i++ {
			s.Apply(textElement(fmt.Sprintf("%d", i), fmt.Sprintf("text-%d", i)), Change{}, TopChange{})
		}

		snap, ok := h.Undo()
		require.True(t, ok, "k=%d", k)
		s.Restore(snap)
		assert.Equal(t, k-1, s.Len(), "k=%d", k)

		snap, ok = h.Redo(s.Snapshot())
		require.True(t, ok, "k=%d", k)
		s.Restore(snap)
		assert.Equal(t, k, s.Len(), "k=%d", k)
	}
}

func TestMutationClearsRedo(t *testing.T) {
	s, h := wired()
	s.Apply(textElement("1", "a"), Change{}, TopChange{})
	s.Apply(textElement("2", "b"), Change{}, TopChange{})

	snap, _ := h.Undo()
	s.Restore(snap)
	require.Equal(t, 1, h.RedoDepth())

	s.Apply(textElement("3", "c"), Change{}, TopChange{})
	assert.Equal(t, 0, h.RedoDepth())
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	h := NewHistory()
	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo(Snapshot{})
	assert.False(t, ok)
}

func TestUndoOfLoneSnapshotLeavesStacksUntouched(t *testing.T) {
	s, h := wired()
	s.Apply(textElement("1", "first"), Change{}, TopChange{})

	// Only the current state is recorded: nothing to restore, and the
	// failed undo must not consume the snapshot.
	_, ok := h.Undo()
	assert.False(t, ok)
	assert.Equal(t, 1, h.UndoDepth())
	assert.Equal(t, 0, h.RedoDepth())

	// The next mutation is still undoable back to the preserved state.
	s.Apply(textElement("2", "second"), Change{}, TopChange{})
	snap, ok := h.Undo()
	require.True(t, ok)
	s.Restore(snap)
	assert.Equal(t, 1, s.Len())
}

func TestEvictionBeyondMaxDepth(t *testing.T) {
	s, h := wired()
	total := MaxDepth + 5
	for i := 0; i < total; i++ {
		s.Apply(textElement(fmt.Sprintf("%d", i), "x"), Change{}, TopChange{})
	}
	assert.Equal(t, MaxDepth, h.UndoDepth())

	// Only MaxDepth-1 undos can change state: the deepest recoverable
	// snapshot is the one below the top of a full stack.
	steps := 0
	for {
		snap, ok := h.Undo()
		if !ok {
			break
		}
		s.Restore(snap)
		steps++
	}
	assert.Equal(t, MaxDepth-1, steps)
	// The oldest states are gone: the earliest recoverable list still has
	// the elements recorded before eviction started.
	assert.Equal(t, total-MaxDepth+1, s.Len())
}

func TestSnapshotsDoNotAliasScene(t *testing.T) {
	s, h := wired()
	s.Apply(textElement("1", "before"), Change{}, TopChange{})

	// Mutate the element after the snapshot was taken.
	s.Apply(api.Element{ID: "1", Kind: api.KindText}, Change{Text: ptr("after")}, TopChange{})

	snap, ok := h.Undo()
	require.True(t, ok)
	s.Restore(snap)
	el, _ := s.Find("1")
	assert.Equal(t, "before", el.Text.Text)
}

func ptr[T any](v T) *T { return &v }
