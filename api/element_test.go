package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsIndependent(t *testing.T) {
	el := Element{
		ID:   "1",
		Kind: KindText,
		Text: &TextState{Text: "original", FontSize: 20},
	}
	clone := el.Clone()
	clone.Text.Text = "changed"
	assert.Equal(t, "original", el.Text.Text)

	list := CloneElements([]Element{el})
	list[0].Text.FontSize = 99
	assert.Equal(t, float64(20), el.Text.FontSize)
}

func TestClampSize(t *testing.T) {
	w, h := ClampSize(KindImage, 1, 300)
	assert.Equal(t, float64(5), w)
	assert.Equal(t, float64(300), h)

	w, h = ClampSize(KindText, 10, 10)
	assert.Equal(t, float64(20), w)
	assert.Equal(t, float64(20), h)

	w, h = ClampSize(KindField, 50, 3)
	assert.Equal(t, float64(50), w)
	assert.Equal(t, float64(20), h)
}

func TestNewElementIDUnique(t *testing.T) {
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 100; i++ {
		id := NewElementID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestGeometryHelpers(t *testing.T) {
	g := Geometry{X: 10, Y: 20, Width: 100, Height: 40}
	cx, cy := g.Center()
	assert.Equal(t, float64(60), cx)
	assert.Equal(t, float64(40), cy)

	l, top, r, b := g.Edges()
	assert.Equal(t, []float64{10, 20, 110, 60}, []float64{l, top, r, b})
}
