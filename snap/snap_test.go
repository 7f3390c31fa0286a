package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/labelforge/api"
)

func rect(x, y, w, h float64) api.Geometry {
	return api.Geometry{X: x, Y: y, Width: w, Height: h}
}

func byKind(guides []Guide, kind GuideKind) []Guide {
	var out []Guide
	for _, g := range guides {
		if g.Kind == kind {
			out = append(out, g)
		}
	}
	return out
}

func TestSnapThresholdBoundary(t *testing.T) {
	sibling := rect(100, 100, 50, 50) // center (125, 125)

	// Centers differ by 4.99 on X: must snap. Same-size boxes at the same
	// offset also match left-left and right-right edges, which only render.
	dragged := rect(100+4.99, 300, 50, 50)
	pos, guides := Compute(dragged, []api.Geometry{sibling})
	assert.Equal(t, 100.0, pos.X, "snapped so centers align")
	assert.Equal(t, 300.0, pos.Y, "Y axis unaffected")
	centers := byKind(guides, CenterGuide)
	require.Len(t, centers, 1)
	assert.Equal(t, Vertical, centers[0].Orientation)
	assert.Equal(t, 125.0, centers[0].Position)
	assert.Len(t, byKind(guides, EdgeGuide), 2)

	// Centers differ by 5.01: must not snap.
	dragged = rect(100+5.01, 300, 50, 50)
	pos, guides = Compute(dragged, []api.Geometry{sibling})
	assert.Equal(t, 105.01, pos.X)
	assert.Empty(t, guides)
}

func TestAxesAreIndependent(t *testing.T) {
	sibling := rect(100, 100, 50, 50)
	// X centers match exactly, Y centers are far apart.
	dragged := rect(102, 500, 46, 50)
	pos, guides := Compute(dragged, []api.Geometry{sibling})
	assert.Equal(t, 125.0-46.0/2, pos.X)
	assert.Equal(t, 500.0, pos.Y)
	centers := byKind(guides, CenterGuide)
	require.Len(t, centers, 1)
	assert.Equal(t, Vertical, centers[0].Orientation)
	for _, g := range byKind(guides, EdgeGuide) {
		assert.Equal(t, Vertical, g.Orientation, "no horizontal matches")
	}
}

func TestLastSiblingWinsPerAxis(t *testing.T) {
	first := rect(100, 100, 50, 50)  // center x 125
	second := rect(103, 300, 50, 50) // center x 128
	dragged := rect(101, 500, 50, 50) // center x 126: within 5 of both

	pos, guides := Compute(dragged, []api.Geometry{first, second})
	assert.Equal(t, 128.0-25.0, pos.X, "later sibling overwrites the earlier match")
	centers := byKind(guides, CenterGuide)
	require.Len(t, centers, 2)
	assert.Equal(t, 125.0, centers[0].Position)
	assert.Equal(t, 128.0, centers[1].Position)
}

func TestEdgeGuidesDoNotSnap(t *testing.T) {
	sibling := rect(100, 100, 50, 50)
	// Dragged left edge within threshold of sibling right edge (150), but
	// centers are far apart on both axes.
	dragged := rect(152, 400, 80, 30)
	pos, guides := Compute(dragged, []api.Geometry{sibling})
	assert.Equal(t, 152.0, pos.X, "edge matches are render-only")
	require.Len(t, guides, 1)
	assert.Equal(t, EdgeGuide, guides[0].Kind)
	assert.Equal(t, 150.0, guides[0].Position)
}

func TestAllEdgePairings(t *testing.T) {
	sibling := rect(100, 100, 50, 50)
	// Same box: left/left, right/right, top/top, bottom/bottom all match,
	// plus both center guides.
	dragged := rect(100, 100, 50, 50)
	_, guides := Compute(dragged, []api.Geometry{sibling})

	edges := 0
	centers := 0
	for _, g := range guides {
		if g.Kind == EdgeGuide {
			edges++
		} else {
			centers++
		}
	}
	assert.Equal(t, 4, edges)
	assert.Equal(t, 2, centers)
}

func TestNoSiblings(t *testing.T) {
	dragged := rect(10, 20, 30, 40)
	pos, guides := Compute(dragged, nil)
	assert.Equal(t, Position{X: 10, Y: 20}, pos)
	assert.Empty(t, guides)
}
