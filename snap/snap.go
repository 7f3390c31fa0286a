// Package snap computes drag-time alignment guides and one-shot element
// alignment. Both engines are pure: they read geometry and return new
// positions, leaving all mutation to the caller so a batch lands in history
// as a single step.
package snap

import (
	"math"

	"github.com/labelforge/labelforge/api"
)

// Threshold is the snap distance in pixels, applied independently per axis.
const Threshold = 5.0

// Orientation of a guide line on screen.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// GuideKind distinguishes center guides, which snap the dragged element,
// from edge extension guides, which are render-only.
type GuideKind string

const (
	CenterGuide GuideKind = "center"
	EdgeGuide   GuideKind = "edge"
)

// Guide is one transient alignment line. Guides live only for the duration
// of a drag frame; the render layer draws and discards them.
type Guide struct {
	Orientation Orientation
	Kind        GuideKind
	Position    float64
}

// Position is the snapped top-left corner for the dragged element.
type Position struct {
	X float64
	Y float64
}

// Compute runs one drag frame of the guide engine: the dragged geometry is
// tested against every draggable sibling, center-to-center and edge-to-edge,
// with the threshold applied per axis. The returned position aligns the
// dragged element's center to the last matching center guide on each axis;
// edge matches only produce guides. When several siblings match the same
// axis the last one in iteration order wins, which is acceptable because the
// visual difference is below the threshold.
func Compute(dragged api.Geometry, siblings []api.Geometry) (Position, []Guide) {
	scx, scy := dragged.Center()
	sLeft, sTop, sRight, sBottom := dragged.Edges()

	pos := Position{X: dragged.X, Y: dragged.Y}
	var guides []Guide
	var snapX, snapY *float64

	for _, g := range siblings {
		gcx, gcy := g.Center()
		gLeft, gTop, gRight, gBottom := g.Edges()

		if math.Abs(scx-gcx) < Threshold {
			guides = append(guides, Guide{Orientation: Vertical, Kind: CenterGuide, Position: gcx})
			cx := gcx
			snapX = &cx
		}
		if math.Abs(scy-gcy) < Threshold {
			guides = append(guides, Guide{Orientation: Horizontal, Kind: CenterGuide, Position: gcy})
			cy := gcy
			snapY = &cy
		}

		// Edge extension guides: every pairing of the dragged element's
		// vertical edges with the sibling's, then the horizontal set.
		for _, pair := range [][2]float64{
			{sLeft, gRight}, {sLeft, gLeft}, {sRight, gRight}, {sRight, gLeft},
		} {
			if math.Abs(pair[0]-pair[1]) < Threshold {
				guides = append(guides, Guide{Orientation: Vertical, Kind: EdgeGuide, Position: pair[1]})
			}
		}
		for _, pair := range [][2]float64{
			{sTop, gBottom}, {sTop, gTop}, {sBottom, gBottom}, {sBottom, gTop},
		} {
			if math.Abs(pair[0]-pair[1]) < Threshold {
				guides = append(guides, Guide{Orientation: Horizontal, Kind: EdgeGuide, Position: pair[1]})
			}
		}
	}

	if snapX != nil {
		pos.X = *snapX - dragged.Width/2
	}
	if snapY != nil {
		pos.Y = *snapY - dragged.Height/2
	}
	return pos, guides
}
