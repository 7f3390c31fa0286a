package snap

import (
	"github.com/samber/lo"

	"github.com/labelforge/labelforge/api"
)

// Command is a one-shot alignment direction.
type Command string

const (
	AlignLeft   Command = "left"
	AlignCenter Command = "center"
	AlignRight  Command = "right"
	AlignTop    Command = "top"
	AlignMiddle Command = "middle"
	AlignBottom Command = "bottom"
)

// canvasMargin keeps left/right-aligned elements a hair inside the label
// edge, as a fraction of the canvas width.
const canvasMargin = 0.01

// PositionChange repositions one element on a single axis.
type PositionChange struct {
	ID string
	X  *float64
	Y  *float64
}

// Align computes the repositioning for an alignment command. A single
// selected element aligns against the canvas; a multi-selection aligns
// against the group's own extremes. The caller applies all returned changes
// as one scene mutation so the whole alignment is one undoable step.
func Align(cmd Command, selection []api.Element, format api.LabelFormat) []PositionChange {
	switch len(selection) {
	case 0:
		return nil
	case 1:
		return alignToCanvas(cmd, selection[0], format)
	default:
		return alignToGroup(cmd, selection)
	}
}

func alignToCanvas(cmd Command, el api.Element, format api.LabelFormat) []PositionChange {
	w, h := format.WidthPx, format.HeightPx
	change := PositionChange{ID: el.ID}
	switch cmd {
	case AlignLeft:
		change.X = ptr(w * canvasMargin)
	case AlignCenter:
		change.X = ptr(w/2 - el.Geometry.Width/2)
	case AlignRight:
		change.X = ptr(w - el.Geometry.Width - w*canvasMargin)
	case AlignTop:
		change.Y = ptr(0.0)
	case AlignMiddle:
		change.Y = ptr(h/2 - el.Geometry.Height/2)
	case AlignBottom:
		change.Y = ptr(h - el.Geometry.Height)
	default:
		return nil
	}
	return []PositionChange{change}
}

func alignToGroup(cmd Command, selection []api.Element) []PositionChange {
	left := lo.MinBy(selection, func(a, b api.Element) bool { return a.Geometry.X < b.Geometry.X }).Geometry.X
	right := lo.MaxBy(selection, func(a, b api.Element) bool {
		return a.Geometry.X+a.Geometry.Width > b.Geometry.X+b.Geometry.Width
	})
	top := lo.MinBy(selection, func(a, b api.Element) bool { return a.Geometry.Y < b.Geometry.Y }).Geometry.Y
	bottom := lo.MaxBy(selection, func(a, b api.Element) bool {
		return a.Geometry.Y+a.Geometry.Height > b.Geometry.Y+b.Geometry.Height
	})
	groupRight := right.Geometry.X + right.Geometry.Width
	groupBottom := bottom.Geometry.Y + bottom.Geometry.Height

	changes := make([]PositionChange, 0, len(selection))
	for _, el := range selection {
		change := PositionChange{ID: el.ID}
		switch cmd {
		case AlignLeft:
			change.X = ptr(left)
		case AlignCenter:
			change.X = ptr((left+groupRight)/2 - el.Geometry.Width/2)
		case AlignRight:
			change.X = ptr(groupRight - el.Geometry.Width)
		case AlignTop:
			change.Y = ptr(top)
		case AlignMiddle:
			change.Y = ptr((top+groupBottom)/2 - el.Geometry.Height/2)
		case AlignBottom:
			change.Y = ptr(groupBottom - el.Geometry.Height)
		default:
			return nil
		}
		changes = append(changes, change)
	}
	return changes
}

func ptr[T any](v T) *T { return &v }
