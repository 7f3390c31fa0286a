// Package labelforge is the label design core: a scene of drawable elements
// over a physical label format, with bounded undo/redo, drag snapping,
// alignment commands, barcode encoding, and compilation to the print-control
// program the label runtime executes.
package labelforge

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/labelforge/labelforge/api"
	"github.com/labelforge/labelforge/barcode"
	"github.com/labelforge/labelforge/scene"
	"github.com/labelforge/labelforge/script"
	"github.com/labelforge/labelforge/snap"
)

// Editor wires a scene to its history and exposes the operations a design
// surface needs. Every completed mutation records one undo snapshot; undo
// and redo restore without re-recording.
type Editor struct {
	scene   *scene.Scene
	history *scene.History
	fields  []string
}

// NewEditor returns an editor over an empty label of the given format.
func NewEditor(format api.LabelFormat) *Editor {
	e := &Editor{
		scene:   scene.New(format),
		history: scene.NewHistory(),
		fields:  BuiltinFields,
	}
	e.scene.Observe(func() {
		e.history.Record(e.scene.Snapshot())
	})
	// The top of the undo stack is always the current state, so the empty
	// label is recorded up front; otherwise the first mutation could never
	// be undone.
	e.history.Record(e.scene.Snapshot())
	return e
}

// Scene exposes the underlying scene for read access and fine-grained
// mutations.
func (e *Editor) Scene() *scene.Scene { return e.scene }

// Design returns the current format and elements as a persistable design.
func (e *Editor) Design() api.Design {
	return api.Design{Format: e.scene.Format(), Elements: e.scene.Elements()}
}

// SetFields replaces the bindable field catalog, typically with the list the
// template service reports for the customer.
func (e *Editor) SetFields(fields []string) {
	if len(fields) > 0 {
		e.fields = fields
	}
}

// Fields returns the bindable field catalog.
func (e *Editor) Fields() []string { return e.fields }

// Resize changes the label's physical size, keeping rotation and background.
func (e *Editor) Resize(realWidth, realHeight float64, metric api.Metric) {
	e.scene.SetFormat(e.scene.Format().Resize(realWidth, realHeight, metric))
}

// AddText places a new free-text element.
func (e *Editor) AddText(text string, x, y float64) api.Element {
	el := api.Element{
		ID:        api.NewElementID(),
		Kind:      api.KindText,
		Draggable: true,
		Geometry:  api.Geometry{X: x, Y: y, Width: 200, Height: 30},
		Text: &api.TextState{
			Text:       text,
			FontFamily: "Arial",
			FontFile:   api.DefaultFontFile,
			FontSize:   20,
			Fill:       "#000000",
			Align:      api.AlignLeft,
		},
	}
	return e.scene.Apply(el, scene.Change{}, scene.TopChange{})
}

// AddField places a text element bound to a data field. A field may bind at
// most one element, and the field must exist in the catalog.
func (e *Editor) AddField(field string, x, y float64) (api.Element, error) {
	if !lo.Contains(e.fields, field) {
		return api.Element{}, fmt.Errorf("unknown field %q", field)
	}
	if _, ok := e.scene.FindByField(field); ok {
		return api.Element{}, fmt.Errorf("field %q is already on the label", field)
	}
	el := api.Element{
		ID:        api.NewElementID(),
		Kind:      api.KindField,
		Draggable: true,
		Field:     field,
		Geometry:  api.Geometry{X: x, Y: y, Width: 200, Height: 30},
		Text: &api.TextState{
			Text:       field,
			FontFamily: "Arial",
			FontFile:   api.DefaultFontFile,
			FontSize:   20,
			Fill:       "#000000",
			Align:      api.AlignLeft,
		},
	}
	return e.scene.Apply(el, scene.Change{}, scene.TopChange{}), nil
}

// AddImage places an image element from a URL or data URL.
func (e *Editor) AddImage(url string, x, y, width, height float64) (api.Element, error) {
	if url == "" {
		return api.Element{}, fmt.Errorf("image has no source")
	}
	el := api.Element{
		ID:        api.NewElementID(),
		Kind:      api.KindImage,
		Draggable: true,
		Geometry:  api.Geometry{X: x, Y: y, Width: width, Height: height},
		Image:     &api.ImageState{URL: url},
	}
	return e.scene.Apply(el, scene.Change{}, scene.TopChange{}), nil
}

// AddBarcode encodes and places a barcode element. Values the symbology
// cannot represent are rejected before anything is added to the scene.
func (e *Editor) AddBarcode(value string, typ api.BarcodeType, x, y float64) (api.Element, error) {
	sym, err := barcode.Encode(barcode.Request{Type: typ, Value: value})
	if err != nil {
		return api.Element{}, err
	}
	preview, err := sym.DataURL()
	if err != nil {
		return api.Element{}, err
	}
	el := api.Element{
		ID:        api.NewElementID(),
		Kind:      api.KindBarcode,
		Draggable: true,
		Geometry:  api.Geometry{X: x, Y: y, Width: float64(sym.Width), Height: float64(sym.Height)},
		Barcode: &api.BarcodeState{
			URL:          preview,
			Value:        value,
			Type:         typ,
			DisplayValue: sym.ShowCaption,
			ModuleWidth:  barcode.DefaultModuleWidth,
			ModuleHeight: barcode.DefaultModuleHeight,
		},
	}
	return e.scene.Apply(el, scene.Change{}, scene.TopChange{}), nil
}

// Apply merges a partial change into one element, the single fine-grained
// mutation entry point.
func (e *Editor) Apply(el api.Element, change scene.Change, top scene.TopChange) api.Element {
	return e.scene.Apply(el, change, top)
}

// SetBarcodeValue re-encodes an existing barcode element with a new value,
// refreshing the preview asset. The element is untouched when the value does
// not encode.
func (e *Editor) SetBarcodeValue(id, value string) (api.Element, error) {
	el, ok := e.scene.Find(id)
	if !ok || el.Barcode == nil {
		return api.Element{}, fmt.Errorf("no barcode element %q", id)
	}
	sym, err := barcode.Encode(barcode.Request{
		Type:         el.Barcode.Type,
		Value:        value,
		ModuleWidth:  el.Barcode.ModuleWidth,
		ModuleHeight: el.Barcode.ModuleHeight,
		DisplayValue: el.Barcode.DisplayValue,
	})
	if err != nil {
		return api.Element{}, err
	}
	preview, err := sym.DataURL()
	if err != nil {
		return api.Element{}, err
	}
	return e.scene.Apply(el, scene.Change{
		BarcodeValue: &value,
		URL:          &preview,
	}, scene.TopChange{}), nil
}

// Delete removes the elements with the given IDs as one mutation.
func (e *Editor) Delete(ids ...string) {
	els := lo.FilterMap(ids, func(id string, _ int) (api.Element, bool) {
		return e.scene.Find(id)
	})
	e.scene.Delete(els...)
}

// Duplicate copies an element with a small offset and a fresh ID.
func (e *Editor) Duplicate(id string) (api.Element, bool) {
	return e.scene.Duplicate(id)
}

// MoveLayer moves an element one step in draw order.
func (e *Editor) MoveLayer(id string, delta int) bool {
	return e.scene.MoveLayer(id, delta)
}

// Drag evaluates a proposed position for a dragged element: the returned
// position is snapped to any sibling center within range, and the guides
// describe what to draw. Dragging is read-only; nothing is committed until
// DragEnd.
func (e *Editor) Drag(id string, x, y float64) (snap.Position, []snap.Guide, error) {
	el, ok := e.scene.Find(id)
	if !ok {
		return snap.Position{}, nil, fmt.Errorf("no element %q", id)
	}
	proposed := el.Geometry
	proposed.X = x
	proposed.Y = y

	siblings := lo.FilterMap(e.scene.Elements(), func(other api.Element, _ int) (api.Geometry, bool) {
		return other.Geometry, other.ID != id
	})
	pos, guides := snap.Compute(proposed, siblings)
	return pos, guides, nil
}

// DragEnd commits the final drag position as one mutation.
func (e *Editor) DragEnd(id string, pos snap.Position) {
	el, ok := e.scene.Find(id)
	if !ok {
		return
	}
	e.scene.Apply(el, scene.Change{X: &pos.X, Y: &pos.Y}, scene.TopChange{})
}

// Align applies an alignment command to the selected elements as a single
// mutation. One element aligns to the canvas, several align to each other.
func (e *Editor) Align(cmd snap.Command, ids ...string) {
	selection := lo.FilterMap(ids, func(id string, _ int) (api.Element, bool) {
		return e.scene.Find(id)
	})
	moves := snap.Align(cmd, selection, e.scene.Format())
	if len(moves) == 0 {
		return
	}
	changes := map[string]scene.Change{}
	for _, m := range moves {
		changes[m.ID] = scene.Change{X: m.X, Y: m.Y}
	}
	e.scene.ApplyMany(changes)
}

// Undo restores the state before the latest mutation. Reports false when
// there is nothing to undo.
func (e *Editor) Undo() bool {
	snapshot, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.scene.Restore(snapshot)
	return true
}

// Redo restores the next pending redo snapshot. Reports false when there is
// nothing to redo.
func (e *Editor) Redo() bool {
	snapshot, ok := e.history.Redo(e.scene.Snapshot())
	if !ok {
		return false
	}
	e.scene.Restore(snapshot)
	return true
}

// ApplyTemplate replaces the whole design from a stored template in one
// mutation.
func (e *Editor) ApplyTemplate(t api.Template) {
	e.scene.ReplaceAll(t.Design.Format, t.Design.Elements)
}

// Compile validates the design and emits the print-control program.
func (e *Editor) Compile() (string, error) {
	return script.Compile(e.scene.Elements(), e.scene.Format())
}
