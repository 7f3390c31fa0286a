// Package scene owns the live canvas state: the ordered element list and the
// label format. All mutation funnels through a single entry point so the
// bounded history can intercept every change.
package scene

import (
	"github.com/samber/lo"

	"github.com/labelforge/labelforge/api"
)

// Window is the viewport state captured alongside element snapshots.
type Window struct {
	Zoom   float64 `json:"zoom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Change is a partial update to an element's geometry or variant state.
// Nil pointers leave the corresponding field untouched; the merge is shallow,
// mirroring the designer's single onChange path.
type Change struct {
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64

	Text       *string
	FontFamily *string
	FontFile   *string
	FontSize   *float64
	Fill       *string
	Align      *api.TextAlign

	URL *string

	BarcodeValue        *string
	BarcodeType         *api.BarcodeType
	BarcodeDisplayValue *bool
	BarcodeModuleWidth  *float64
	BarcodeModuleHeight *float64
}

// TopChange is a partial update to an element's top-level attributes.
type TopChange struct {
	Draggable *bool
	Field     *string
}

// Scene is the single source of truth for the canvas.
type Scene struct {
	format   api.LabelFormat
	window   Window
	elements []api.Element

	// onMutate fires after every completed mutation so the caller can push
	// a history snapshot. Never fired by Restore.
	onMutate func()
}

// New returns an empty scene with the given format.
func New(format api.LabelFormat) *Scene {
	return &Scene{format: format, window: Window{Zoom: 1}}
}

// Observe registers the mutation hook. Only one observer is supported; the
// editor session owns it.
func (s *Scene) Observe(fn func()) {
	s.onMutate = fn
}

// Elements returns a deep copy of the element list. Callers never get a
// handle they could use to mutate the scene around Apply.
func (s *Scene) Elements() []api.Element {
	return api.CloneElements(s.elements)
}

// Len returns the number of elements.
func (s *Scene) Len() int { return len(s.elements) }

// Find returns a copy of the element with the given id.
func (s *Scene) Find(id string) (api.Element, bool) {
	el, ok := lo.Find(s.elements, func(e api.Element) bool { return e.ID == id })
	if !ok {
		return api.Element{}, false
	}
	return el.Clone(), true
}

// FindByField returns a copy of the element bound to the given field name.
// At most one element may bind a field.
func (s *Scene) FindByField(field string) (api.Element, bool) {
	el, ok := lo.Find(s.elements, func(e api.Element) bool { return e.Field == field })
	if !ok {
		return api.Element{}, false
	}
	return el.Clone(), true
}

// Format returns the current label format.
func (s *Scene) Format() api.LabelFormat { return s.format }

// SetFormat replaces the label format. This is a mutation.
func (s *Scene) SetFormat(format api.LabelFormat) {
	s.format = format
	s.mutated()
}

// Window returns the viewport state.
func (s *Scene) Window() Window { return s.window }

// SetWindow updates the viewport. Viewport moves are not label mutations and
// do not fire the history hook; they are captured as part of snapshots.
func (s *Scene) SetWindow(w Window) { s.window = w }

// Apply is the single mutation entry point. If an element with el.ID exists
// the partial changes are merged into it; otherwise el is appended as a new
// element and the changes merged into the fresh copy.
func (s *Scene) Apply(el api.Element, change Change, top TopChange) api.Element {
	idx := lo.IndexOf(lo.Map(s.elements, func(e api.Element, _ int) string { return e.ID }), el.ID)
	if idx < 0 {
		s.elements = append(s.elements, el.Clone())
		idx = len(s.elements) - 1
	}
	target := &s.elements[idx]
	mergeTop(target, top)
	mergeChange(target, change)
	out := target.Clone()
	s.mutated()
	return out
}

// ApplyMany merges a partial change per element ID as one mutation. IDs not
// present in the scene are ignored. Alignment commands land here so a batch
// move costs a single history entry.
func (s *Scene) ApplyMany(changes map[string]Change) {
	if len(changes) == 0 {
		return
	}
	for i := range s.elements {
		if c, ok := changes[s.elements[i].ID]; ok {
			mergeChange(&s.elements[i], c)
		}
	}
	s.mutated()
}

// Delete removes every element whose ID matches one of the given elements.
// Unknown IDs are ignored. A single call is a single mutation.
func (s *Scene) Delete(els ...api.Element) {
	if len(els) == 0 {
		return
	}
	ids := lo.SliceToMap(els, func(e api.Element) (string, bool) { return e.ID, true })
	s.elements = lo.Reject(s.elements, func(e api.Element, _ int) bool { return ids[e.ID] })
	s.mutated()
}

// ReplaceAll swaps the entire scene contents and format in one mutation.
// Applying a template goes through here.
func (s *Scene) ReplaceAll(format api.LabelFormat, elements []api.Element) {
	s.format = format
	s.elements = api.CloneElements(elements)
	s.mutated()
}

// Duplicate appends a copy of the element with the given id, offset slightly
// so the copy is visible, with a fresh ID. Field bindings are not copied:
// at most one element may bind a field.
func (s *Scene) Duplicate(id string) (api.Element, bool) {
	el, ok := s.Find(id)
	if !ok {
		return api.Element{}, false
	}
	dup := el.Clone()
	dup.ID = api.NewElementID()
	dup.Field = ""
	dup.Geometry.X += 10
	dup.Geometry.Y += 10
	s.elements = append(s.elements, dup)
	s.mutated()
	return dup.Clone(), true
}

// MoveLayer swaps the element at the given id with its neighbor one step up
// (delta -1) or down (delta +1) in draw order.
func (s *Scene) MoveLayer(id string, delta int) bool {
	idx := lo.IndexOf(lo.Map(s.elements, func(e api.Element, _ int) string { return e.ID }), id)
	if idx < 0 {
		return false
	}
	next := idx + delta
	if next < 0 || next >= len(s.elements) {
		return false
	}
	s.elements[idx], s.elements[next] = s.elements[next], s.elements[idx]
	s.mutated()
	return true
}

// Snapshot captures the full restorable state.
func (s *Scene) Snapshot() Snapshot {
	return Snapshot{Window: s.window, Elements: api.CloneElements(s.elements)}
}

// Restore replaces the scene state from a snapshot without firing the
// mutation hook; undo/redo must not re-record themselves.
func (s *Scene) Restore(snap Snapshot) {
	s.window = snap.Window
	s.elements = api.CloneElements(snap.Elements)
}

func (s *Scene) mutated() {
	if s.onMutate != nil {
		s.onMutate()
	}
}

func mergeTop(el *api.Element, top TopChange) {
	if top.Draggable != nil {
		el.Draggable = *top.Draggable
	}
	if top.Field != nil {
		el.Field = *top.Field
	}
}

func mergeChange(el *api.Element, c Change) {
	if c.X != nil {
		el.Geometry.X = *c.X
	}
	if c.Y != nil {
		el.Geometry.Y = *c.Y
	}
	if c.Width != nil {
		el.Geometry.Width = *c.Width
	}
	if c.Height != nil {
		el.Geometry.Height = *c.Height
	}
	if c.Width != nil || c.Height != nil {
		el.Geometry.Width, el.Geometry.Height = api.ClampSize(el.Kind, el.Geometry.Width, el.Geometry.Height)
	}
	if c.Rotation != nil {
		el.Geometry.Rotation = *c.Rotation
	}

	if el.IsTextual() {
		if el.Text == nil {
			el.Text = &api.TextState{}
		}
		if c.Text != nil {
			el.Text.Text = *c.Text
		}
		if c.FontFamily != nil {
			el.Text.FontFamily = *c.FontFamily
		}
		if c.FontFile != nil {
			el.Text.FontFile = *c.FontFile
		}
		if c.FontSize != nil {
			el.Text.FontSize = *c.FontSize
		}
		if c.Fill != nil {
			el.Text.Fill = *c.Fill
		}
		if c.Align != nil {
			el.Text.Align = *c.Align
		}
	}

	if el.Kind == api.KindImage {
		if el.Image == nil {
			el.Image = &api.ImageState{}
		}
		if c.URL != nil {
			el.Image.URL = *c.URL
		}
	}

	if el.Kind == api.KindBarcode {
		if el.Barcode == nil {
			el.Barcode = &api.BarcodeState{}
		}
		if c.URL != nil {
			el.Barcode.URL = *c.URL
		}
		if c.BarcodeValue != nil {
			el.Barcode.Value = *c.BarcodeValue
		}
		if c.BarcodeType != nil {
			el.Barcode.Type = *c.BarcodeType
		}
		if c.BarcodeDisplayValue != nil {
			el.Barcode.DisplayValue = *c.BarcodeDisplayValue
		}
		if c.BarcodeModuleWidth != nil {
			el.Barcode.ModuleWidth = *c.BarcodeModuleWidth
		}
		if c.BarcodeModuleHeight != nil {
			el.Barcode.ModuleHeight = *c.BarcodeModuleHeight
		}
	}
}
