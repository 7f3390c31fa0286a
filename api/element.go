package api

import (
	"strconv"
	"sync"
	"time"
)

// Kind tags the element variants the canvas can hold. Each component that
// consumes elements switches exhaustively over these values.
type Kind string

const (
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindBarcode Kind = "barcode"
	// KindField is a text element bound to a named data field; the compiler
	// substitutes a runtime variable for its literal text.
	KindField Kind = "field"
)

// TextAlign is the horizontal alignment of a text element's content.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// DefaultFontFile is used whenever an element has no resolved font resource.
const DefaultFontFile = "arial.ttf"

// Geometry is an element's placement on the canvas, in pixels. Rotation is
// continuous degrees; it is only quantized at compile/render time.
type Geometry struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// Center returns the geometric center of the bounding box.
func (g Geometry) Center() (cx, cy float64) {
	return g.X + g.Width/2, g.Y + g.Height/2
}

// Edges returns the bounding box edges as left, top, right, bottom.
func (g Geometry) Edges() (left, top, right, bottom float64) {
	return g.X, g.Y, g.X + g.Width, g.Y + g.Height
}

// TextState holds the variant state shared by text and field elements.
type TextState struct {
	Text       string    `json:"text"`
	FontFamily string    `json:"fontFamily,omitempty"`
	FontFile   string    `json:"fontFile,omitempty"`
	FontSize   float64   `json:"fontSize"`
	Fill       string    `json:"fill,omitempty"`
	Align      TextAlign `json:"align,omitempty"`
}

// ImageState holds an image element's pixel source: either a fetchable URL or
// an embedded data URL.
type ImageState struct {
	URL string `json:"url"`
}

// BarcodeState holds a barcode element's symbology inputs plus the rendered
// preview asset produced by the encoder.
type BarcodeState struct {
	URL          string      `json:"url,omitempty"`
	Value        string      `json:"barcodeValue"`
	Type         BarcodeType `json:"barcodeType"`
	DisplayValue bool        `json:"barcodeDisplayValue"`
	ModuleWidth  float64     `json:"barcodeWidth,omitempty"`
	ModuleHeight float64     `json:"barcodeHeight,omitempty"`
}

// Element is one drawable unit on the canvas. Exactly one of the variant
// state pointers matching Kind is set.
type Element struct {
	ID        string   `json:"id"`
	Kind      Kind     `json:"kind"`
	Draggable bool     `json:"draggable"`
	Field     string   `json:"field,omitempty"`
	Geometry  Geometry `json:"geometry"`

	Text    *TextState    `json:"text,omitempty"`
	Image   *ImageState   `json:"image,omitempty"`
	Barcode *BarcodeState `json:"barcode,omitempty"`
}

// IsTextual reports whether the element draws as text (plain or field-bound).
func (e Element) IsTextual() bool {
	return e.Kind == KindText || e.Kind == KindField
}

// Clone returns a deep copy; variant state is never shared between copies.
func (e Element) Clone() Element {
	out := e
	if e.Text != nil {
		t := *e.Text
		out.Text = &t
	}
	if e.Image != nil {
		i := *e.Image
		out.Image = &i
	}
	if e.Barcode != nil {
		b := *e.Barcode
		out.Barcode = &b
	}
	return out
}

// CloneElements deep-copies an element list.
func CloneElements(elements []Element) []Element {
	out := make([]Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}

// Minimum element sizes enforced during interactive resize, in pixels.
const (
	MinElementSize = 5
	MinTextSize    = 20
)

// ClampSize applies the per-variant minimum bounding box to a resize.
func ClampSize(kind Kind, width, height float64) (float64, float64) {
	minSize := float64(MinElementSize)
	if kind == KindText || kind == KindField {
		minSize = MinTextSize
	}
	if width < minSize {
		width = minSize
	}
	if height < minSize {
		height = minSize
	}
	return width, height
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewElementID returns a unique, monotonic-time-derived element ID. IDs are
// never reused within a process even when two elements are created inside the
// same clock tick.
func NewElementID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
