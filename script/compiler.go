// Package script compiles a finalized scene into the textual print-control
// program consumed by the legacy label-printing runtime. The runtime
// interprets the program statement by statement, so statement order and
// argument order are reproduced exactly; nothing here is pretty-printed.
package script

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/labelforge/labelforge/api"
)

// ValidationError is a user-facing pre-emission failure. The export path
// shows the message as a blocking notice and produces no file.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// The observed validation gates, wording included. The field gate fires on
// fewer than two collected fields and the barcode gate fires when no barcode
// is present; both checks are kept exactly as the shipping designer behaves,
// message text notwithstanding.
var (
	ErrTooFewFields = &ValidationError{Message: "You cannot create a label with less than 1 field"}
	ErrBarcodeCount = &ValidationError{Message: "You cannot create a label with more than 1 barcode"}
	ErrNegativeSize = &ValidationError{Message: "Width and height must be positive numbers"}
	ErrSizeUnset    = &ValidationError{Message: "You must set the width and height of the label"}
)

// Program fragments shared by every emitted script.
const (
	openMarker    = "<?php"
	closeMarker   = "\n?>\n"
	includeHeader = "\n    require_once('../includes/html2.php');\n"
	openCSVGuard  = "\n    if (!isset($_GET['csvfile']) && !isset($_POST['selection'])) {\n"
	includeFooter = "\n    require_once('../includes/footer.php');\n"
	closeCSVGuard = "\n    }\n"
)

// Compile validates the scene and emits the complete print program. The
// first failing check aborts with a ValidationError and no partial output.
func Compile(elements []api.Element, format api.LabelFormat) (string, error) {
	noQTY := lo.Filter(elements, func(e api.Element, _ int) bool { return e.Field != "QTY" })
	bound := lo.Filter(elements, func(e api.Element, _ int) bool { return e.Field != "" })
	boundNoQTY := lo.Filter(bound, func(e api.Element, _ int) bool { return e.Field != "QTY" })

	fields := lo.Map(bound, func(e api.Element, _ int) string { return e.Field })
	if !lo.Contains(fields, "QTY") {
		fields = append([]string{"QTY"}, fields...)
	}
	if len(fields) <= 1 {
		return "", ErrTooFewFields
	}

	barcodes := lo.Filter(elements, func(e api.Element, _ int) bool { return e.Kind == api.KindBarcode })
	if len(barcodes) > 0 {
		fields = append(fields, "UPC")
	}
	if len(barcodes) == 0 {
		return "", ErrBarcodeCount
	}

	if format.WidthPx == 0 || format.HeightPx == 0 {
		return "", ErrSizeUnset
	}
	if format.WidthPx < 0 || format.HeightPx < 0 {
		return "", ErrNegativeSize
	}

	var b strings.Builder
	b.WriteString(openMarker)

	b.WriteString("\n    $correctos = array('" + strings.Join(fields, "', '") + "');\n    ")
	b.WriteString(includeHeader)
	b.WriteString(openCSVGuard)

	// One runtime variable per bound field, defaulted to the element's
	// current literal text.
	for i, el := range boundNoQTY {
		b.WriteString("\n        $" + el.Field + " = asignar(" + strconv.Itoa(i+1) + ",'" + literalText(el) + "');\n        ")
	}

	// Barcode variables continue the assignment index after the fields.
	for i, el := range barcodes {
		idx := len(boundNoQTY) + i + 1
		b.WriteString("\n        $UPC" + strconv.Itoa(i+1) + " = asignar(" + strconv.Itoa(idx) + ", '" + el.Barcode.Value + "');\n        ")
	}

	angle := api.QuantizeAngle(format.Rotation)
	if angle != 0 {
		b.WriteString("\n        $anguloDeRotacion = " + strconv.Itoa(angle) + ";\n        ")
	}

	b.WriteString("\n        // width: " + num(format.RealWidth) + " in - height: " + num(format.RealHeight) + " in\n    ")

	bg := format.BackgroundRGB()
	b.WriteString("\n        formato(" + num(format.WidthPx) + "," + num(format.HeightPx) + "," +
		strconv.Itoa(bg.R) + "," + strconv.Itoa(bg.G) + "," + strconv.Itoa(bg.B) + "," + strconv.Itoa(angle) + ");\n    ")

	// Per-element color and font resources, indexed in encounter order and
	// referenced by index from the draw calls. Identical resources are not
	// deduplicated; the runtime tolerates the repetition.
	texts := lo.Filter(elements, func(e api.Element, _ int) bool { return e.IsTextual() && e.Field != "QTY" })
	colorIndex := map[string]int{}
	for i, el := range texts {
		colorIndex[el.ID] = i
		rgb := api.HexToRGB(fill(el))
		b.WriteString("\n        $color" + strconv.Itoa(i) + " = color(" + rgb.String() + ");\n        ")
	}
	fontIndex := map[string]int{}
	for i, el := range texts {
		fontIndex[el.ID] = i
		b.WriteString("\n        $font" + strconv.Itoa(i) + " = fuente('" + fontFile(el) + "');\n        ")
	}

	upcCounter := 1
	for _, el := range noQTY {
		switch {
		case el.IsTextual():
			x := floor(el.Geometry.X)
			// Baseline: floored y plus the raw font size, which may be
			// fractional.
			y := math.Floor(el.Geometry.Y) + fontSize(el)
			text := "'" + literalText(el) + "'"
			if el.Field != "" {
				text = "$" + el.Field
			}
			b.WriteString("\n            textoAjustado(" + text + "," +
				strconv.Itoa(x) + "," + num(y) + "," +
				strconv.Itoa(floor(el.Geometry.Width)) + "," + strconv.Itoa(floor(el.Geometry.Height)) + "," +
				"$font" + strconv.Itoa(fontIndex[el.ID]) + "," + "$color" + strconv.Itoa(colorIndex[el.ID]) + "," +
				num(fontSize(el)) + "," + strconv.Itoa(api.QuantizeAngle(el.Geometry.Rotation)) + ",0);\n            ")

		case el.Kind == api.KindBarcode:
			barcodeType := el.Barcode.Type
			if barcodeType == "" {
				barcodeType = api.UPC
			}
			x := floor(el.Geometry.X)
			y := floor(el.Geometry.Y)
			if barcodeType == api.ITF14 {
				// The bearer bars extend past the symbol box; the runtime
				// draws from the frame corner.
				x -= 48
				y -= 19
			}
			width := el.Barcode.ModuleWidth
			if width == 0 {
				width = 2
			}
			height := el.Barcode.ModuleHeight
			if height == 0 {
				height = 100
			}
			display := 0
			if el.Barcode.DisplayValue {
				display = 1
			}
			b.WriteString("\n            barcodeAjustado($UPC" + strconv.Itoa(upcCounter) + "," +
				strconv.Itoa(x) + "," + strconv.Itoa(y) + "," +
				strconv.Itoa(floor(width)) + "," + strconv.Itoa(floor(height)) + "," +
				"'" + string(barcodeType) + "'," + strconv.Itoa(api.QuantizeAngle(el.Geometry.Rotation)) + "," +
				"'" + DefaultBarcodeValue(barcodeType) + "'," + strconv.Itoa(display) + ");\n            ")
			upcCounter++

		case el.Kind == api.KindImage:
			b.WriteString("\n            setImageWithString(base64_decode(\"" + imagePayload(el) + "\")," +
				strconv.Itoa(floor(el.Geometry.X)) + "," + strconv.Itoa(floor(el.Geometry.Y)) + "," +
				strconv.Itoa(floor(el.Geometry.Width)) + "," + strconv.Itoa(floor(el.Geometry.Height)) + "," +
				strconv.Itoa(api.QuantizeAngle(el.Geometry.Rotation)) + ",0);\n            ")
		}
	}

	b.WriteString(includeFooter)
	b.WriteString(closeCSVGuard)
	b.WriteString(closeMarker)
	return b.String(), nil
}

func literalText(el api.Element) string {
	if el.Text == nil {
		return ""
	}
	return el.Text.Text
}

func fill(el api.Element) string {
	if el.Text == nil {
		return ""
	}
	return el.Text.Fill
}

func fontSize(el api.Element) float64 {
	if el.Text == nil {
		return 0
	}
	return el.Text.FontSize
}

func fontFile(el api.Element) string {
	if el.Text == nil || el.Text.FontFile == "" {
		return api.DefaultFontFile
	}
	return el.Text.FontFile
}

// imagePayload extracts the base64 body of a data URL; a bare payload is
// passed through untouched.
func imagePayload(el api.Element) string {
	if el.Image == nil {
		return ""
	}
	if idx := strings.Index(el.Image.URL, ","); idx >= 0 {
		return el.Image.URL[idx+1:]
	}
	return el.Image.URL
}

func floor(f float64) int {
	return int(math.Floor(f))
}

// num prints a number the way the runtime expects: no exponent, no trailing
// zeros, integers without a decimal point.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
