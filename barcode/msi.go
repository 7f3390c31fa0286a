package barcode

import (
	"fmt"
	"image"
	"image/color"

	boombuler "github.com/boombuler/barcode"
)

// MSI (modified Plessey) is not covered by the boombuler primitives, so the
// bit pattern is produced here: a 110 start guard, each digit as four bits
// MSB-first with 1 -> 110 and 0 -> 100, and a 1001 stop guard. No checksum
// digit is added; the designer passes values through as typed.
type msiSymbol struct {
	content string
	modules []bool
}

func encodeMSI(value string) (boombuler.Barcode, error) {
	modules := []bool{true, true, false}
	for _, c := range value {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("MSI value %q contains non-digit %q", value, string(c))
		}
		digit := byte(c - '0')
		for bit := 3; bit >= 0; bit-- {
			if digit&(1<<bit) != 0 {
				modules = append(modules, true, true, false)
			} else {
				modules = append(modules, true, false, false)
			}
		}
	}
	modules = append(modules, true, false, false, true)
	return &msiSymbol{content: value, modules: modules}, nil
}

func (m *msiSymbol) Content() string { return m.content }

func (m *msiSymbol) Metadata() boombuler.Metadata {
	return boombuler.Metadata{CodeKind: "MSI", Dimensions: 1}
}

func (m *msiSymbol) ColorModel() color.Model { return color.Gray16Model }

func (m *msiSymbol) Bounds() image.Rectangle {
	return image.Rect(0, 0, len(m.modules), 1)
}

func (m *msiSymbol) At(x, y int) color.Color {
	if x >= 0 && x < len(m.modules) && m.modules[x] {
		return color.Black
	}
	return color.White
}
