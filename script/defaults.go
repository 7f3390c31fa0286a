package script

import "github.com/labelforge/labelforge/api"

// DefaultBarcodeValue is the per-symbology fallback the runtime substitutes
// when the bound value is absent at print time. ITF14 has no fallback.
func DefaultBarcodeValue(t api.BarcodeType) string {
	switch t {
	case api.UPC:
		return "123456789012"
	case api.EAN13:
		return "9780521425575"
	case api.EAN8:
		return "97805250"
	case api.Code39, api.Code128, api.MSI:
		return "1234567890"
	default:
		return ""
	}
}
