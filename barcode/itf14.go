package barcode

import "fmt"

// ITF14 bearer-bar geometry, in canvas pixels. The symbol must be framed by
// guard bars 4.8mm thick, with a mandated 10.16mm quiet zone to the left and
// right of the bars.
const (
	GuardThickness = 18.141734569
	GuardOffset    = 9.1
	QuietZone      = 38.400004838
)

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// CheckDigit computes the GTIN mod-10 check digit for a 13-digit ITF14
// payload: walking the digits right to left, odd positions weigh 3 and even
// positions weigh 1; the check digit tops the sum up to the next multiple
// of ten.
func CheckDigit(value string) (int, error) {
	if len(value) == 0 {
		return 0, fmt.Errorf("empty ITF14 value")
	}
	sum := 0
	pos := 0
	for i := len(value) - 1; i >= 0; i-- {
		c := value[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("ITF14 value %q contains non-digit %q", value, string(c))
		}
		pos++
		digit := int(c - '0')
		if pos%2 == 1 {
			sum += digit * 3
		} else {
			sum += digit
		}
	}
	check := (sum+9)/10*10 - sum
	return check, nil
}

// AppendCheckDigit returns the value with its GTIN check digit appended.
func AppendCheckDigit(value string) (string, error) {
	check, err := CheckDigit(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", value, check), nil
}

// GuardBars returns the four bearer rectangles framing an ITF14 symbol, in
// order top, bottom, left, right. The horizontal bars sit GuardOffset outside
// the symbol box and span the full frame width; the vertical bars sit a quiet
// zone out from the symbol edges and connect the horizontal pair. The frame
// is drawn as part of the element's composite render group, never baked into
// the symbol bitmap.
func GuardBars(symbol Rect) []Rect {
	frameLeft := symbol.X - QuietZone - GuardThickness
	frameWidth := symbol.W + 2*(QuietZone+GuardThickness)
	topY := symbol.Y - GuardOffset - GuardThickness
	bottomY := symbol.Y + symbol.H + GuardOffset
	sideHeight := bottomY + GuardThickness - topY

	return []Rect{
		{X: frameLeft, Y: topY, W: frameWidth, H: GuardThickness},
		{X: frameLeft, Y: bottomY, W: frameWidth, H: GuardThickness},
		{X: frameLeft, Y: topY, W: GuardThickness, H: sideHeight},
		{X: symbol.X + symbol.W + QuietZone, Y: topY, W: GuardThickness, H: sideHeight},
	}
}
