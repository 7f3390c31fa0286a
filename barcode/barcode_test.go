package barcode

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/labelforge/api"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"0001234500006", 5}, // 00012345000065 is a self-consistent GTIN-14
		{"1234567890123", 1},
		{"0000000000000", 0},
	}
	for _, tt := range tests {
		got, err := CheckDigit(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}
}

func TestCheckDigitRejectsNonDigits(t *testing.T) {
	_, err := CheckDigit("12345678901ab")
	assert.Error(t, err)
	_, err = CheckDigit("")
	assert.Error(t, err)
}

func TestAppendCheckDigit(t *testing.T) {
	full, err := AppendCheckDigit("0001234500006")
	require.NoError(t, err)
	assert.Equal(t, "00012345000065", full)
}

func TestGuardBars(t *testing.T) {
	symbol := Rect{X: 100, Y: 50, W: 200, H: 100}
	bars := GuardBars(symbol)
	require.Len(t, bars, 4)

	top, bottom, left, right := bars[0], bars[1], bars[2], bars[3]

	assert.InDelta(t, 50-GuardOffset-GuardThickness, top.Y, 1e-9)
	assert.InDelta(t, GuardThickness, top.H, 1e-9)
	assert.InDelta(t, 150+GuardOffset, bottom.Y, 1e-9)

	// Horizontal bars span the full frame including both quiet zones.
	assert.InDelta(t, 100-QuietZone-GuardThickness, top.X, 1e-9)
	assert.InDelta(t, 200+2*(QuietZone+GuardThickness), top.W, 1e-9)

	// Vertical bars connect the horizontal pair.
	assert.InDelta(t, top.Y, left.Y, 1e-9)
	assert.InDelta(t, bottom.Y+GuardThickness-top.Y, left.H, 1e-9)
	assert.InDelta(t, 300+QuietZone, right.X, 1e-9)
}

func TestEncodeEmptyValue(t *testing.T) {
	_, err := Encode(Request{Type: api.Code128})
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestEncodeInvalidValue(t *testing.T) {
	_, err := Encode(Request{Type: api.EAN13, Value: "not-digits"})
	assert.Error(t, err)
}

func TestEncodeCode128(t *testing.T) {
	sym, err := Encode(Request{Type: api.Code128, Value: "1234567890"})
	require.NoError(t, err)
	assert.Equal(t, sym.Width, sym.Image.Bounds().Dx())
	assert.Equal(t, DefaultModuleHeight, sym.Height)
	assert.Equal(t, "1234567890", sym.Caption)
	assert.False(t, sym.ShowCaption)
}

func TestEncodeUPC(t *testing.T) {
	sym, err := Encode(Request{Type: api.UPC, Value: "123456789012", DisplayValue: true, ModuleWidth: 3, ModuleHeight: 80})
	require.NoError(t, err)
	assert.Equal(t, 80, sym.Height)
	assert.True(t, sym.ShowCaption)
}

func TestEncodeITF14ForcesCaption(t *testing.T) {
	sym, err := Encode(Request{Type: api.ITF14, Value: "0001234500006", DisplayValue: false})
	require.NoError(t, err)
	assert.Equal(t, "00012345000065", sym.Caption)
	assert.True(t, sym.ShowCaption, "ITF14 caption is always drawn manually")
}

func TestEncodeMSIPattern(t *testing.T) {
	code, err := encodeMSI("1")
	require.NoError(t, err)

	// start 110, digit 1 = 0001 -> 100 100 100 110, stop 1001
	want := "110" + "100100100110" + "1001"
	bounds := code.Bounds()
	require.Equal(t, len(want), bounds.Dx())
	var got strings.Builder
	for x := 0; x < bounds.Dx(); x++ {
		if code.At(x, 0) == color.Black {
			got.WriteByte('1')
		} else {
			got.WriteByte('0')
		}
	}
	assert.Equal(t, want, got.String())
	assert.Equal(t, "1", code.Content())
}

func TestEncodeMSIRejectsNonDigits(t *testing.T) {
	_, err := encodeMSI("12a")
	assert.Error(t, err)
}

func TestSymbolDataURL(t *testing.T) {
	sym, err := Encode(Request{Type: api.Code39, Value: "LABEL-1"})
	require.NoError(t, err)
	url, err := sym.DataURL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}
