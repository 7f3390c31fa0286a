package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantizeAngle(t *testing.T) {
	tests := []struct {
		angle float64
		want  int
	}{
		{0, 0},
		{44, 0},
		{45, 0},
		{46, 270},
		{90, 270},
		{134, 270},
		{135, 270},
		{136, 180},
		{180, 180},
		{-136, 180},
		{-180, 180},
		{-45, 90}, // -45 falls through the 0-bucket's open lower bound
		{-46, 90},
		{-90, 90},
		{-135, 180},
		{200, 90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuantizeAngle(tt.angle), "angle %v", tt.angle)
	}
}

func TestQuantizeAngleFixedPoints(t *testing.T) {
	// 0 and 180 are fixed points; 90 and 270 swap because the canvas and
	// the print runtime rotate in opposite directions, so quantization is
	// an involution on them, not the identity.
	for _, angle := range []int{0, 180} {
		assert.Equal(t, angle, QuantizeAngle(float64(angle)), "angle %d", angle)
	}
	assert.Equal(t, 270, QuantizeAngle(90))
	assert.Equal(t, 90, QuantizeAngle(270))
	for _, angle := range []int{0, 90, 180, 270} {
		once := QuantizeAngle(float64(angle))
		assert.Equal(t, angle, QuantizeAngle(float64(once)), "angle %d cycles back after two passes", angle)
	}
}

func TestPixels(t *testing.T) {
	assert.InDelta(t, 88.088012, Pixels(1, Inches), 1e-9)
	assert.InDelta(t, 37.795280352161, Pixels(1, Centimeters), 1e-9)
	assert.InDelta(t, 2*InchPx, Pixels(2, "unknown"), 1e-9)
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		hex  string
		want RGB
	}{
		{"#ffffff", RGB{255, 255, 255}},
		{"ffffff", RGB{255, 255, 255}},
		{"#000000", RGB{}},
		{"#FF8000", RGB{255, 128, 0}},
		{"#12345", RGB{}},
		{"not-a-color", RGB{}},
		{"", RGB{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HexToRGB(tt.hex), "hex %q", tt.hex)
	}
}
