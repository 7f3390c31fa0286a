package api

import (
	"fmt"
	"regexp"
	"strconv"
)

// RGB is a color triple in the 0-255 range, the form the print runtime's
// color() and formato() statements expect.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

var hexColorRe = regexp.MustCompile(`^#?([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

// HexToRGB parses a #rrggbb color, with or without the leading hash.
// Malformed input yields black rather than an error; a label with a broken
// color is still printable.
func HexToRGB(hex string) RGB {
	m := hexColorRe.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}
	}
	r, _ := strconv.ParseInt(m[1], 16, 32)
	g, _ := strconv.ParseInt(m[2], 16, 32)
	b, _ := strconv.ParseInt(m[3], 16, 32)
	return RGB{R: int(r), G: int(g), B: int(b)}
}
