// Package barcode renders label barcode symbols. Symbologies are encoded by
// the boombuler/barcode primitives where available; ITF14 check digits and
// guard-bar geometry, and the MSI bit pattern, are computed here because the
// primitive does not provide them.
package barcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	boombuler "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"

	"github.com/labelforge/labelforge/api"
)

// ErrEmptyValue is returned when there is nothing to encode. The editor
// surfaces it inline and adds no element to the scene.
var ErrEmptyValue = errors.New("barcode value is empty")

// Default module scale applied when a request leaves them unset, matching
// the print runtime's defaults.
const (
	DefaultModuleWidth  = 2
	DefaultModuleHeight = 100
)

// Request describes one symbol to render.
type Request struct {
	Type         api.BarcodeType
	Value        string
	ModuleWidth  float64
	ModuleHeight float64
	DisplayValue bool
}

// Symbol is a rendered barcode asset plus the caption the render layer may
// draw beneath it. For ITF14 the caption always carries the check-digited
// value and ShowCaption is forced on; the primitive never draws text itself.
type Symbol struct {
	Image       image.Image
	Width       int
	Height      int
	Caption     string
	ShowCaption bool
}

// PNG returns the symbol encoded as PNG bytes.
func (s *Symbol) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Image); err != nil {
		return nil, fmt.Errorf("encode symbol: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL returns the symbol as a PNG data URL for canvas preview.
func (s *Symbol) DataURL() (string, error) {
	data, err := s.PNG()
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Encode renders the requested symbol. An empty value or a value the chosen
// symbology cannot represent yields an error and no asset.
func Encode(req Request) (*Symbol, error) {
	if req.Value == "" {
		return nil, ErrEmptyValue
	}

	caption := req.Value
	showCaption := req.DisplayValue

	var (
		code boombuler.Barcode
		err  error
	)
	switch req.Type {
	case api.Code128:
		code, err = code128.Encode(req.Value)
	case api.Code39:
		code, err = code39.Encode(req.Value, false, false)
	case api.UPC:
		// UPC-A is EAN13 with a leading zero system digit.
		code, err = ean.Encode("0" + req.Value)
	case api.EAN8, api.EAN13:
		code, err = ean.Encode(req.Value)
	case api.MSI:
		code, err = encodeMSI(req.Value)
	case api.ITF14:
		var full string
		full, err = AppendCheckDigit(req.Value)
		if err == nil {
			code, err = twooffive.Encode(full, true)
		}
		caption = full
		showCaption = true
	default:
		return nil, fmt.Errorf("unsupported symbology %q", req.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", req.Type, err)
	}

	moduleWidth := int(req.ModuleWidth)
	if moduleWidth < 1 {
		moduleWidth = DefaultModuleWidth
	}
	height := int(req.ModuleHeight)
	if height < 1 {
		height = DefaultModuleHeight
	}
	width := code.Bounds().Dx() * moduleWidth

	scaled, err := boombuler.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("scale %s to %dx%d: %w", req.Type, width, height, err)
	}

	return &Symbol{
		Image:       scaled,
		Width:       width,
		Height:      height,
		Caption:     caption,
		ShowCaption: showCaption,
	}, nil
}
