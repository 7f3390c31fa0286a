// Package render rasterizes a label design to PNG and PDF. The raster is a
// faithful preview of the printed label: rotations are quantized the same way
// the print program does, and ITF14 symbols carry their bearer-bar frame.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/flanksource/commons/logger"
	"github.com/fogleman/gg"

	"github.com/labelforge/labelforge/api"
	"github.com/labelforge/labelforge/barcode"
)

const captionSize = 14

// Renderer turns designs into raster previews. It owns the font cache and
// the HTTP client used to pull remote images, so one instance serves a
// whole session.
type Renderer struct {
	fonts  *FontCache
	client *http.Client
}

// New returns a renderer resolving font files from fontDir.
func New(fontDir string) *Renderer {
	return &Renderer{
		fonts:  NewFontCache(fontDir),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Render rasterizes the design at its native pixel size. Elements that fail
// to draw are skipped with a warning; one broken image never blanks the
// whole label.
func (r *Renderer) Render(design api.Design) (image.Image, error) {
	format := design.Format
	w, h := int(format.WidthPx), int(format.HeightPx)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("label size %dx%d is not drawable", w, h)
	}

	dc := gg.NewContext(w, h)
	bg := format.BackgroundRGB()
	dc.SetRGB255(bg.R, bg.G, bg.B)
	dc.Clear()

	for _, el := range design.Elements {
		if err := r.drawElement(dc, el); err != nil {
			logger.Warnf("skipping element %s: %v", el.ID, err)
		}
	}
	return dc.Image(), nil
}

// PNG renders the design and encodes it as PNG bytes.
func (r *Renderer) PNG(design api.Design) ([]byte, error) {
	img, err := r.Render(design)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawElement(dc *gg.Context, el api.Element) error {
	if angle := api.QuantizeAngle(el.Geometry.Rotation); angle != 0 {
		cx, cy := el.Geometry.Center()
		dc.Push()
		defer dc.Pop()
		dc.RotateAbout(gg.Radians(float64(angle)), cx, cy)
	}

	switch {
	case el.IsTextual():
		return r.drawText(dc, el)
	case el.Kind == api.KindImage:
		return r.drawImage(dc, el)
	case el.Kind == api.KindBarcode:
		return r.drawBarcode(dc, el)
	}
	return fmt.Errorf("unknown element kind %q", el.Kind)
}

func (r *Renderer) drawText(dc *gg.Context, el api.Element) error {
	if el.Text == nil {
		return fmt.Errorf("text element has no text state")
	}
	st := el.Text

	file := st.FontFile
	if file == "" {
		file = api.DefaultFontFile
	}
	dc.SetFontFace(r.fonts.Face(file, st.FontSize))

	rgb := api.HexToRGB(st.Fill)
	dc.SetRGB255(rgb.R, rgb.G, rgb.B)

	align := gg.AlignLeft
	switch st.Align {
	case api.AlignCenter:
		align = gg.AlignCenter
	case api.AlignRight:
		align = gg.AlignRight
	}

	dc.DrawStringWrapped(st.Text, el.Geometry.X, el.Geometry.Y, 0, 0, el.Geometry.Width, 1.2, align)
	return nil
}

func (r *Renderer) drawImage(dc *gg.Context, el api.Element) error {
	if el.Image == nil || el.Image.URL == "" {
		return fmt.Errorf("image element has no source")
	}
	img, err := r.fetchImage(el.Image.URL)
	if err != nil {
		return err
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("image source is empty")
	}

	g := el.Geometry
	dc.Push()
	dc.Translate(g.X, g.Y)
	dc.Scale(g.Width/float64(b.Dx()), g.Height/float64(b.Dy()))
	dc.DrawImage(img, 0, 0)
	dc.Pop()
	return nil
}

func (r *Renderer) drawBarcode(dc *gg.Context, el api.Element) error {
	if el.Barcode == nil {
		return fmt.Errorf("barcode element has no barcode state")
	}
	sym, err := barcode.Encode(barcode.Request{
		Type:         el.Barcode.Type,
		Value:        el.Barcode.Value,
		ModuleWidth:  el.Barcode.ModuleWidth,
		ModuleHeight: el.Barcode.ModuleHeight,
		DisplayValue: el.Barcode.DisplayValue,
	})
	if err != nil {
		return err
	}

	g := el.Geometry
	width := g.Width
	if width <= 0 {
		width = float64(sym.Width)
	}
	height := g.Height
	if height <= 0 {
		height = float64(sym.Height)
	}

	b := sym.Image.Bounds()
	dc.Push()
	dc.Translate(g.X, g.Y)
	dc.Scale(width/float64(b.Dx()), height/float64(b.Dy()))
	dc.DrawImage(sym.Image, 0, 0)
	dc.Pop()

	captionY := g.Y + height

	if el.Barcode.Type == api.ITF14 {
		dc.SetRGB(0, 0, 0)
		for _, bar := range barcode.GuardBars(barcode.Rect{X: g.X, Y: g.Y, W: width, H: height}) {
			dc.DrawRectangle(bar.X, bar.Y, bar.W, bar.H)
			dc.Fill()
		}
		captionY += barcode.GuardOffset + barcode.GuardThickness
	}

	if sym.ShowCaption {
		dc.SetFontFace(r.fonts.Face(api.DefaultFontFile, captionSize))
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(sym.Caption, g.X+width/2, captionY+2, 0.5, 1)
	}
	return nil
}

// fetchImage resolves an element image source: data URLs are decoded inline,
// anything else is fetched over HTTP.
func (r *Renderer) fetchImage(url string) (image.Image, error) {
	if strings.HasPrefix(url, "data:") {
		idx := strings.Index(url, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		raw, err := base64.StdEncoding.DecodeString(url[idx+1:])
		if err != nil {
			return nil, fmt.Errorf("decode data URL: %w", err)
		}
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode embedded image: %w", err)
		}
		return img, nil
	}

	resp, err := r.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode fetched image: %w", err)
	}
	return img, nil
}
