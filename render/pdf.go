package render

import (
	"fmt"
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	marotoimage "github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/labelforge/labelforge/api"
)

// Canvas pixels per millimeter, the CSS reference pixel the canvas units are
// derived from.
const pxPerMM = 3.7795280352161

// PDF renders the design to a single-page PDF whose page matches the label's
// physical size.
func (r *Renderer) PDF(design api.Design) ([]byte, error) {
	pngBytes, err := r.PNG(design)
	if err != nil {
		return nil, err
	}

	widthMM := design.Format.WidthPx / pxPerMM
	heightMM := design.Format.HeightPx / pxPerMM

	cfg := config.NewBuilder().
		WithDimensions(widthMM, heightMM).
		WithLeftMargin(0).
		WithRightMargin(0).
		WithTopMargin(0).
		WithBottomMargin(0).
		Build()
	m := maroto.New(cfg)

	imageCol := col.New(12).Add(
		marotoimage.NewFromBytes(pngBytes, extension.Png, props.Rect{
			Percent: 100,
			Center:  true,
		}),
	)
	m.AddRows(row.New(heightMM).Add(imageCol))

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return document.GetBytes(), nil
}

// SavePDF writes the rendered PDF to path.
func (r *Renderer) SavePDF(design api.Design, path string) error {
	data, err := r.PDF(design)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
