package api

// BarcodeType is one of the symbologies the encoder and the print runtime
// both understand.
type BarcodeType string

const (
	Code128 BarcodeType = "CODE128"
	Code39  BarcodeType = "CODE39"
	UPC     BarcodeType = "UPC"
	EAN8    BarcodeType = "EAN8"
	EAN13   BarcodeType = "EAN13"
	MSI     BarcodeType = "MSI"
	ITF14   BarcodeType = "ITF14"
)

// BarcodeTypes lists every supported symbology.
var BarcodeTypes = []BarcodeType{Code128, Code39, UPC, EAN8, EAN13, MSI, ITF14}

// LabelFormat is the label's physical description: pixel size derived from a
// real-world size, an overall rotation, and a background color.
type LabelFormat struct {
	WidthPx    float64 `json:"width"`
	HeightPx   float64 `json:"height"`
	RealWidth  float64 `json:"realWidth"`
	RealHeight float64 `json:"realHeight"`
	Metric     Metric  `json:"metric"`
	Rotation   float64 `json:"rotation"`
	Background string  `json:"backgroundColor"`
}

// NewLabelFormat derives the pixel dimensions from a real-world size.
func NewLabelFormat(realWidth, realHeight float64, metric Metric) LabelFormat {
	return LabelFormat{
		WidthPx:    Pixels(realWidth, metric),
		HeightPx:   Pixels(realHeight, metric),
		RealWidth:  realWidth,
		RealHeight: realHeight,
		Metric:     metric,
		Background: "#ffffff",
	}
}

// Resize recomputes the pixel dimensions for a new real-world size, keeping
// rotation and background.
func (f LabelFormat) Resize(realWidth, realHeight float64, metric Metric) LabelFormat {
	f.RealWidth = realWidth
	f.RealHeight = realHeight
	f.Metric = metric
	f.WidthPx = Pixels(realWidth, metric)
	f.HeightPx = Pixels(realHeight, metric)
	return f
}

// BackgroundRGB returns the background as an RGB triple for emission.
func (f LabelFormat) BackgroundRGB() RGB {
	return HexToRGB(f.Background)
}

// Design is the persistable unit a template carries: the label format plus
// its element list.
type Design struct {
	Format   LabelFormat `json:"format"`
	Elements []Element   `json:"elements"`
}

// Template is a named design stored externally, with a raster thumbnail for
// gallery display.
type Template struct {
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Design    Design `json:"design"`
}
