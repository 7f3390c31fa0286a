package api

// Metric is the real-world unit a label is designed in.
type Metric string

const (
	Inches      Metric = "in"
	Centimeters Metric = "cm"
)

// Pixel densities of the design canvas. Labels are sized in real-world units
// and converted to a fixed-DPI pixel space that the print runtime shares.
const (
	InchPx = 88.088012
	CmPx   = 37.795280352161
)

// Pixels converts a real-world measurement to canvas pixels. Unknown metrics
// fall back to inches, which is the designer's default.
func Pixels(value float64, metric Metric) float64 {
	if metric == Centimeters {
		return value * CmPx
	}
	return value * InchPx
}

// QuantizeAngle collapses a continuous rotation (degrees) to the nearest
// cardinal angle understood by the print runtime.
//
// Buckets: (135,180] and [-180,-135] -> 180, (-45,45] -> 0, (45,135] -> 270,
// everything else -> 90.
func QuantizeAngle(angle float64) int {
	switch {
	case (angle > 135 && angle <= 180) || (angle >= -180 && angle <= -135):
		return 180
	case angle > -45 && angle <= 45:
		return 0
	case angle > 45 && angle <= 135:
		return 270
	default:
		return 90
	}
}
