package geom

import "math"

// DeviceSize is a size in device pixels.
type DeviceSize struct {
	W, H uint32
}

// IsEmpty reports whether either dimension is zero.
func (s DeviceSize) IsEmpty() bool {
	return s.W == 0 || s.H == 0
}

// DeviceRect is a rectangle in device pixels.
type DeviceRect struct {
	X, Y, W, H uint32
}

// ToLayout converts a device size to layout units, rounding to whole
// layout pixels.
func (s DeviceSize) ToLayout(devicePixelRatio float64) Size {
	return Size{
		W: roundDiv(float64(s.W), devicePixelRatio),
		H: roundDiv(float64(s.H), devicePixelRatio),
	}
}

func roundDiv(v, ratio float64) float64 {
	if ratio <= 0 {
		ratio = 1
	}
	return math.Round(v / ratio)
}
