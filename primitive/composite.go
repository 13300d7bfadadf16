package primitive

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/frame/displaylist"
)

// AxisDirection selects the axis of a separable filter pass.
type AxisDirection uint8

const (
	AxisHorizontal AxisDirection = iota
	AxisVertical
)

// String returns the axis name.
func (a AxisDirection) String() string {
	if a == AxisVertical {
		return "Vertical"
	}
	return "Horizontal"
}

// FilterKind identifies a low-level filter pass.
type FilterKind uint8

// Filter kinds.
const (
	FilterBlur FilterKind = iota
	FilterBrightness
	FilterContrast
	FilterGrayscale
	FilterHueRotate
	FilterInvert
	FilterOpacity
	FilterSaturate
	FilterSepia
)

var filterKindNames = [...]string{
	FilterBlur:       "Blur",
	FilterBrightness: "Brightness",
	FilterContrast:   "Contrast",
	FilterGrayscale:  "Grayscale",
	FilterHueRotate:  "HueRotate",
	FilterInvert:     "Invert",
	FilterOpacity:    "Opacity",
	FilterSaturate:   "Saturate",
	FilterSepia:      "Sepia",
}

// String returns the filter name.
func (k FilterKind) String() string {
	if int(k) < len(filterKindNames) {
		return filterKindNames[k]
	}
	return "Unknown"
}

// AngleToFixed converts hue-rotate angles in degrees to the fixed-point
// representation of LowLevelFilterOp.Angle.
const AngleToFixed = 65535.0

// LowLevelFilterOp is one pass of a stacking context's filter chain in the
// form the compositor consumes. Amounts are quantized to 26.6 fixed point
// so that equal filters compare equal.
type LowLevelFilterOp struct {
	Kind FilterKind

	// Amount is the blur radius or the function amount.
	Amount fixed.Int26_6

	// Axis is the direction of a blur pass.
	Axis AxisDirection

	// Angle is the hue rotation in degrees scaled by AngleToFixed.
	Angle int32
}

// ToFixed quantizes a float amount to the nearest 1/64.
func ToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// CompositeOps describes how a stacking context is composited into its
// parent.
type CompositeOps struct {
	Filters []LowLevelFilterOp

	// MixBlendMode is nil for normal blending.
	MixBlendMode *displaylist.MixBlendMode
}

// NewCompositeOps returns composite operations from a filter chain and an
// optional blend mode.
func NewCompositeOps(filters []LowLevelFilterOp, mixBlend *displaylist.MixBlendMode) CompositeOps {
	return CompositeOps{Filters: filters, MixBlendMode: mixBlend}
}

// IsEmpty reports whether the stacking context composites without any
// effect.
func (c CompositeOps) IsEmpty() bool {
	return len(c.Filters) == 0 && c.MixBlendMode == nil
}

// WillMakeInvisible reports whether the operations hide the content
// entirely: any opacity pass with zero amount does.
func (c CompositeOps) WillMakeInvisible() bool {
	for _, f := range c.Filters {
		if f.Kind == FilterOpacity && f.Amount == 0 {
			return true
		}
	}
	return false
}
