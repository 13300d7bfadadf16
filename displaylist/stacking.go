package displaylist

import "github.com/gogpu/frame/geom"

// ScrollPolicy controls whether a stacking context scrolls with its
// enclosing scroll frame or stays fixed relative to the nearest reference
// frame.
type ScrollPolicy uint8

const (
	// ScrollPolicyScrollable moves the stacking context with its scroll frame.
	ScrollPolicyScrollable ScrollPolicy = iota

	// ScrollPolicyFixed pins the stacking context to the nearest enclosing
	// reference frame (CSS position: fixed).
	ScrollPolicyFixed
)

// String returns a human-readable name for the policy.
func (p ScrollPolicy) String() string {
	switch p {
	case ScrollPolicyScrollable:
		return "Scrollable"
	case ScrollPolicyFixed:
		return "Fixed"
	default:
		return unknownStr
	}
}

// MixBlendMode is the CSS mix-blend-mode of a stacking context.
type MixBlendMode uint8

// Mix blend modes, in CSS Compositing order.
const (
	MixBlendNormal MixBlendMode = iota
	MixBlendMultiply
	MixBlendScreen
	MixBlendOverlay
	MixBlendDarken
	MixBlendLighten
	MixBlendColorDodge
	MixBlendColorBurn
	MixBlendHardLight
	MixBlendSoftLight
	MixBlendDifference
	MixBlendExclusion
	MixBlendHue
	MixBlendSaturation
	MixBlendColor
	MixBlendLuminosity
)

var mixBlendModeNames = [...]string{
	MixBlendNormal:     "Normal",
	MixBlendMultiply:   "Multiply",
	MixBlendScreen:     "Screen",
	MixBlendOverlay:    "Overlay",
	MixBlendDarken:     "Darken",
	MixBlendLighten:    "Lighten",
	MixBlendColorDodge: "ColorDodge",
	MixBlendColorBurn:  "ColorBurn",
	MixBlendHardLight:  "HardLight",
	MixBlendSoftLight:  "SoftLight",
	MixBlendDifference: "Difference",
	MixBlendExclusion:  "Exclusion",
	MixBlendHue:        "Hue",
	MixBlendSaturation: "Saturation",
	MixBlendColor:      "Color",
	MixBlendLuminosity: "Luminosity",
}

// String returns the CSS-style name of the blend mode.
func (m MixBlendMode) String() string {
	if int(m) < len(mixBlendModeNames) {
		return mixBlendModeNames[m]
	}
	return unknownStr
}

// StackingContext groups a subtree for painting, optionally establishing a
// new coordinate space, blending and filters.
type StackingContext struct {
	ScrollPolicy ScrollPolicy

	// Transform, if non-nil, establishes a reference frame. It may be a
	// literal matrix or a binding resolved against the scene properties.
	Transform *PropertyBinding[geom.Transform]

	// Perspective, if non-nil, also establishes a reference frame.
	Perspective *geom.Transform

	MixBlendMode MixBlendMode

	// Filters indexes the pipeline's auxiliary filter list.
	Filters ItemRange
}

// EstablishesReferenceFrame reports whether the context carries a transform
// or a perspective matrix.
func (sc *StackingContext) EstablishesReferenceFrame() bool {
	return sc.Transform != nil || sc.Perspective != nil
}

// PropertyBindingKey names an animatable property whose value is supplied
// per frame through the scene properties.
type PropertyBindingKey uint64

// PropertyBinding is either a literal value or a key to be resolved against
// the scene properties at flatten time.
type PropertyBinding[T any] struct {
	value   T
	key     PropertyBindingKey
	isBound bool
}

// BindValue returns a binding holding a literal value.
func BindValue[T any](v T) PropertyBinding[T] {
	return PropertyBinding[T]{value: v}
}

// BindKey returns a binding resolved through key.
func BindKey[T any](key PropertyBindingKey) PropertyBinding[T] {
	return PropertyBinding[T]{key: key, isBound: true}
}

// Key returns the binding key and true, or false for literal values.
func (b PropertyBinding[T]) Key() (PropertyBindingKey, bool) {
	return b.key, b.isBound
}

// Value returns the literal value and true, or false for keyed bindings.
func (b PropertyBinding[T]) Value() (T, bool) {
	return b.value, !b.isBound
}

// FilterKind identifies a CSS filter function.
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

// String returns the filter function name.
func (k FilterKind) String() string {
	if int(k) < len(filterKindNames) {
		return filterKindNames[k]
	}
	return unknownStr
}

// FilterOp is one entry of a stacking context's filter chain. Amount holds
// the blur radius, the hue-rotate angle in degrees, or the function amount;
// opacity filters carry an animatable binding instead.
type FilterOp struct {
	Kind    FilterKind
	Amount  float64
	Opacity PropertyBinding[float64]
}

// Blur returns a blur filter with the given radius.
func Blur(radius float64) FilterOp { return FilterOp{Kind: FilterBlur, Amount: radius} }

// Brightness returns a brightness filter.
func Brightness(amount float64) FilterOp { return FilterOp{Kind: FilterBrightness, Amount: amount} }

// Contrast returns a contrast filter.
func Contrast(amount float64) FilterOp { return FilterOp{Kind: FilterContrast, Amount: amount} }

// Grayscale returns a grayscale filter.
func Grayscale(amount float64) FilterOp { return FilterOp{Kind: FilterGrayscale, Amount: amount} }

// HueRotate returns a hue-rotate filter for an angle in degrees.
func HueRotate(angle float64) FilterOp { return FilterOp{Kind: FilterHueRotate, Amount: angle} }

// Invert returns an invert filter.
func Invert(amount float64) FilterOp { return FilterOp{Kind: FilterInvert, Amount: amount} }

// Saturate returns a saturate filter.
func Saturate(amount float64) FilterOp { return FilterOp{Kind: FilterSaturate, Amount: amount} }

// Sepia returns a sepia filter.
func Sepia(amount float64) FilterOp { return FilterOp{Kind: FilterSepia, Amount: amount} }

// Opacity returns an opacity filter resolved through the binding.
func Opacity(value PropertyBinding[float64]) FilterOp {
	return FilterOp{Kind: FilterOpacity, Opacity: value}
}

const unknownStr = "Unknown"
