package displaylist

import "github.com/gogpu/frame/geom"

// ItemKind identifies the variant of a display item.
type ItemKind uint8

// Item kinds.
const (
	KindPushStackingContext ItemKind = iota
	KindPopStackingContext
	KindClip
	KindRectangle
	KindImage
	KindYUVImage
	KindText
	KindGradient
	KindRadialGradient
	KindBoxShadow
	KindBorder
	KindIframe
	KindWebGL
)

var itemKindNames = [...]string{
	KindPushStackingContext: "PushStackingContext",
	KindPopStackingContext:  "PopStackingContext",
	KindClip:                "Clip",
	KindRectangle:           "Rectangle",
	KindImage:               "Image",
	KindYUVImage:            "YuvImage",
	KindText:                "Text",
	KindGradient:            "Gradient",
	KindRadialGradient:      "RadialGradient",
	KindBoxShadow:           "BoxShadow",
	KindBorder:              "Border",
	KindIframe:              "Iframe",
	KindWebGL:               "WebGL",
}

// String returns the variant name.
func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return unknownStr
}

// DisplayItem is one entry of a display list.
type DisplayItem struct {
	Rect          geom.Rect
	Clip          ClipRegion
	ScrollLayerID ScrollLayerID
	Item          SpecificItem
}

// Kind returns the variant of the item's payload.
func (d *DisplayItem) Kind() ItemKind {
	return d.Item.Kind()
}

// SpecificItem is the variant payload of a display item. The set of
// implementations is closed; all of them live in this package.
type SpecificItem interface {
	Kind() ItemKind
	specificItem()
}

// PushStackingContextItem opens a stacking context. The item's Rect is the
// context's bounds in its parent's coordinate space.
type PushStackingContextItem struct {
	StackingContext StackingContext
}

// PopStackingContextItem closes the innermost open stacking context.
type PopStackingContextItem struct{}

// ClipItem defines a new clip (and possibly scroll) node. The node's clip
// is the item's clip region; ContentSize is the scrollable extent.
type ClipItem struct {
	ID          ScrollLayerID
	ContentSize geom.Size
}

// RectangleItem is a solid colour rectangle.
type RectangleItem struct {
	Color ColorF
}

// ImageRendering selects the sampling filter for images.
type ImageRendering uint8

// Image rendering modes.
const (
	ImageRenderingAuto ImageRendering = iota
	ImageRenderingCrispEdges
	ImageRenderingPixelated
)

// ImageItem draws an image, repeated across the item's rect with the given
// stretch size and spacing between repetitions.
type ImageItem struct {
	ImageKey       ImageKey
	StretchSize    geom.Size
	TileSpacing    geom.Size
	ImageRendering ImageRendering
}

// YUVColorSpace selects the YUV to RGB conversion matrix.
type YUVColorSpace uint8

// YUV colour spaces.
const (
	YUVColorSpaceRec601 YUVColorSpace = iota
	YUVColorSpaceRec709
)

// YUVImageItem draws a planar YUV image.
type YUVImageItem struct {
	YImageKey  ImageKey
	UImageKey  ImageKey
	VImageKey  ImageKey
	ColorSpace YUVColorSpace
}

// GlyphOptions carries per-run rasterisation hints.
type GlyphOptions struct {
	SubpixelAA bool
}

// TextItem draws a pre-shaped glyph run.
type TextItem struct {
	FontKey      FontKey
	Size         float64
	BlurRadius   float64
	Color        ColorF
	Glyphs       ItemRange
	GlyphOptions *GlyphOptions
}

// ExtendMode controls gradient behaviour outside the [0, 1] stop range.
type ExtendMode uint8

// Gradient extend modes.
const (
	ExtendClamp ExtendMode = iota
	ExtendRepeat
)

// Gradient is a linear gradient between two points.
type Gradient struct {
	StartPoint geom.Point
	EndPoint   geom.Point
	Stops      ItemRange
	ExtendMode ExtendMode
}

// GradientItem draws a linear gradient.
type GradientItem struct {
	Gradient Gradient
}

// RadialGradient is a two-circle radial gradient.
type RadialGradient struct {
	StartCenter geom.Point
	StartRadius float64
	EndCenter   geom.Point
	EndRadius   float64
	Stops       ItemRange
	ExtendMode  ExtendMode
}

// RadialGradientItem draws a radial gradient.
type RadialGradientItem struct {
	Gradient RadialGradient
}

// BoxShadowClipMode selects whether a shadow is drawn outside or inside the
// box.
type BoxShadowClipMode uint8

// Box shadow clip modes.
const (
	BoxShadowClipNone BoxShadowClipMode = iota
	BoxShadowClipOutset
	BoxShadowClipInset
)

// BoxShadowItem draws a CSS box shadow around BoxBounds.
type BoxShadowItem struct {
	BoxBounds    geom.Rect
	Offset       geom.Point
	Color        ColorF
	BlurRadius   float64
	SpreadRadius float64
	BorderRadius float64
	ClipMode     BoxShadowClipMode
}

// BorderStyle is the CSS border style of one side.
type BorderStyle uint8

// Border styles.
const (
	BorderStyleNone BorderStyle = iota
	BorderStyleSolid
	BorderStyleDouble
	BorderStyleDotted
	BorderStyleDashed
	BorderStyleHidden
	BorderStyleGroove
	BorderStyleRidge
	BorderStyleInset
	BorderStyleOutset
)

// BorderSide is the colour and style of one border side.
type BorderSide struct {
	Color ColorF
	Style BorderStyle
}

// BorderItem draws a CSS border inside the item's rect.
type BorderItem struct {
	Widths geom.SideOffsets
	Left   BorderSide
	Right  BorderSide
	Top    BorderSide
	Bottom BorderSide
	Radius geom.BorderRadius
}

// IframeItem embeds another pipeline's display list at the item's rect.
type IframeItem struct {
	PipelineID PipelineID
}

// WebGLItem composites an offscreen WebGL context.
type WebGLItem struct {
	ContextID WebGLContextID
}

// Kind implements SpecificItem.
func (PushStackingContextItem) Kind() ItemKind { return KindPushStackingContext }

// Kind implements SpecificItem.
func (PopStackingContextItem) Kind() ItemKind { return KindPopStackingContext }

// Kind implements SpecificItem.
func (ClipItem) Kind() ItemKind { return KindClip }

// Kind implements SpecificItem.
func (RectangleItem) Kind() ItemKind { return KindRectangle }

// Kind implements SpecificItem.
func (ImageItem) Kind() ItemKind { return KindImage }

// Kind implements SpecificItem.
func (YUVImageItem) Kind() ItemKind { return KindYUVImage }

// Kind implements SpecificItem.
func (TextItem) Kind() ItemKind { return KindText }

// Kind implements SpecificItem.
func (GradientItem) Kind() ItemKind { return KindGradient }

// Kind implements SpecificItem.
func (RadialGradientItem) Kind() ItemKind { return KindRadialGradient }

// Kind implements SpecificItem.
func (BoxShadowItem) Kind() ItemKind { return KindBoxShadow }

// Kind implements SpecificItem.
func (BorderItem) Kind() ItemKind { return KindBorder }

// Kind implements SpecificItem.
func (IframeItem) Kind() ItemKind { return KindIframe }

// Kind implements SpecificItem.
func (WebGLItem) Kind() ItemKind { return KindWebGL }

func (PushStackingContextItem) specificItem() {}
func (PopStackingContextItem) specificItem()  {}
func (ClipItem) specificItem()                {}
func (RectangleItem) specificItem()           {}
func (ImageItem) specificItem()               {}
func (YUVImageItem) specificItem()            {}
func (TextItem) specificItem()                {}
func (GradientItem) specificItem()            {}
func (RadialGradientItem) specificItem()      {}
func (BoxShadowItem) specificItem()           {}
func (BorderItem) specificItem()              {}
func (IframeItem) specificItem()              {}
func (WebGLItem) specificItem()               {}
