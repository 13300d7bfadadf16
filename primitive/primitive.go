package primitive

import (
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
)

// Kind identifies the type of a primitive.
type Kind uint8

// Primitive kinds.
const (
	KindRectangle Kind = iota
	KindImage
	KindYUVImage
	KindText
	KindGradient
	KindRadialGradient
	KindBoxShadow
	KindBorder
	KindWebGL
)

var kindNames = [...]string{
	KindRectangle:      "Rectangle",
	KindImage:          "Image",
	KindYUVImage:       "YuvImage",
	KindText:           "Text",
	KindGradient:       "Gradient",
	KindRadialGradient: "RadialGradient",
	KindBoxShadow:      "BoxShadow",
	KindBorder:         "Border",
	KindWebGL:          "WebGL",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Primitive is the kind-specific payload of an emitted primitive. The set
// of implementations is closed.
type Primitive interface {
	Kind() Kind
	primitive()
}

// Rectangle is a solid colour fill.
type Rectangle struct {
	Color displaylist.ColorF
}

// Image draws an image or one tile of a tiled image.
type Image struct {
	Key         displaylist.ImageKey
	StretchSize geom.Size
	TileSpacing geom.Size
	Rendering   displaylist.ImageRendering

	// SubRect selects a part of the image in pixels; nil draws all of it.
	SubRect *geom.Rect

	// Tile is the tile drawn; nil for untiled images.
	Tile *displaylist.TileOffset
}

// YUVImage draws a planar YUV image.
type YUVImage struct {
	Y, U, V    displaylist.ImageKey
	ColorSpace displaylist.YUVColorSpace
}

// Text draws a glyph run from the pipeline's auxiliary glyph list.
type Text struct {
	Font       displaylist.FontKey
	Size       float64
	BlurRadius float64
	Color      displaylist.ColorF
	Glyphs     displaylist.ItemRange
	SubpixelAA bool
}

// Gradient draws a linear gradient.
type Gradient struct {
	Start, End geom.Point
	Stops      displaylist.ItemRange
	ExtendMode displaylist.ExtendMode
}

// RadialGradient draws a radial gradient.
type RadialGradient struct {
	StartCenter geom.Point
	StartRadius float64
	EndCenter   geom.Point
	EndRadius   float64
	Stops       displaylist.ItemRange
	ExtendMode  displaylist.ExtendMode
}

// BoxShadow draws a box shadow.
type BoxShadow struct {
	BoxBounds    geom.Rect
	Offset       geom.Point
	Color        displaylist.ColorF
	BlurRadius   float64
	SpreadRadius float64
	BorderRadius float64
	ClipMode     displaylist.BoxShadowClipMode
}

// Border draws a CSS border.
type Border struct {
	Border displaylist.BorderItem
}

// WebGL composites a WebGL context.
type WebGL struct {
	Context displaylist.WebGLContextID
}

// Kind implements Primitive.
func (Rectangle) Kind() Kind { return KindRectangle }

// Kind implements Primitive.
func (Image) Kind() Kind { return KindImage }

// Kind implements Primitive.
func (YUVImage) Kind() Kind { return KindYUVImage }

// Kind implements Primitive.
func (Text) Kind() Kind { return KindText }

// Kind implements Primitive.
func (Gradient) Kind() Kind { return KindGradient }

// Kind implements Primitive.
func (RadialGradient) Kind() Kind { return KindRadialGradient }

// Kind implements Primitive.
func (BoxShadow) Kind() Kind { return KindBoxShadow }

// Kind implements Primitive.
func (Border) Kind() Kind { return KindBorder }

// Kind implements Primitive.
func (WebGL) Kind() Kind { return KindWebGL }

func (Rectangle) primitive()      {}
func (Image) primitive()          {}
func (YUVImage) primitive()       {}
func (Text) primitive()           {}
func (Gradient) primitive()       {}
func (RadialGradient) primitive() {}
func (BoxShadow) primitive()      {}
func (Border) primitive()         {}
func (WebGL) primitive()          {}

// FlagKind identifies special handling of a primitive.
type FlagKind uint8

const (
	// FlagNone marks ordinary content.
	FlagNone FlagKind = iota

	// FlagScrollbar marks a scrollbar indicator positioned by the scroll
	// offset of its owner node.
	FlagScrollbar
)

// Flags carries special handling of a primitive.
type Flags struct {
	Kind FlagKind

	// ScrollbarOwner and ScrollbarRadius are set for scrollbars.
	ScrollbarOwner  displaylist.ScrollLayerID
	ScrollbarRadius float64
}

// NoFlags returns flags for ordinary content.
func NoFlags() Flags {
	return Flags{}
}

// Scrollbar returns flags marking a scrollbar for owner with rounded
// corners of the given radius.
func Scrollbar(owner displaylist.ScrollLayerID, radius float64) Flags {
	return Flags{Kind: FlagScrollbar, ScrollbarOwner: owner, ScrollbarRadius: radius}
}

// IsScrollbar reports whether the flags mark a scrollbar.
func (f Flags) IsScrollbar() bool {
	return f.Kind == FlagScrollbar
}

// Instance is one emitted primitive together with its placement.
type Instance struct {
	// ScrollLayerID is the spatial node the primitive is attached to.
	ScrollLayerID displaylist.ScrollLayerID

	// Pipeline is the pipeline whose auxiliary lists the primitive
	// references.
	Pipeline displaylist.PipelineID

	// Rect is the primitive's bounds relative to its stacking context.
	Rect geom.Rect
	Clip displaylist.ClipRegion

	// StackingContext indexes Builder.StackingContexts, or -1.
	StackingContext int

	Flags     Flags
	Primitive Primitive
}

// Kind returns the kind of the instance's primitive.
func (i *Instance) Kind() Kind {
	return i.Primitive.Kind()
}

// StackingContext records one pushed stacking context.
type StackingContext struct {
	Pipeline displaylist.PipelineID

	// Offset is the position relative to the enclosing reference frame.
	Offset geom.Point

	// IsPageRoot is set for the root stacking context of a pipeline.
	IsPageRoot bool

	Composite CompositeOps

	// Parent indexes the enclosing stacking context, or -1.
	Parent int

	// ReferenceFrame is the reference frame current when the context was
	// pushed.
	ReferenceFrame displaylist.ScrollLayerID
}
