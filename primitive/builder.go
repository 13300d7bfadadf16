// Package primitive collects the output of display-list flattening: the
// stacking contexts and primitives of one frame, attached to nodes of the
// spatial-node tree. Build resolves them against the tree's world
// transforms, culls what is not visible and requests the resources the
// visible primitives need.
//
// The Builder mirrors the order of the display lists it is fed: primitives
// are kept in paint order.
//
//	b := primitive.NewBuilder(windowSize, &background, primitive.DefaultConfig())
//	root := b.PushRoot(pipeline, viewport, content, tree)
//	b.PushStackingContext(geom.Point{}, pipeline, true, primitive.CompositeOps{})
//	b.AddSolidRectangle(root, rect, clip, color, primitive.NoFlags())
//	b.PopStackingContext()
//	frame := b.Build(rc, frameID, tree, aux, 1.0)
package primitive

import (
	"github.com/gogpu/frame/clipscroll"
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
)

// Builder accumulates the primitives of one frame.
type Builder struct {
	cfg        Config
	windowSize geom.DeviceSize
	background *displaylist.ColorF

	instances        []Instance
	stackingContexts []StackingContext

	scStack   []int
	rfStack   []displaylist.ScrollLayerID
	clipNodes int
}

// NewBuilder returns an empty builder for a window of the given size. The
// background, if non-nil, fills the window beneath all content.
func NewBuilder(windowSize geom.DeviceSize, background *displaylist.ColorF, cfg Config) *Builder {
	return &Builder{
		cfg:        cfg,
		windowSize: windowSize,
		background: background,
	}
}

// Config returns the builder configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Instances returns the emitted primitives in paint order.
func (b *Builder) Instances() []Instance {
	return b.instances
}

// StackingContexts returns every pushed stacking context in push order.
func (b *Builder) StackingContexts() []StackingContext {
	return b.stackingContexts
}

// ClipNodeCount returns the number of clip nodes added through the builder.
func (b *Builder) ClipNodeCount() int {
	return b.clipNodes
}

// PushRoot creates the root reference frame and root scroll node of the
// root pipeline and returns the scroll node's id.
func (b *Builder) PushRoot(pipeline displaylist.PipelineID, viewportSize, contentSize geom.Size, tree *clipscroll.Tree) displaylist.ScrollLayerID {
	viewport := geom.RectFromSize(viewportSize)
	rootFrame := b.PushReferenceFrame(nil, pipeline, viewport, geom.Identity(), tree)

	topmost := displaylist.RootScrollLayer(pipeline)
	tree.SetTopmostScrollLayerID(topmost)
	b.AddClipScrollNode(topmost, rootFrame, viewport, contentSize, displaylist.SimpleClip(viewport), tree)
	return topmost
}

// SetupViewportOffset positions the root reference frame at the inner
// rectangle of the window and widens the root clip to cover the whole
// window.
func (b *Builder) SetupViewportOffset(windowSize geom.DeviceSize, inner geom.DeviceRect, devicePixelRatio float64, tree *clipscroll.Tree) {
	offset := geom.DeviceSize{W: inner.X, H: inner.Y}.ToLayout(devicePixelRatio)
	outer := windowSize.ToLayout(devicePixelRatio)
	viewportClip := geom.NewRect(-offset.W, -offset.H, outer.W+2*offset.W, outer.H+2*offset.H)

	if root, ok := tree.Node(tree.RootReferenceFrameID()); ok {
		root.LocalTransform = geom.Translation(offset.W, offset.H, 0)
		root.LocalClipRect = viewportClip
	}
	if scroll, ok := tree.Node(tree.TopmostScrollLayerID()); ok {
		scroll.LocalClipRect = viewportClip
	}
}

// PushReferenceFrame adds a reference frame to the tree and makes it the
// current one. A nil parent creates the root reference frame.
func (b *Builder) PushReferenceFrame(parent *displaylist.ScrollLayerID, pipeline displaylist.PipelineID, rect geom.Rect, transform geom.Transform, tree *clipscroll.Tree) displaylist.ScrollLayerID {
	id := tree.AddReferenceFrame(pipeline, parent, rect, transform)
	b.rfStack = append(b.rfStack, id)
	return id
}

// PopReferenceFrame restores the previous reference frame.
func (b *Builder) PopReferenceFrame() {
	if len(b.rfStack) > 0 {
		b.rfStack = b.rfStack[:len(b.rfStack)-1]
	}
}

// CurrentReferenceFrameID returns the innermost pushed reference frame.
func (b *Builder) CurrentReferenceFrameID() displaylist.ScrollLayerID {
	if len(b.rfStack) == 0 {
		return displaylist.ScrollLayerID{}
	}
	return b.rfStack[len(b.rfStack)-1]
}

// AddClipScrollNode adds a clip node with the given viewport rectangle and
// content size under parent.
func (b *Builder) AddClipScrollNode(id, parent displaylist.ScrollLayerID, rect geom.Rect, contentSize geom.Size, clip displaylist.ClipRegion, tree *clipscroll.Tree) {
	tree.AddClipNode(id, parent, rect, contentSize, clip)
	b.clipNodes++
}

// PushStackingContext opens a stacking context positioned at offset in
// the current reference frame.
func (b *Builder) PushStackingContext(offset geom.Point, pipeline displaylist.PipelineID, isPageRoot bool, ops CompositeOps) {
	parent := -1
	if n := len(b.scStack); n > 0 {
		parent = b.scStack[n-1]
	}
	b.stackingContexts = append(b.stackingContexts, StackingContext{
		Pipeline:       pipeline,
		Offset:         offset,
		IsPageRoot:     isPageRoot,
		Composite:      ops,
		Parent:         parent,
		ReferenceFrame: b.CurrentReferenceFrameID(),
	})
	b.scStack = append(b.scStack, len(b.stackingContexts)-1)
}

// PopStackingContext closes the innermost stacking context.
func (b *Builder) PopStackingContext() {
	if len(b.scStack) > 0 {
		b.scStack = b.scStack[:len(b.scStack)-1]
	}
}

func (b *Builder) add(id displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, flags Flags, prim Primitive) {
	sc := -1
	pipeline := id.Pipeline
	if n := len(b.scStack); n > 0 {
		sc = b.scStack[n-1]
		pipeline = b.stackingContexts[sc].Pipeline
	}
	b.instances = append(b.instances, Instance{
		ScrollLayerID:   id,
		Pipeline:        pipeline,
		Rect:            rect,
		Clip:            clip,
		StackingContext: sc,
		Flags:           flags,
		Primitive:       prim,
	})
}

// AddSolidRectangle adds a solid colour rectangle. Fully transparent and
// zero-area rectangles are dropped.
func (b *Builder) AddSolidRectangle(id displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, color displaylist.ColorF, flags Flags) {
	if color.A <= 0 || rect.IsEmpty() {
		return
	}
	b.add(id, rect, clip, flags, Rectangle{Color: color})
}

// AddImage adds an image or one tile of a tiled image.
func (b *Builder) AddImage(id displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, stretch, spacing geom.Size, subRect *geom.Rect, key displaylist.ImageKey, rendering displaylist.ImageRendering, tile *displaylist.TileOffset) {
	b.add(id, rect, clip, NoFlags(), Image{
		Key:         key,
		StretchSize: stretch,
		TileSpacing: spacing,
		Rendering:   rendering,
		SubRect:     subRect,
		Tile:        tile,
	})
}

// AddYUVImage adds a planar YUV image.
func (b *Builder) AddYUVImage(id displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, y, u, v displaylist.ImageKey, space displaylist.YUVColorSpace) {
	b.add(id, rect, clip, NoFlags(), YUVImage{Y: y, U: u, V: v, ColorSpace: space})
}

// AddText adds a glyph run. Runs without glyphs or with a non-positive
// size are dropped.
func (b *Builder) AddText(id displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, font displaylist.FontKey, size, blurRadius float64, color displaylist.ColorF, glyphs displaylist.ItemRange, opts *displaylist.GlyphOptions) {
	if size <= 0 || glyphs.IsEmpty() {
		return
	}
	subpixel := b.cfg.EnableSubpixelAA && (opts == nil || opts.SubpixelAA)
	// Blurred text is rasterized without subpixel positioning.
	if blurRadius > 0 {
		subpixel = false
	}
	b.add(id, rect, clip, NoFlags(), Text{
		Font:       font,
		Size:       size,
		BlurRadius: blurRadius,
		Color:      color,
		Glyphs:     glyphs,
		SubpixelAA: subpixel,
	})
}

// AddGradient adds a linear gradient.
func (b *Builder) AddGradient(id displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, start, end geom.Point, stops displaylist.ItemRange, extend displaylist.ExtendMode) {
	b.add(id, rect, clip, NoFlags(), Gradient{Start: start, End: end, Stops: stops, ExtendMode: extend})
}

// AddRadialGradient adds a radial gradient.
func (b *Builder) AddRadialGradient(id displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, startCenter geom.Point, startRadius float64, endCenter geom.Point, endRadius float64, stops displaylist.ItemRange, extend displaylist.ExtendMode) {
	b.add(id, rect, clip, NoFlags(), RadialGradient{
		StartCenter: startCenter,
		StartRadius: startRadius,
		EndCenter:   endCenter,
		EndRadius:   endRadius,
		Stops:       stops,
		ExtendMode:  extend,
	})
}

// AddBoxShadow adds a box shadow. The primitive covers the area the shadow
// can paint: the offset box grown by spread and blur for outset shadows,
// the box itself for inset ones. Transparent shadows are dropped.
func (b *Builder) AddBoxShadow(id displaylist.ScrollLayerID, boxBounds geom.Rect, clip displaylist.ClipRegion, offset geom.Point, color displaylist.ColorF, blurRadius, spreadRadius, borderRadius float64, clipMode displaylist.BoxShadowClipMode) {
	if color.A <= 0 {
		return
	}
	rect := boxBounds
	if clipMode != displaylist.BoxShadowClipInset {
		grow := spreadRadius + blurRadius
		rect = boxBounds.Translate(offset).Inflate(grow, grow)
	}
	b.add(id, rect, clip, NoFlags(), BoxShadow{
		BoxBounds:    boxBounds,
		Offset:       offset,
		Color:        color,
		BlurRadius:   blurRadius,
		SpreadRadius: spreadRadius,
		BorderRadius: borderRadius,
		ClipMode:     clipMode,
	})
}

// AddBorder adds a border. Borders without width are dropped.
func (b *Builder) AddBorder(id displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, border displaylist.BorderItem) {
	if border.Widths == (geom.SideOffsets{}) {
		return
	}
	b.add(id, rect, clip, NoFlags(), Border{Border: border})
}

// AddWebGLRectangle adds a WebGL context.
func (b *Builder) AddWebGLRectangle(id displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, ctx displaylist.WebGLContextID) {
	b.add(id, rect, clip, NoFlags(), WebGL{Context: ctx})
}
