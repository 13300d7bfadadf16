package displaylist

import (
	"errors"

	"github.com/gogpu/frame/geom"
)

// Errors returned by Builder.Finalize.
var (
	// ErrUnbalancedStackingContext is returned when pushes and pops of
	// stacking contexts do not match.
	ErrUnbalancedStackingContext = errors.New("displaylist: unbalanced stacking context push/pop")

	// ErrMissingRootStackingContext is returned when the first item is not
	// a stacking context push.
	ErrMissingRootStackingContext = errors.New("displaylist: list does not start with a stacking context")
)

// Builder records a display list and its auxiliary lists for one pipeline.
//
// Items are attached to the scroll layer on top of the builder's scroll
// layer stack, which starts with the pipeline's root scroll layer.
//
// Builder is not safe for concurrent use.
type Builder struct {
	pipeline    PipelineID
	items       DisplayList
	aux         AuxiliaryLists
	scrollStack []ScrollLayerID
	nextClipID  uint32
	depth       int
	err         error
}

// NewBuilder creates a builder for the given pipeline.
func NewBuilder(pipeline PipelineID) *Builder {
	return &Builder{
		pipeline:    pipeline,
		items:       make(DisplayList, 0, 64),
		scrollStack: []ScrollLayerID{RootScrollLayer(pipeline)},
		nextClipID:  1,
	}
}

// Pipeline returns the pipeline the builder records for.
func (b *Builder) Pipeline() PipelineID {
	return b.pipeline
}

func (b *Builder) currentScrollLayer() ScrollLayerID {
	return b.scrollStack[len(b.scrollStack)-1]
}

func (b *Builder) push(rect geom.Rect, clip ClipRegion, item SpecificItem) {
	b.items = append(b.items, DisplayItem{
		Rect:          rect,
		Clip:          clip,
		ScrollLayerID: b.currentScrollLayer(),
		Item:          item,
	})
}

// NewClipRegion returns a clip region whose complex regions are stored in
// the builder's auxiliary lists.
func (b *Builder) NewClipRegion(main geom.Rect, complex []ComplexClipRegion, mask *ImageMask) ClipRegion {
	r := ItemRange{Start: len(b.aux.ComplexClipRegions), Length: len(complex)}
	b.aux.ComplexClipRegions = append(b.aux.ComplexClipRegions, complex...)
	if len(complex) == 0 {
		r = ItemRange{}
	}
	return ClipRegion{Main: main, Complex: r, ImageMask: mask}
}

// PushStackingContext opens a stacking context with the given bounds. Any
// filters are appended to the auxiliary lists and replace sc.Filters.
func (b *Builder) PushStackingContext(bounds geom.Rect, clip ClipRegion, sc StackingContext, filters ...FilterOp) {
	if len(filters) > 0 {
		sc.Filters = ItemRange{Start: len(b.aux.Filters), Length: len(filters)}
		b.aux.Filters = append(b.aux.Filters, filters...)
	}
	b.depth++
	b.push(bounds, clip, PushStackingContextItem{StackingContext: sc})
}

// PopStackingContext closes the innermost stacking context.
func (b *Builder) PopStackingContext() {
	if b.depth == 0 {
		b.err = ErrUnbalancedStackingContext
		return
	}
	b.depth--
	b.push(geom.Rect{}, ClipRegion{}, PopStackingContextItem{})
}

// DefineClip records a clip node and returns its id. Use PushScrollLayer to
// attach subsequent items to it.
func (b *Builder) DefineClip(contentSize geom.Size, clip ClipRegion) ScrollLayerID {
	id := ScrollLayerID{Pipeline: b.pipeline, Kind: ScrollLayerScrollable, Index: b.nextClipID}
	b.nextClipID++
	b.push(clip.Main, clip, ClipItem{ID: id, ContentSize: contentSize})
	return id
}

// PushScrollLayer attaches subsequent items to id.
func (b *Builder) PushScrollLayer(id ScrollLayerID) {
	b.scrollStack = append(b.scrollStack, id)
}

// PopScrollLayer restores the previous scroll layer. The root scroll layer
// is never popped.
func (b *Builder) PopScrollLayer() {
	if len(b.scrollStack) > 1 {
		b.scrollStack = b.scrollStack[:len(b.scrollStack)-1]
	}
}

// PushRect records a solid rectangle.
func (b *Builder) PushRect(rect geom.Rect, clip ClipRegion, color ColorF) {
	b.push(rect, clip, RectangleItem{Color: color})
}

// PushImage records an image repeated with the given stretch size and
// spacing.
func (b *Builder) PushImage(rect geom.Rect, clip ClipRegion, stretch, spacing geom.Size, rendering ImageRendering, key ImageKey) {
	b.push(rect, clip, ImageItem{
		ImageKey:       key,
		StretchSize:    stretch,
		TileSpacing:    spacing,
		ImageRendering: rendering,
	})
}

// PushYUVImage records a planar YUV image.
func (b *Builder) PushYUVImage(rect geom.Rect, clip ClipRegion, y, u, v ImageKey, space YUVColorSpace) {
	b.push(rect, clip, YUVImageItem{YImageKey: y, UImageKey: u, VImageKey: v, ColorSpace: space})
}

// PushText records a glyph run.
func (b *Builder) PushText(rect geom.Rect, clip ClipRegion, glyphs []GlyphInstance, font FontKey, color ColorF, size, blurRadius float64, opts *GlyphOptions) {
	r := ItemRange{Start: len(b.aux.Glyphs), Length: len(glyphs)}
	b.aux.Glyphs = append(b.aux.Glyphs, glyphs...)
	b.push(rect, clip, TextItem{
		FontKey:      font,
		Size:         size,
		BlurRadius:   blurRadius,
		Color:        color,
		Glyphs:       r,
		GlyphOptions: opts,
	})
}

// PushGradient records a linear gradient.
func (b *Builder) PushGradient(rect geom.Rect, clip ClipRegion, start, end geom.Point, stops []GradientStop, extend ExtendMode) {
	b.push(rect, clip, GradientItem{Gradient: Gradient{
		StartPoint: start,
		EndPoint:   end,
		Stops:      b.addStops(stops),
		ExtendMode: extend,
	}})
}

// PushRadialGradient records a radial gradient.
func (b *Builder) PushRadialGradient(rect geom.Rect, clip ClipRegion, g RadialGradient, stops []GradientStop) {
	g.Stops = b.addStops(stops)
	b.push(rect, clip, RadialGradientItem{Gradient: g})
}

func (b *Builder) addStops(stops []GradientStop) ItemRange {
	r := ItemRange{Start: len(b.aux.GradientStops), Length: len(stops)}
	b.aux.GradientStops = append(b.aux.GradientStops, stops...)
	return r
}

// PushBoxShadow records a box shadow.
func (b *Builder) PushBoxShadow(rect geom.Rect, clip ClipRegion, shadow BoxShadowItem) {
	b.push(rect, clip, shadow)
}

// PushBorder records a border.
func (b *Builder) PushBorder(rect geom.Rect, clip ClipRegion, border BorderItem) {
	b.push(rect, clip, border)
}

// PushIframe records an embedded pipeline.
func (b *Builder) PushIframe(rect geom.Rect, clip ClipRegion, pipeline PipelineID) {
	b.push(rect, clip, IframeItem{PipelineID: pipeline})
}

// PushWebGL records a WebGL context.
func (b *Builder) PushWebGL(rect geom.Rect, clip ClipRegion, ctx WebGLContextID) {
	b.push(rect, clip, WebGLItem{ContextID: ctx})
}

// Finalize returns the recorded list and its auxiliary lists. The builder
// must not be used afterwards.
func (b *Builder) Finalize() (DisplayList, *AuxiliaryLists, error) {
	if b.err != nil {
		return nil, nil, b.err
	}
	if b.depth != 0 {
		return nil, nil, ErrUnbalancedStackingContext
	}
	if _, _, ok := b.items.StartingStackingContext(); !ok {
		return nil, nil, ErrMissingRootStackingContext
	}
	aux := b.aux
	return b.items, &aux, nil
}
