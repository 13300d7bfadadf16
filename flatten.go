package frame

import (
	"fmt"

	"github.com/gogpu/frame/clipscroll"
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
	"github.com/gogpu/frame/primitive"
	"github.com/gogpu/frame/resource"
	"github.com/gogpu/frame/scene"
)

// Scrollbar indicator added to page roots when scrollbars are enabled.
var (
	scrollbarRect   = geom.NewRect(0, 0, 10, 70)
	scrollbarColor  = displaylist.ColorF{R: 0.3, G: 0.3, B: 0.3, A: 0.6}
	scrollbarRadius = 4.0
)

// replacement redirects items attached to from so that they attach to to.
type replacement struct {
	from, to displaylist.ScrollLayerID
}

// flattenContext is the state threaded through one Create.
type flattenContext struct {
	scene    *scene.Scene
	builder  *primitive.Builder
	rc       *resource.Cache
	tree     *clipscroll.Tree
	epochs   map[displaylist.PipelineID]displaylist.Epoch
	auxLists displaylist.AuxiliaryListsMap

	replacements []replacement
}

// scrollLayerIDWithReplacement resolves id through the replacement stack.
// Only the most recent entry is consulted: an id redirected by an outer
// entry passes through unchanged while an inner entry is active.
func (c *flattenContext) scrollLayerIDWithReplacement(id displaylist.ScrollLayerID) displaylist.ScrollLayerID {
	if n := len(c.replacements); n > 0 && c.replacements[n-1].from == id {
		return c.replacements[n-1].to
	}
	return id
}

func (c *flattenContext) pushReplacement(from, to displaylist.ScrollLayerID) {
	c.replacements = append(c.replacements, replacement{from: from, to: to})
}

func (c *flattenContext) popReplacement() {
	c.replacements = c.replacements[:len(c.replacements)-1]
}

// auxiliaryLists returns the lists of a pipeline being flattened. Every
// pipeline with a display list has them, so a miss is a bug.
func (c *flattenContext) auxiliaryLists(pipeline displaylist.PipelineID) *displaylist.AuxiliaryLists {
	aux, ok := c.auxLists[pipeline]
	if !ok {
		panic(fmt.Sprintf("frame: no auxiliary lists for pipeline %v", pipeline))
	}
	return aux
}

// flattenStackingContext flattens the children of a stacking context whose
// push item has just been consumed. offset is the context's position
// relative to the current reference frame.
func (c *flattenContext) flattenStackingContext(
	traversal *displaylist.Traversal,
	pipeline displaylist.PipelineID,
	contextScrollID displaylist.ScrollLayerID,
	offset geom.Point,
	level int,
	bounds geom.Rect,
	sc *displaylist.StackingContext,
) {
	if traversal.CurrentStackingContextEmpty() {
		traversal.SkipCurrentStackingContext()
		Logger().Debug("skipped empty stacking context", "pipeline", pipeline, "level", level)
		return
	}

	ops := c.compositeOps(pipeline, sc)
	if ops.WillMakeInvisible() {
		traversal.SkipCurrentStackingContext()
		Logger().Debug("skipped invisible stacking context", "pipeline", pipeline, "level", level)
		return
	}

	scrollID := c.scrollLayerIDWithReplacement(contextScrollID)

	fixed := sc.ScrollPolicy == displaylist.ScrollPolicyFixed
	if fixed {
		c.pushReplacement(contextScrollID, c.builder.CurrentReferenceFrameID())
	}

	establishesFrame := sc.EstablishesReferenceFrame()
	if establishesFrame {
		transform := geom.Translation(offset.X, offset.Y, 0).
			PreTranslated(bounds.X, bounds.Y, 0).
			PreMul(c.scene.Properties.ResolveLayoutTransform(sc.Transform))
		if sc.Perspective != nil {
			transform = transform.PreMul(*sc.Perspective)
		}
		frameRect := geom.RectFromSize(bounds.Size())
		scrollID = c.builder.PushReferenceFrame(&scrollID, pipeline, frameRect, transform, c.tree)
		c.pushReplacement(contextScrollID, scrollID)
		offset = geom.Point{}
	} else {
		offset = offset.Add(bounds.Origin())
	}

	c.builder.PushStackingContext(offset, pipeline, level == 0, ops)

	if level == 0 {
		if p, ok := c.scene.PipelineMap[pipeline]; ok && p.BackgroundColor != nil {
			// The stacking context offset already carries the origin.
			rect := geom.RectFromSize(bounds.Size())
			c.builder.AddSolidRectangle(scrollID, rect, displaylist.SimpleClip(rect), *p.BackgroundColor, primitive.NoFlags())
		}
	}

	c.flattenItems(traversal, pipeline, offset, level)

	if level == 0 && c.builder.Config().EnableScrollbars {
		c.builder.AddSolidRectangle(scrollID, scrollbarRect, displaylist.SimpleClip(scrollbarRect), scrollbarColor,
			primitive.Scrollbar(c.tree.TopmostScrollLayerID(), scrollbarRadius))
	}

	if fixed {
		c.popReplacement()
	}
	if establishesFrame {
		c.popReplacement()
		c.builder.PopReferenceFrame()
	}
	c.builder.PopStackingContext()
}

// flattenItems consumes items up to and including the pop of the current
// stacking context.
func (c *flattenContext) flattenItems(traversal *displaylist.Traversal, pipeline displaylist.PipelineID, offset geom.Point, level int) {
	for item := traversal.Next(); item != nil; item = traversal.Next() {
		scrollID := c.scrollLayerIDWithReplacement(item.ScrollLayerID)

		switch it := item.Item.(type) {
		case displaylist.RectangleItem:
			c.flattenRectangle(pipeline, scrollID, item, it.Color)
		case displaylist.ImageItem:
			props := c.rc.ImageProperties(it.ImageKey)
			if props.Tiled() {
				c.decomposeImage(scrollID, item, it, props)
			} else {
				c.builder.AddImage(scrollID, item.Rect, item.Clip, it.StretchSize, it.TileSpacing,
					nil, it.ImageKey, it.ImageRendering, nil)
			}
		case displaylist.YUVImageItem:
			c.builder.AddYUVImage(scrollID, item.Rect, item.Clip, it.YImageKey, it.UImageKey, it.VImageKey, it.ColorSpace)
		case displaylist.TextItem:
			c.builder.AddText(scrollID, item.Rect, item.Clip, it.FontKey, it.Size, it.BlurRadius, it.Color, it.Glyphs, it.GlyphOptions)
		case displaylist.GradientItem:
			g := it.Gradient
			c.builder.AddGradient(scrollID, item.Rect, item.Clip, g.StartPoint, g.EndPoint, g.Stops, g.ExtendMode)
		case displaylist.RadialGradientItem:
			g := it.Gradient
			c.builder.AddRadialGradient(scrollID, item.Rect, item.Clip, g.StartCenter, g.StartRadius,
				g.EndCenter, g.EndRadius, g.Stops, g.ExtendMode)
		case displaylist.BoxShadowItem:
			c.builder.AddBoxShadow(scrollID, it.BoxBounds, item.Clip, it.Offset, it.Color,
				it.BlurRadius, it.SpreadRadius, it.BorderRadius, it.ClipMode)
		case displaylist.BorderItem:
			c.builder.AddBorder(scrollID, item.Rect, item.Clip, it)
		case displaylist.WebGLItem:
			c.builder.AddWebGLRectangle(scrollID, item.Rect, item.Clip, it.ContextID)
		case displaylist.PushStackingContextItem:
			sc := it.StackingContext
			c.flattenStackingContext(traversal, pipeline, item.ScrollLayerID, offset, level+1, item.Rect, &sc)
		case displaylist.IframeItem:
			c.flattenIframe(it.PipelineID, scrollID, item.Rect, offset)
		case displaylist.ClipItem:
			c.flattenClip(pipeline, scrollID, item, it, offset)
		case displaylist.PopStackingContextItem:
			return
		}
	}
}

// flattenClip adds a clip node positioned at the item's clip rectangle.
func (c *flattenContext) flattenClip(pipeline displaylist.PipelineID, parent displaylist.ScrollLayerID, item *displaylist.DisplayItem, clip displaylist.ClipItem, offset geom.Point) {
	rect := item.Clip.Main.Translate(offset)
	c.builder.AddClipScrollNode(clip.ID, parent, rect, clip.ContentSize, item.Clip, c.tree)
	Logger().Debug("clip node added", "pipeline", pipeline, "id", clip.ID, "rect", rect)
}

// flattenRectangle emits a solid rectangle. When the clip has a clean
// rectangular interior the part inside it is emitted with a simple clip
// and only the remaining fragments keep the full clip.
func (c *flattenContext) flattenRectangle(pipeline displaylist.PipelineID, scrollID displaylist.ScrollLayerID, item *displaylist.DisplayItem, color displaylist.ColorF) {
	inner, ok := c.clipIntersection(pipeline, item.Rect, item.Clip)
	if !ok {
		c.builder.AddSolidRectangle(scrollID, item.Rect, item.Clip, color, primitive.NoFlags())
		return
	}

	c.builder.AddSolidRectangle(scrollID, inner, displaylist.SimpleClip(item.Clip.Main), color, primitive.NoFlags())
	var fragments [4]geom.Rect
	for _, r := range geom.SubtractRect(fragments[:0], item.Rect, inner) {
		c.builder.AddSolidRectangle(scrollID, r, item.Clip, color, primitive.NoFlags())
	}
}

// clipIntersection returns the part of rect that lies fully inside clip
// without needing per-pixel clip evaluation. Image masks have no such
// part.
func (c *flattenContext) clipIntersection(pipeline displaylist.PipelineID, rect geom.Rect, clip displaylist.ClipRegion) (geom.Rect, bool) {
	if clip.ImageMask != nil {
		return geom.Rect{}, false
	}
	r, ok := clip.Main.Intersection(rect)
	if !ok {
		return geom.Rect{}, false
	}
	if clip.Complex.IsEmpty() {
		return r, true
	}
	for _, region := range c.auxiliaryLists(pipeline).ComplexClipRegionsFor(clip.Complex) {
		inner, ok := region.InnerRect()
		if !ok {
			return geom.Rect{}, false
		}
		if r, ok = r.Intersection(inner); !ok {
			return geom.Rect{}, false
		}
	}
	return r, true
}

// flattenIframe flattens the display list of an embedded pipeline under a
// reference frame positioned at the iframe's bounds. Iframes with an
// unknown pipeline or without a display list are omitted.
func (c *flattenContext) flattenIframe(pipelineID displaylist.PipelineID, parentID displaylist.ScrollLayerID, bounds geom.Rect, offset geom.Point) {
	pipeline, ok := c.scene.PipelineMap[pipelineID]
	if !ok {
		Logger().Debug("iframe omitted: unknown pipeline", "pipeline", pipelineID)
		return
	}
	list, ok := c.scene.DisplayLists[pipelineID]
	if !ok {
		Logger().Debug("iframe omitted: no display list", "pipeline", pipelineID)
		return
	}
	sc, scItem, ok := list.StartingStackingContext()
	if !ok {
		Logger().Warn("iframe omitted", "pipeline", pipelineID, "err", ErrNoStackingContext)
		return
	}

	c.epochs[pipelineID] = pipeline.Epoch

	origin := offset.Add(bounds.Origin())
	frameRect := geom.RectFromSize(bounds.Size())
	frameID := c.builder.PushReferenceFrame(&parentID, pipelineID, frameRect, geom.Translation(origin.X, origin.Y, 0), c.tree)

	iframeBounds := scItem.Rect
	scrollID := displaylist.RootScrollLayer(pipelineID)
	c.builder.AddClipScrollNode(scrollID, frameID, frameRect, iframeBounds.Size(), displaylist.SimpleClip(iframeBounds), c.tree)

	traversal := displaylist.NewTraversalSkippingFirst(list)
	c.flattenStackingContext(traversal, pipelineID, scrollID, geom.Point{}, 0, iframeBounds, sc)

	c.builder.PopReferenceFrame()
}
