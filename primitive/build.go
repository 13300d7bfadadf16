package primitive

import (
	"github.com/gogpu/frame/clipscroll"
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
	"github.com/gogpu/frame/resource"
)

// RenderedPrimitive is a visible primitive with its screen-space bounds.
type RenderedPrimitive struct {
	Instance

	// WorldRect is the clipped bounding box in layout pixels of the window.
	WorldRect geom.Rect
}

// ProfileCounters reports what Build did.
type ProfileCounters struct {
	TotalPrimitives   int
	VisiblePrimitives int
	CulledPrimitives  int

	Resources resource.ProfileCounters

	// OverdrawArea is the summed pairwise overlap of visible primitives.
	// It is only computed with Config.DebugOverdraw.
	OverdrawArea float64
}

// Frame is the result of building: the visible primitives in paint order.
type Frame struct {
	ID               resource.FrameID
	WindowSize       geom.DeviceSize
	DevicePixelRatio float64
	Background       *displaylist.ColorF

	Primitives       []RenderedPrimitive
	StackingContexts []StackingContext

	Counters ProfileCounters
}

// Build resolves every emitted primitive against the world transforms of
// tree, which must be up to date, and returns the visible ones. Resources
// for visible primitives are requested from rc under frameID.
func (b *Builder) Build(rc *resource.Cache, frameID resource.FrameID, tree *clipscroll.Tree, aux displaylist.AuxiliaryListsMap, devicePixelRatio float64) *Frame {
	if devicePixelRatio <= 0 {
		devicePixelRatio = 1
	}
	rc.BeginFrame(frameID)

	f := &Frame{
		ID:               frameID,
		WindowSize:       b.windowSize,
		DevicePixelRatio: devicePixelRatio,
		Background:       b.background,
		StackingContexts: b.stackingContexts,
		Primitives:       make([]RenderedPrimitive, 0, len(b.instances)),
	}
	screen := geom.RectFromSize(b.windowSize.ToLayout(devicePixelRatio))

	for i := range b.instances {
		inst := &b.instances[i]
		f.Counters.TotalPrimitives++

		world, ok := b.worldRect(inst, tree)
		if ok {
			world, ok = world.Intersection(screen)
		}
		if !ok || world.IsEmpty() {
			f.Counters.CulledPrimitives++
			continue
		}

		b.requestResources(rc, inst, aux, devicePixelRatio)
		f.Primitives = append(f.Primitives, RenderedPrimitive{Instance: *inst, WorldRect: world})
		f.Counters.VisiblePrimitives++
	}

	if b.cfg.DebugOverdraw {
		f.Counters.OverdrawArea = overdraw(f.Primitives)
	}
	f.Counters.Resources = rc.Counters()
	return f
}

// worldRect maps an instance to window space and clips it by its own clip
// and the combined viewport of its node.
func (b *Builder) worldRect(inst *Instance, tree *clipscroll.Tree) (geom.Rect, bool) {
	if inst.Flags.IsScrollbar() {
		return scrollbarRect(inst, tree)
	}
	node, ok := tree.Node(inst.ScrollLayerID)
	if !ok {
		return geom.Rect{}, false
	}

	var offset geom.Point
	if inst.StackingContext >= 0 {
		offset = b.stackingContexts[inst.StackingContext].Offset
	}
	local, ok := inst.Rect.Translate(offset).Intersection(inst.Clip.Main.Translate(offset))
	if !ok {
		return geom.Rect{}, false
	}
	world, ok := node.WorldContentTransform.TransformRect(local)
	if !ok {
		return geom.Rect{}, false
	}
	viewport, ok := node.WorldViewportTransform.TransformRect(node.CombinedLocalViewportRect)
	if !ok {
		return geom.Rect{}, false
	}
	return world.Intersection(viewport)
}

// scrollbarRect places a scrollbar thumb along the right edge of its
// owner's viewport. Owners whose content fits have no scrollbar.
func scrollbarRect(inst *Instance, tree *clipscroll.Tree) (geom.Rect, bool) {
	owner, ok := tree.Node(inst.Flags.ScrollbarOwner)
	if !ok {
		return geom.Rect{}, false
	}
	viewport := owner.WorldViewportRect
	if owner.ContentSize.H <= owner.LocalViewportRect.H || viewport.IsEmpty() {
		return geom.Rect{}, false
	}

	ratio := owner.LocalViewportRect.H / owner.ContentSize.H
	r := geom.Rect{
		X: viewport.Right() - inst.Rect.W - inst.Flags.ScrollbarRadius,
		Y: viewport.Y - owner.Scrolling.Offset.Y*ratio,
		W: inst.Rect.W,
		H: viewport.H * ratio,
	}
	return r.Intersection(viewport)
}

func (b *Builder) requestResources(rc *resource.Cache, inst *Instance, aux displaylist.AuxiliaryListsMap, devicePixelRatio float64) {
	switch p := inst.Primitive.(type) {
	case Image:
		rc.RequestImage(p.Key, p.Rendering, p.Tile)
	case YUVImage:
		for _, key := range [...]displaylist.ImageKey{p.Y, p.U, p.V} {
			rc.RequestImage(key, displaylist.ImageRenderingAuto, nil)
		}
	case Text:
		lists, ok := aux[inst.Pipeline]
		if !ok {
			return
		}
		rc.RequestGlyphs(p.Font, p.Size*devicePixelRatio, lists.GlyphsFor(p.Glyphs), p.SubpixelAA)
	}
}

func overdraw(prims []RenderedPrimitive) float64 {
	var area float64
	for i := range prims {
		for j := i + 1; j < len(prims); j++ {
			if r, ok := prims[i].WorldRect.Intersection(prims[j].WorldRect); ok {
				area += r.Area()
			}
		}
	}
	return area
}
