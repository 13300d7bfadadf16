package clipscroll

import (
	"math"

	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
)

// NodeKind distinguishes the two node variants of the tree.
type NodeKind uint8

const (
	// KindReferenceFrame nodes establish a new coordinate space through a
	// transform. They never scroll.
	KindReferenceFrame NodeKind = iota

	// KindClip nodes clip their descendants and scroll them when the
	// content is larger than the viewport.
	KindClip
)

// String returns a human-readable name for the kind.
func (k NodeKind) String() string {
	switch k {
	case KindReferenceFrame:
		return "ReferenceFrame"
	case KindClip:
		return "Clip"
	default:
		return "Unknown"
	}
}

// ScrollingState is the user-controlled part of a node that survives tree
// rebuilds.
type ScrollingState struct {
	// Offset is the content translation; it is non-positive when the node
	// is scrolled within its bounds.
	Offset geom.Point

	// BouncingBack is set while an overscrolled node springs back.
	BouncingBack bool

	// StartedBouncingBack is set once a gesture ended in overscroll.
	StartedBouncingBack bool

	// ShouldHandoffScroll is set when a gesture starts on an overscrolled
	// nested node; further movement goes to the topmost scroll node.
	ShouldHandoffScroll bool

	spring spring
}

// Node is one spatial node.
type Node struct {
	ID       displaylist.ScrollLayerID
	Pipeline displaylist.PipelineID
	Kind     NodeKind

	// Parent is valid only when HasParent is set; the root reference frame
	// has no parent.
	Parent    displaylist.ScrollLayerID
	HasParent bool
	Children  []displaylist.ScrollLayerID

	// LocalViewportRect is the node's viewport in the coordinate space of
	// its parent reference frame.
	LocalViewportRect geom.Rect

	// LocalClipRect restricts what the node shows. It starts out equal to
	// the viewport.
	LocalClipRect geom.Rect

	ContentSize geom.Size

	// Clip is the full clip region of clip nodes.
	Clip displaylist.ClipRegion

	// LocalTransform is the reference frame transform; identity for clip
	// nodes.
	LocalTransform geom.Transform

	Scrolling ScrollingState

	// Computed by Tree.UpdateAllNodeTransforms.
	WorldViewportTransform    geom.Transform
	WorldContentTransform     geom.Transform
	CombinedLocalViewportRect geom.Rect
	WorldViewportRect         geom.Rect
}

func newReferenceFrame(id displaylist.ScrollLayerID, parent *displaylist.ScrollLayerID, rect geom.Rect, transform geom.Transform) *Node {
	n := &Node{
		ID:                id,
		Pipeline:          id.Pipeline,
		Kind:              KindReferenceFrame,
		LocalViewportRect: rect,
		LocalClipRect:     rect,
		ContentSize:       rect.Size(),
		Clip:              displaylist.SimpleClip(rect),
		LocalTransform:    transform,
	}
	n.setParent(parent)
	return n
}

func newClipNode(id displaylist.ScrollLayerID, parent displaylist.ScrollLayerID, rect geom.Rect, contentSize geom.Size, clip displaylist.ClipRegion) *Node {
	n := &Node{
		ID:                id,
		Pipeline:          id.Pipeline,
		Kind:              KindClip,
		LocalViewportRect: rect,
		LocalClipRect:     rect,
		ContentSize:       contentSize,
		Clip:              clip,
		LocalTransform:    geom.Identity(),
	}
	n.setParent(&parent)
	return n
}

func (n *Node) setParent(parent *displaylist.ScrollLayerID) {
	if parent != nil {
		n.Parent = *parent
		n.HasParent = true
	}
}

// ScrollableWidth returns how far the content can scroll horizontally.
func (n *Node) ScrollableWidth() float64 {
	return n.ContentSize.W - n.LocalViewportRect.W
}

// ScrollableHeight returns how far the content can scroll vertically.
func (n *Node) ScrollableHeight() float64 {
	return n.ContentSize.H - n.LocalViewportRect.H
}

// overscroll returns how far the offset lies outside the scrollable range
// on each axis, signed towards the range.
func (n *Node) overscroll() geom.Point {
	return geom.Point{
		X: overscrollAxis(n.Scrolling.Offset.X, n.ScrollableWidth()),
		Y: overscrollAxis(n.Scrolling.Offset.Y, n.ScrollableHeight()),
	}
}

func overscrollAxis(offset, scrollable float64) float64 {
	switch {
	case offset > 0:
		return -offset
	case offset < -scrollable:
		return -scrollable - offset
	default:
		return 0
	}
}

// clampedOffset returns the offset limited to the scrollable range.
func (n *Node) clampedOffset() geom.Point {
	return geom.Point{
		X: clampAxis(n.Scrolling.Offset.X, n.ScrollableWidth()),
		Y: clampAxis(n.Scrolling.Offset.Y, n.ScrollableHeight()),
	}
}

func clampAxis(offset, scrollable float64) float64 {
	return math.Min(0, math.Max(offset, -math.Max(scrollable, 0)))
}

// finalize installs the scrolling state carried over from the previous
// tree, clamped to the new content bounds unless the node is bouncing.
func (n *Node) finalize(state ScrollingState) {
	n.Scrolling = state
	if !state.BouncingBack {
		n.Scrolling.Offset = n.clampedOffset()
	}
}

// setScrollOrigin scrolls the node so that origin is at the viewport's
// top-left corner and reports whether the offset changed.
func (n *Node) setScrollOrigin(origin geom.Point) bool {
	sw, sh := n.ScrollableWidth(), n.ScrollableHeight()
	if sw <= 0 && sh <= 0 {
		return false
	}
	offset := geom.Point{
		X: math.Round(math.Min(0, math.Max(-origin.X, -sw))),
		Y: math.Round(math.Min(0, math.Max(-origin.Y, -sh))),
	}
	if offset == n.Scrolling.Offset {
		return false
	}
	n.Scrolling.Offset = offset
	n.Scrolling.BouncingBack = false
	n.Scrolling.StartedBouncingBack = false
	return true
}

// scroll applies a scroll event to the node and reports whether anything
// changed.
func (n *Node) scroll(loc ScrollLocation, phase ScrollEventPhase, overscrollAllowed bool) bool {
	if n.Scrolling.StartedBouncingBack && phase == PhaseMomentum {
		return false
	}

	var delta geom.Point
	switch loc.Kind {
	case ScrollToStart:
		if math.Round(n.Scrolling.Offset.Y) >= 0 {
			return false
		}
		n.Scrolling.Offset.Y = 0
		return true
	case ScrollToEnd:
		end := n.LocalViewportRect.H - n.ContentSize.H
		if math.Round(n.Scrolling.Offset.Y) <= end {
			return false
		}
		n.Scrolling.Offset.Y = end
		return true
	default:
		delta = loc.Delta
	}

	over := n.overscroll()
	overscrolling := overscrollAllowed && (over.X != 0 || over.Y != 0)
	if overscrolling {
		// Resistance grows with the distance already overscrolled.
		if over.X != 0 {
			delta.X /= math.Abs(over.X)
		}
		if over.Y != 0 {
			delta.Y /= math.Abs(over.Y)
		}
	}

	sw, sh := n.ScrollableWidth(), n.ScrollableHeight()
	unscrollable := sw <= 0 && sh <= 0
	original := n.Scrolling.Offset

	if sw > 0 {
		n.Scrolling.Offset.X += delta.X
		if unscrollable || !overscrollAllowed {
			n.Scrolling.Offset.X = math.Round(clampAxis(n.Scrolling.Offset.X, sw))
		}
	}
	if sh > 0 {
		n.Scrolling.Offset.Y += delta.Y
		if unscrollable || !overscrollAllowed {
			n.Scrolling.Offset.Y = math.Round(clampAxis(n.Scrolling.Offset.Y, sh))
		}
	}

	switch {
	case phase == PhaseStart || phase == PhaseMove:
		n.Scrolling.StartedBouncingBack = false
	case overscrolling && ((math.Abs(delta.X) < 1 && math.Abs(delta.Y) < 1) || phase == PhaseEnd):
		n.Scrolling.StartedBouncingBack = true
		n.Scrolling.BouncingBack = true
		n.Scrolling.spring = springAt(n.Scrolling.Offset)
		n.Scrolling.spring.dest = n.clampedOffset()
	}

	return n.Scrolling.Offset != original || n.Scrolling.StartedBouncingBack
}

// tickBounce advances the bounce-back animation by one step.
func (n *Node) tickBounce() {
	if !n.Scrolling.BouncingBack {
		return
	}
	finished := n.Scrolling.spring.animate()
	n.Scrolling.Offset = n.Scrolling.spring.cur
	if finished {
		n.Scrolling.BouncingBack = false
	}
}

// updateTransform computes the node's world transforms and combined
// viewport from its parent reference frame.
func (n *Node) updateTransform(parentTransform geom.Transform, parentViewport geom.Rect, parentScroll, accumulatedScroll geom.Point) {
	inv, ok := n.LocalTransform.Inverse()
	if !ok {
		n.CombinedLocalViewportRect = geom.Rect{}
		n.WorldViewportRect = geom.Rect{}
		return
	}

	// Move the parent's combined viewport into this node's space.
	local, ok := inv.PreTranslated(-parentScroll.X, -parentScroll.Y, 0).TransformRect(parentViewport)
	if !ok {
		local = geom.Rect{}
	}
	switch n.Kind {
	case KindClip:
		r, ok := local.Intersection(n.LocalClipRect)
		if !ok {
			r = geom.Rect{}
		}
		n.CombinedLocalViewportRect = r
	default:
		n.CombinedLocalViewportRect = local
	}

	n.WorldViewportTransform = parentTransform.
		PreTranslated(accumulatedScroll.X, accumulatedScroll.Y, 0).
		PreMul(n.LocalTransform)
	n.WorldContentTransform = n.WorldViewportTransform.
		PreTranslated(n.Scrolling.Offset.X, n.Scrolling.Offset.Y, 0)

	if r, ok := n.WorldViewportTransform.TransformRect(n.LocalViewportRect); ok {
		n.WorldViewportRect = r
	} else {
		n.WorldViewportRect = geom.Rect{}
	}
}
