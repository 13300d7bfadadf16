// Package clipscroll maintains the spatial-node tree of a frame: reference
// frames that introduce coordinate spaces, and clip nodes that clip and
// scroll their descendants.
//
// The tree is an arena keyed by displaylist.ScrollLayerID. It is rebuilt
// from scratch whenever the frame is recreated from the scene; the scroll
// state of every node is drained beforehand and reapplied to the node with
// the same id afterwards, so user scroll positions survive structural
// changes.
//
//	states := tree.Drain()
//	// ... rebuild nodes ...
//	tree.FinalizeAndApplyPendingScrollOffsets(states)
package clipscroll

import (
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
)

// ScrollStates maps node ids to the scrolling state drained from a tree.
type ScrollStates map[displaylist.ScrollLayerID]ScrollingState

// ScrollLayerState reports the scroll offset of one scrollable node.
type ScrollLayerState struct {
	ID           displaylist.ScrollLayerID
	ScrollOffset geom.Point
}

// ScrollLocationKind selects how a ScrollLocation moves the content.
type ScrollLocationKind uint8

const (
	// ScrollByDelta moves by a relative amount.
	ScrollByDelta ScrollLocationKind = iota
	// ScrollToStart jumps to the top of the content.
	ScrollToStart
	// ScrollToEnd jumps to the bottom of the content.
	ScrollToEnd
)

// ScrollLocation describes the target of a scroll event.
type ScrollLocation struct {
	Kind  ScrollLocationKind
	Delta geom.Point
}

// ScrollDelta returns a location moving the content by delta.
func ScrollDelta(delta geom.Point) ScrollLocation {
	return ScrollLocation{Kind: ScrollByDelta, Delta: delta}
}

// ScrollStart returns a location jumping to the top of the content.
func ScrollStart() ScrollLocation {
	return ScrollLocation{Kind: ScrollToStart}
}

// ScrollEnd returns a location jumping to the bottom of the content.
func ScrollEnd() ScrollLocation {
	return ScrollLocation{Kind: ScrollToEnd}
}

// ScrollEventPhase is the phase of a scroll gesture.
type ScrollEventPhase uint8

const (
	// PhaseStart begins a gesture.
	PhaseStart ScrollEventPhase = iota
	// PhaseMove is movement driven by the user.
	PhaseMove
	// PhaseMomentum is movement continuing after the user let go.
	PhaseMomentum
	// PhaseEnd ends a gesture.
	PhaseEnd
)

var phaseNames = [...]string{
	PhaseStart:    "Start",
	PhaseMove:     "Move",
	PhaseMomentum: "Momentum",
	PhaseEnd:      "End",
}

// String returns the phase name.
func (p ScrollEventPhase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown"
}

// Tree is the spatial-node tree. It is not safe for concurrent use.
type Tree struct {
	nodes map[displaylist.ScrollLayerID]*Node
	order []displaylist.ScrollLayerID

	rootReferenceFrameID displaylist.ScrollLayerID
	topmostScrollLayerID displaylist.ScrollLayerID

	// currentScrollLayerID is the node the active gesture scrolls.
	currentScrollLayerID displaylist.ScrollLayerID
	hasCurrentScroll     bool

	// nextReferenceFrame numbers non-root reference frames; 0 is the root.
	nextReferenceFrame uint32

	pendingScrollOffsets map[displaylist.ScrollLayerID]geom.Point
	pipelinesToDiscard   map[displaylist.PipelineID]struct{}

	overscroll bool
}

// Option configures a Tree.
type Option func(*Tree)

// WithOverscroll lets scroll gestures move content past its bounds, after
// which it springs back.
func WithOverscroll(enabled bool) Option {
	return func(t *Tree) {
		t.overscroll = enabled
	}
}

// New creates an empty tree.
func New(opts ...Option) *Tree {
	t := &Tree{
		nodes:                make(map[displaylist.ScrollLayerID]*Node),
		nextReferenceFrame:   1,
		pendingScrollOffsets: make(map[displaylist.ScrollLayerID]geom.Point),
		pipelinesToDiscard:   make(map[displaylist.PipelineID]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given id.
func (t *Tree) Node(id displaylist.ScrollLayerID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.nodes[id])
	}
	return out
}

// RootReferenceFrameID returns the id of the root reference frame.
func (t *Tree) RootReferenceFrameID() displaylist.ScrollLayerID {
	return t.rootReferenceFrameID
}

// TopmostScrollLayerID returns the id of the root pipeline's root scroll
// node.
func (t *Tree) TopmostScrollLayerID() displaylist.ScrollLayerID {
	return t.topmostScrollLayerID
}

// SetTopmostScrollLayerID records the root pipeline's root scroll node.
func (t *Tree) SetTopmostScrollLayerID(id displaylist.ScrollLayerID) {
	t.topmostScrollLayerID = id
}

// NextReferenceFrameID allocates an id for a new non-root reference frame.
func (t *Tree) NextReferenceFrameID(pipeline displaylist.PipelineID) displaylist.ScrollLayerID {
	id := displaylist.ScrollLayerID{
		Pipeline: pipeline,
		Kind:     displaylist.ScrollLayerReferenceFrame,
		Index:    t.nextReferenceFrame,
	}
	t.nextReferenceFrame++
	return id
}

// AddReferenceFrame adds a reference frame. A nil parent makes it the root
// reference frame of the pipeline.
func (t *Tree) AddReferenceFrame(pipeline displaylist.PipelineID, parent *displaylist.ScrollLayerID, rect geom.Rect, transform geom.Transform) displaylist.ScrollLayerID {
	var id displaylist.ScrollLayerID
	if parent == nil {
		id = displaylist.RootReferenceFrame(pipeline)
		t.rootReferenceFrameID = id
	} else {
		id = t.NextReferenceFrameID(pipeline)
	}
	t.AddNode(newReferenceFrame(id, parent, rect, transform))
	return id
}

// AddClipNode adds a clip (and possibly scroll) node under parent.
func (t *Tree) AddClipNode(id, parent displaylist.ScrollLayerID, rect geom.Rect, contentSize geom.Size, clip displaylist.ClipRegion) {
	t.AddNode(newClipNode(id, parent, rect, contentSize, clip))
}

// AddNode inserts a node and links it to its parent. A node re-added under
// an existing id replaces the old one.
func (t *Tree) AddNode(n *Node) {
	if n.HasParent {
		if p, ok := t.nodes[n.Parent]; ok {
			p.Children = append(p.Children, n.ID)
		}
	}
	if _, ok := t.nodes[n.ID]; !ok {
		t.order = append(t.order, n.ID)
	}
	t.nodes[n.ID] = n
}

// Drain empties the tree and returns the scrolling state of every node,
// except nodes of pipelines marked for discarding.
func (t *Tree) Drain() ScrollStates {
	t.nextReferenceFrame = 1
	states := make(ScrollStates, len(t.nodes))
	for id, n := range t.nodes {
		if _, discard := t.pipelinesToDiscard[id.Pipeline]; discard {
			continue
		}
		states[id] = n.Scrolling
	}
	clear(t.pipelinesToDiscard)
	clear(t.nodes)
	t.order = t.order[:0]
	return states
}

// FinalizeAndApplyPendingScrollOffsets reinstalls drained scroll state by
// node id and applies scroll offsets requested while the nodes did not
// exist yet.
func (t *Tree) FinalizeAndApplyPendingScrollOffsets(old ScrollStates) {
	for _, id := range t.order {
		n := t.nodes[id]
		n.finalize(old[id])
		if origin, ok := t.pendingScrollOffsets[id]; ok {
			n.setScrollOrigin(origin)
			delete(t.pendingScrollOffsets, id)
		}
	}
}

// ScrollNodes scrolls the node with the given id so that origin is at its
// top-left corner. If no such node exists the offset is kept and applied
// once the node appears. It reports whether a node moved.
func (t *Tree) ScrollNodes(origin geom.Point, id displaylist.ScrollLayerID) bool {
	origin = geom.Point{X: max(origin.X, 0), Y: max(origin.Y, 0)}
	n, ok := t.nodes[id]
	if !ok {
		t.pendingScrollOffsets[id] = origin
		return false
	}
	return n.setScrollOrigin(origin)
}

// Scroll routes a scroll gesture to the scrollable node under the cursor
// and reports whether anything moved.
func (t *Tree) Scroll(loc ScrollLocation, cursor geom.Point, phase ScrollEventPhase) bool {
	if len(t.nodes) == 0 {
		return false
	}

	atPoint := t.findScrollingNodeAtPoint(cursor)
	var id displaylist.ScrollLayerID
	switch {
	case phase == PhaseStart:
		t.currentScrollLayerID, t.hasCurrentScroll = atPoint, true
		id = atPoint
	case t.hasCurrentScroll:
		if _, ok := t.nodes[t.currentScrollLayerID]; !ok {
			t.currentScrollLayerID = atPoint
		}
		id = t.currentScrollLayerID
	default:
		return false
	}

	topmost := t.topmostScrollLayerID
	nonRootOverscroll := false
	if id != topmost {
		if n, ok := t.nodes[id]; ok {
			o := n.overscroll()
			nonRootOverscroll = o.X != 0 || o.Y != 0
		}
	}

	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	switchNode := false
	switch phase {
	case PhaseStart:
		n.Scrolling.ShouldHandoffScroll = nonRootOverscroll
	case PhaseMove, PhaseMomentum:
		switchNode = n.Scrolling.ShouldHandoffScroll && nonRootOverscroll
	case PhaseEnd:
		n.Scrolling.ShouldHandoffScroll = false
	}
	if switchNode {
		if n, ok = t.nodes[topmost]; !ok {
			return false
		}
	}
	return n.scroll(loc, phase, t.overscroll)
}

// findScrollingNodeAtPoint returns the deepest, last-added clip node whose
// world viewport contains the point, or the topmost scroll node.
func (t *Tree) findScrollingNodeAtPoint(p geom.Point) displaylist.ScrollLayerID {
	if id, ok := t.findScrollingNodeAtPointIn(p, t.rootReferenceFrameID); ok {
		return id
	}
	return t.topmostScrollLayerID
}

func (t *Tree) findScrollingNodeAtPointIn(p geom.Point, id displaylist.ScrollLayerID) (displaylist.ScrollLayerID, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return displaylist.ScrollLayerID{}, false
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if found, ok := t.findScrollingNodeAtPointIn(p, n.Children[i]); ok {
			return found, true
		}
	}
	if n.Kind == KindReferenceFrame {
		return displaylist.ScrollLayerID{}, false
	}
	if n.WorldViewportRect.Contains(p) {
		return id, true
	}
	return displaylist.ScrollLayerID{}, false
}

// TickScrollingBounceAnimations advances every bounce-back animation by
// one step.
func (t *Tree) TickScrollingBounceAnimations() {
	for _, n := range t.nodes {
		n.tickBounce()
	}
}

// CollectNodesBouncingBack returns the ids of nodes whose bounce-back
// animation is still running.
func (t *Tree) CollectNodesBouncingBack() map[displaylist.ScrollLayerID]struct{} {
	out := make(map[displaylist.ScrollLayerID]struct{})
	for id, n := range t.nodes {
		if n.Scrolling.BouncingBack {
			out[id] = struct{}{}
		}
	}
	return out
}

// ScrollNodeState returns the offsets of all scrollable nodes in insertion
// order. Reference frames are omitted.
func (t *Tree) ScrollNodeState() []ScrollLayerState {
	var out []ScrollLayerState
	for _, id := range t.order {
		if id.IsReferenceFrame() {
			continue
		}
		out = append(out, ScrollLayerState{ID: id, ScrollOffset: t.nodes[id].Scrolling.Offset})
	}
	return out
}

// DiscardFrameStateForPipeline makes the next Drain forget the scroll
// state of the pipeline's nodes.
func (t *Tree) DiscardFrameStateForPipeline(pipeline displaylist.PipelineID) {
	t.pipelinesToDiscard[pipeline] = struct{}{}
}

// UpdateAllNodeTransforms recomputes world transforms and viewports of all
// nodes, with the whole tree panned by pan.
func (t *Tree) UpdateAllNodeTransforms(pan geom.Point) {
	root, ok := t.nodes[t.rootReferenceFrameID]
	if !ok {
		return
	}
	t.updateNodeTransform(root.ID, geom.Translation(pan.X, pan.Y, 0), root.LocalClipRect, geom.Point{}, geom.Point{})
}

func (t *Tree) updateNodeTransform(id displaylist.ScrollLayerID, parentTransform geom.Transform, parentViewport geom.Rect, parentScroll, accumulatedScroll geom.Point) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	n.updateTransform(parentTransform, parentViewport, parentScroll, accumulatedScroll)

	// Reference frames restart the accumulation for their descendants.
	transform, scroll, accumulated := parentTransform, n.Scrolling.Offset, n.Scrolling.Offset.Add(accumulatedScroll)
	if n.Kind == KindReferenceFrame {
		transform, scroll, accumulated = n.WorldViewportTransform, geom.Point{}, geom.Point{}
	}
	for _, child := range n.Children {
		t.updateNodeTransform(child, transform, n.CombinedLocalViewportRect, scroll, accumulated)
	}
}
