package frame

import (
	"maps"

	"github.com/gogpu/frame/clipscroll"
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
	"github.com/gogpu/frame/primitive"
	"github.com/gogpu/frame/resource"
	"github.com/gogpu/frame/scene"
)

// Frame owns the spatial-node tree and the primitives built from the most
// recent scene.
//
// Frame is not safe for concurrent use. Create and Build must be called
// serially and must not overlap with updates of the scene or the resource
// cache passed to them.
type Frame struct {
	cfg  primitive.Config
	tree *clipscroll.Tree

	// pipelineEpochs records the epoch of every pipeline reached by the
	// last Create.
	pipelineEpochs map[displaylist.PipelineID]displaylist.Epoch

	// auxLists is copied from the scene at the start of Create.
	auxLists displaylist.AuxiliaryListsMap

	id resource.FrameID

	// builder is nil until the first successful Create.
	builder *primitive.Builder
}

// RenderableFrame is the output of Build.
type RenderableFrame struct {
	// PipelineEpochs is a copy of the epochs the frame was built from.
	PipelineEpochs map[displaylist.PipelineID]displaylist.Epoch

	// NodesBouncingBack holds the nodes whose overscroll animation is still
	// running; the caller keeps ticking while it is non-empty.
	NodesBouncingBack map[displaylist.ScrollLayerID]struct{}

	// Frame is nil if no scene has been flattened yet.
	Frame *primitive.Frame
}

// New creates a frame with an empty tree.
func New(cfg primitive.Config) *Frame {
	return &Frame{
		cfg:            cfg,
		tree:           clipscroll.New(clipscroll.WithOverscroll(cfg.EnableOverscroll)),
		pipelineEpochs: make(map[displaylist.PipelineID]displaylist.Epoch),
		auxLists:       make(displaylist.AuxiliaryListsMap),
	}
}

// ID returns the current frame id.
func (f *Frame) ID() resource.FrameID {
	return f.id
}

// PipelineEpochs returns the epochs recorded by the last Create. The map is
// owned by the frame.
func (f *Frame) PipelineEpochs() map[displaylist.PipelineID]displaylist.Epoch {
	return f.pipelineEpochs
}

// Tree returns the spatial-node tree.
func (f *Frame) Tree() *clipscroll.Tree {
	return f.tree
}

// Builder returns the primitives of the last Create, or nil.
func (f *Frame) Builder() *primitive.Builder {
	return f.builder
}

// Create rebuilds the tree and the primitives from the scene. The window
// size and inner rectangle are in device pixels.
//
// If the scene cannot be flattened Create returns one of the sentinel
// errors and leaves the previous state unchanged.
func (f *Frame) Create(sc *scene.Scene, rc *resource.Cache, windowSize geom.DeviceSize, inner geom.DeviceRect, devicePixelRatio float64) error {
	rootID, ok := sc.RootPipeline()
	if !ok {
		return f.abort(ErrNoRootPipeline)
	}
	root, ok := sc.PipelineMap[rootID]
	if !ok {
		return f.abort(ErrRootPipelineNotFound, "pipeline", rootID)
	}
	list, ok := sc.DisplayLists[rootID]
	if !ok {
		return f.abort(ErrNoDisplayList, "pipeline", rootID)
	}
	if windowSize.IsEmpty() {
		return f.abort(ErrInvalidWindowSize, "width", windowSize.W, "height", windowSize.H)
	}
	rootContext, rootItem, ok := list.StartingStackingContext()
	if !ok {
		return f.abort(ErrNoStackingContext, "pipeline", rootID)
	}

	old := f.Reset()
	f.auxLists = maps.Clone(sc.PipelineAuxiliaryLists)
	f.pipelineEpochs[rootID] = root.Epoch

	var background *displaylist.ColorF
	if bg := root.BackgroundColor; bg != nil && bg.A > 0 {
		c := *bg
		background = &c
	}
	b := primitive.NewBuilder(windowSize, background, f.cfg)

	ctx := &flattenContext{
		scene:    sc,
		builder:  b,
		rc:       rc,
		tree:     f.tree,
		epochs:   f.pipelineEpochs,
		auxLists: f.auxLists,
	}
	rootBounds := rootItem.Rect
	scrollID := b.PushRoot(rootID, root.ViewportSize, rootBounds.Size(), f.tree)
	b.SetupViewportOffset(windowSize, inner, devicePixelRatio, f.tree)

	traversal := displaylist.NewTraversalSkippingFirst(list)
	ctx.flattenStackingContext(traversal, rootID, scrollID, geom.Point{}, 0, rootBounds, rootContext)

	f.builder = b
	f.tree.FinalizeAndApplyPendingScrollOffsets(old)

	Logger().Debug("frame created",
		"frame", f.id,
		"pipelines", len(f.pipelineEpochs),
		"primitives", len(b.Instances()),
		"nodes", f.tree.Len())
	return nil
}

func (f *Frame) abort(err error, args ...any) error {
	Logger().Warn("frame not rebuilt", append([]any{"err", err}, args...)...)
	return err
}

// Build computes node transforms for the given pan offset, builds the
// retained primitives and expires resources the frame did not use. A nil
// aux map uses the auxiliary lists copied by the last Create. If counters
// is non-nil it receives the build statistics.
func (f *Frame) Build(rc *resource.Cache, aux displaylist.AuxiliaryListsMap, devicePixelRatio float64, pan geom.Point, counters *primitive.ProfileCounters) RenderableFrame {
	if aux == nil {
		aux = f.auxLists
	}
	f.tree.UpdateAllNodeTransforms(pan)

	var built *primitive.Frame
	if f.builder != nil {
		built = f.builder.Build(rc, f.id, f.tree, aux, devicePixelRatio)
		if counters != nil {
			*counters = built.Counters
		}
	}
	bouncing := f.tree.CollectNodesBouncingBack()
	rc.ExpireOldResources(f.id)

	return RenderableFrame{
		PipelineEpochs:    maps.Clone(f.pipelineEpochs),
		NodesBouncingBack: bouncing,
		Frame:             built,
	}
}

// Reset clears the epoch map, advances the frame id and returns the scroll
// state drained from the tree.
func (f *Frame) Reset() clipscroll.ScrollStates {
	clear(f.pipelineEpochs)
	f.id++
	return f.tree.Drain()
}

// Scroll applies a scroll gesture at the cursor position and reports
// whether any node moved.
func (f *Frame) Scroll(loc clipscroll.ScrollLocation, cursor geom.Point, phase clipscroll.ScrollEventPhase) bool {
	return f.tree.Scroll(loc, cursor, phase)
}

// ScrollNodes scrolls one node to origin and reports whether it moved.
// Offsets for nodes not yet in the tree are applied by the next Create.
func (f *Frame) ScrollNodes(origin geom.Point, id displaylist.ScrollLayerID) bool {
	return f.tree.ScrollNodes(origin, id)
}

// TickScrollingBounceAnimations advances overscroll animations by one step.
func (f *Frame) TickScrollingBounceAnimations() {
	f.tree.TickScrollingBounceAnimations()
}

// ScrollNodeState returns the scroll offset of every clip node.
func (f *Frame) ScrollNodeState() []clipscroll.ScrollLayerState {
	return f.tree.ScrollNodeState()
}

// DiscardFrameStateForPipeline drops the saved scroll state of a pipeline
// at the next rebuild.
func (f *Frame) DiscardFrameStateForPipeline(id displaylist.PipelineID) {
	f.tree.DiscardFrameStateForPipeline(id)
}
