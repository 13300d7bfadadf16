// Package displaylist defines the immutable, per-pipeline display list that
// layout hands to the frame builder, together with the out-of-line
// auxiliary lists its items reference and a forward cursor for walking it.
//
// A display list is a flat, depth-first serialization of a stacking-context
// tree. The first item is always a PushStackingContext and every push is
// matched by a later PopStackingContext at the same nesting depth:
//
//	b := displaylist.NewBuilder(pipeline)
//	b.PushStackingContext(bounds, clip, displaylist.StackingContext{})
//	b.PushRect(rect, clip, displaylist.ColorF{R: 1, A: 1})
//	b.PopStackingContext()
//	list, aux, err := b.Finalize()
package displaylist

import "fmt"

// PipelineID identifies one content document: the root document or an
// iframe. The namespace distinguishes ids allocated by different clients.
type PipelineID struct {
	Namespace uint32
	Index     uint32
}

// String implements fmt.Stringer.
func (p PipelineID) String() string {
	return fmt.Sprintf("pipeline(%d,%d)", p.Namespace, p.Index)
}

// Epoch is a per-pipeline version counter. It increases every time the
// pipeline's display list is replaced.
type Epoch uint32

// ScrollLayerKind distinguishes scrollable/clip nodes from reference frames
// in a ScrollLayerID.
type ScrollLayerKind uint8

const (
	// ScrollLayerScrollable identifies a scroll frame or clip node.
	ScrollLayerScrollable ScrollLayerKind = iota

	// ScrollLayerReferenceFrame identifies a reference frame, a node that
	// establishes a new coordinate space.
	ScrollLayerReferenceFrame
)

// String returns a human-readable name for the kind.
func (k ScrollLayerKind) String() string {
	switch k {
	case ScrollLayerScrollable:
		return "Scrollable"
	case ScrollLayerReferenceFrame:
		return "ReferenceFrame"
	default:
		return "Unknown"
	}
}

// ScrollLayerID is the stable identity of a node in the spatial-node tree.
// Ids are unique per pipeline; index 0 of each kind is reserved for the
// pipeline's root scroll layer and root reference frame.
type ScrollLayerID struct {
	Pipeline PipelineID
	Kind     ScrollLayerKind
	Index    uint32
}

// RootScrollLayer returns the id of a pipeline's root scroll node.
func RootScrollLayer(pipeline PipelineID) ScrollLayerID {
	return ScrollLayerID{Pipeline: pipeline, Kind: ScrollLayerScrollable}
}

// RootReferenceFrame returns the id of a pipeline's root reference frame.
func RootReferenceFrame(pipeline PipelineID) ScrollLayerID {
	return ScrollLayerID{Pipeline: pipeline, Kind: ScrollLayerReferenceFrame}
}

// IsReferenceFrame reports whether the id names a reference frame.
func (id ScrollLayerID) IsReferenceFrame() bool {
	return id.Kind == ScrollLayerReferenceFrame
}

// String implements fmt.Stringer.
func (id ScrollLayerID) String() string {
	return fmt.Sprintf("%s/%s(%d)", id.Pipeline, id.Kind, id.Index)
}

// ImageKey names an image resource registered with the resource cache.
type ImageKey uint64

// FontKey names a font instance registered with the resource cache.
type FontKey uint64

// WebGLContextID names an offscreen WebGL context.
type WebGLContextID uint32

// ColorF is a non-premultiplied RGBA colour with float components in [0, 1].
type ColorF struct {
	R, G, B, A float32
}

// IsOpaque reports whether the colour has full alpha.
func (c ColorF) IsOpaque() bool {
	return c.A >= 1
}

// TileOffset addresses one tile of an image that the resource cache stores
// as a grid of tiles.
type TileOffset struct {
	X, Y uint16
}
