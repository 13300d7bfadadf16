// Package frame turns the display lists of a scene into a frame: a list of
// primitives attached to a tree of spatial nodes, ready for batching.
//
// # Overview
//
// A scene holds one display list per pipeline. Each list is a depth-first
// serialization of stacking contexts and drawing items; iframe items embed
// the lists of other pipelines. Frame.Create walks the root pipeline's
// list recursively and produces two things:
//
//   - a clipscroll.Tree of reference frames (transform boundaries) and clip
//     nodes (clipping and scrolling), rebuilt from scratch on every call
//   - a primitive.Builder holding the emitted primitives in paint order
//
// Frame.Build then resolves the primitives against the world transforms of
// the tree, culls what is off screen and requests the resources the
// visible primitives need.
//
// # Quick Start
//
//	f := frame.New(primitive.DefaultConfig())
//	if err := f.Create(sc, rc, window, inner, 1.0); err != nil {
//	    return err
//	}
//	out := f.Build(rc, nil, 1.0, geom.Point{}, nil)
//	for _, p := range out.Frame.Primitives {
//	    fmt.Println(p.Kind(), p.WorldRect)
//	}
//
// # Scrolling
//
// Scroll offsets live in the spatial-node tree. Create drains them from the
// old tree before rebuilding and reapplies them by node id afterwards, so a
// user's scroll position survives scene updates.
//
// # Coordinate System
//
// Layout coordinates are in CSS pixels with the origin at the top-left, x
// increasing right and y increasing down. Device sizes are divided by the
// device pixel ratio and rounded.
package frame
