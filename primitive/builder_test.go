package primitive

import (
	"math"
	"testing"

	"github.com/go-text/typesetting/font"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/frame/clipscroll"
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
	"github.com/gogpu/frame/resource"
)

var (
	testPipeline = displaylist.PipelineID{Index: 1}
	red          = displaylist.ColorF{R: 1, A: 1}
)

func clipOf(r geom.Rect) displaylist.ClipRegion {
	return displaylist.SimpleClip(r)
}

// newRootBuilder returns a builder for a 100x100 window whose root scroll
// node has 300 units of content height.
func newRootBuilder(cfg Config) (*Builder, *clipscroll.Tree, displaylist.ScrollLayerID) {
	tree := clipscroll.New()
	b := NewBuilder(geom.DeviceSize{W: 100, H: 100}, nil, cfg)
	root := b.PushRoot(testPipeline, geom.Sz(100, 100), geom.Sz(100, 300), tree)
	b.PushStackingContext(geom.Point{}, testPipeline, true, CompositeOps{})
	return b, tree, root
}

func TestPushRoot(t *testing.T) {
	b, tree, root := newRootBuilder(DefaultConfig())

	if root != displaylist.RootScrollLayer(testPipeline) {
		t.Errorf("PushRoot() = %v, want root scroll layer", root)
	}
	if tree.TopmostScrollLayerID() != root {
		t.Errorf("TopmostScrollLayerID() = %v, want %v", tree.TopmostScrollLayerID(), root)
	}
	if tree.Len() != 2 {
		t.Errorf("tree Len() = %d, want 2", tree.Len())
	}
	if got := b.CurrentReferenceFrameID(); got != displaylist.RootReferenceFrame(testPipeline) {
		t.Errorf("CurrentReferenceFrameID() = %v, want root reference frame", got)
	}
	if b.ClipNodeCount() != 1 {
		t.Errorf("ClipNodeCount() = %d, want 1", b.ClipNodeCount())
	}
}

func TestSetupViewportOffset(t *testing.T) {
	b, tree, root := newRootBuilder(DefaultConfig())
	b.SetupViewportOffset(geom.DeviceSize{W: 200, H: 100}, geom.DeviceRect{X: 20, Y: 10, W: 160, H: 80}, 2, tree)

	rf, _ := tree.Node(tree.RootReferenceFrameID())
	if got := rf.LocalTransform.Translation2D(); got != geom.Pt(10, 5) {
		t.Errorf("root translation = %v, want (10, 5)", got)
	}
	want := geom.NewRect(-10, -5, 120, 60)
	if rf.LocalClipRect != want {
		t.Errorf("root clip = %v, want %v", rf.LocalClipRect, want)
	}
	scroll, _ := tree.Node(root)
	if scroll.LocalClipRect != want {
		t.Errorf("scroll clip = %v, want %v", scroll.LocalClipRect, want)
	}
}

func TestReferenceFrameStack(t *testing.T) {
	b, tree, root := newRootBuilder(DefaultConfig())
	rootFrame := b.CurrentReferenceFrameID()

	inner := b.PushReferenceFrame(&root, testPipeline, geom.NewRect(0, 0, 10, 10), geom.Translation(5, 5, 0), tree)
	if b.CurrentReferenceFrameID() != inner {
		t.Errorf("CurrentReferenceFrameID() = %v, want %v", b.CurrentReferenceFrameID(), inner)
	}
	b.PushStackingContext(geom.Pt(1, 2), testPipeline, false, CompositeOps{})
	sc := b.StackingContexts()[1]
	if sc.ReferenceFrame != inner || sc.Parent != 0 || sc.IsPageRoot {
		t.Errorf("nested stacking context = %+v", sc)
	}
	b.PopStackingContext()

	b.PopReferenceFrame()
	if b.CurrentReferenceFrameID() != rootFrame {
		t.Errorf("after pop CurrentReferenceFrameID() = %v, want %v", b.CurrentReferenceFrameID(), rootFrame)
	}
}

func TestAddPrimitivesDropped(t *testing.T) {
	b, _, root := newRootBuilder(DefaultConfig())
	r := geom.NewRect(0, 0, 10, 10)

	b.AddSolidRectangle(root, r, clipOf(r), displaylist.ColorF{R: 1}, NoFlags())
	b.AddSolidRectangle(root, geom.NewRect(0, 0, 10, 0), clipOf(r), red, NoFlags())
	b.AddBoxShadow(root, r, clipOf(r), geom.Point{}, displaylist.ColorF{}, 2, 0, 0, displaylist.BoxShadowClipOutset)
	b.AddText(root, r, clipOf(r), 1, 0, 0, red, displaylist.ItemRange{Length: 1}, nil)
	b.AddText(root, r, clipOf(r), 1, 12, 0, red, displaylist.ItemRange{}, nil)
	b.AddBorder(root, r, clipOf(r), displaylist.BorderItem{})

	if n := len(b.Instances()); n != 0 {
		t.Errorf("len(Instances()) = %d, want 0", n)
	}
}

func TestAddTextSubpixel(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		opts    *displaylist.GlyphOptions
		blur    float64
		want    bool
	}{
		{"default", true, nil, 0, true},
		{"disabled globally", false, nil, 0, false},
		{"disabled by run", true, &displaylist.GlyphOptions{SubpixelAA: false}, 0, false},
		{"requested by run", true, &displaylist.GlyphOptions{SubpixelAA: true}, 0, true},
		{"blurred", true, nil, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, root := newRootBuilder(Config{EnableSubpixelAA: tt.enabled})
			r := geom.NewRect(0, 0, 10, 10)
			b.AddText(root, r, clipOf(r), 1, 12, tt.blur, red, displaylist.ItemRange{Length: 1}, tt.opts)
			got := b.Instances()[0].Primitive.(Text).SubpixelAA
			if got != tt.want {
				t.Errorf("SubpixelAA = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddBoxShadowBounds(t *testing.T) {
	b, _, root := newRootBuilder(DefaultConfig())
	box := geom.NewRect(10, 10, 20, 20)

	b.AddBoxShadow(root, box, clipOf(box), geom.Pt(5, 5), red, 3, 2, 0, displaylist.BoxShadowClipOutset)
	b.AddBoxShadow(root, box, clipOf(box), geom.Pt(5, 5), red, 3, 2, 0, displaylist.BoxShadowClipInset)

	inst := b.Instances()
	if want := geom.NewRect(10, 10, 30, 30); inst[0].Rect != want {
		t.Errorf("outset shadow rect = %v, want %v", inst[0].Rect, want)
	}
	if inst[1].Rect != box {
		t.Errorf("inset shadow rect = %v, want %v", inst[1].Rect, box)
	}
	if inst[0].Kind() != KindBoxShadow || inst[0].StackingContext != 0 || inst[0].Pipeline != testPipeline {
		t.Errorf("instance = %+v", inst[0])
	}
}

func TestBuildCullsAndScrolls(t *testing.T) {
	b, tree, root := newRootBuilder(DefaultConfig())
	top := geom.NewRect(10, 10, 20, 20)
	below := geom.NewRect(10, 200, 20, 20)
	b.AddSolidRectangle(root, top, clipOf(top), red, NoFlags())
	b.AddSolidRectangle(root, below, clipOf(below), red, NoFlags())
	rc := resource.New()

	tree.UpdateAllNodeTransforms(geom.Point{})
	f := b.Build(rc, 1, tree, nil, 1)
	if f.Counters.VisiblePrimitives != 1 || f.Counters.CulledPrimitives != 1 || f.Counters.TotalPrimitives != 2 {
		t.Fatalf("Counters = %+v", f.Counters)
	}
	if f.Primitives[0].WorldRect != top {
		t.Errorf("WorldRect = %v, want %v", f.Primitives[0].WorldRect, top)
	}

	tree.ScrollNodes(geom.Pt(0, 150), root)
	tree.UpdateAllNodeTransforms(geom.Point{})
	f = b.Build(rc, 2, tree, nil, 1)
	if len(f.Primitives) != 1 {
		t.Fatalf("len(Primitives) = %d, want 1", len(f.Primitives))
	}
	if want := geom.NewRect(10, 50, 20, 20); f.Primitives[0].WorldRect != want {
		t.Errorf("scrolled WorldRect = %v, want %v", f.Primitives[0].WorldRect, want)
	}
}

func TestBuildStackingContextOffset(t *testing.T) {
	b, tree, root := newRootBuilder(DefaultConfig())
	b.PushStackingContext(geom.Pt(30, 40), testPipeline, false, CompositeOps{})
	r := geom.NewRect(0, 0, 10, 10)
	b.AddSolidRectangle(root, r, clipOf(r), red, NoFlags())
	b.PopStackingContext()

	tree.UpdateAllNodeTransforms(geom.Point{})
	f := b.Build(resource.New(), 1, tree, nil, 1)
	if want := geom.NewRect(30, 40, 10, 10); len(f.Primitives) != 1 || f.Primitives[0].WorldRect != want {
		t.Errorf("Primitives = %+v, want one at %v", f.Primitives, want)
	}
}

func TestBuildRequestsResources(t *testing.T) {
	b, tree, root := newRootBuilder(DefaultConfig())
	rc := resource.New()
	desc := resource.ImageDescriptor{Width: 4, Height: 4, Format: gputypes.TextureFormatRGBA8Unorm}
	if err := rc.AddImage(1, desc, make([]byte, 64), 0); err != nil {
		t.Fatal(err)
	}
	aux := displaylist.AuxiliaryListsMap{
		testPipeline: {Glyphs: []displaylist.GlyphInstance{{Index: font.GID(3)}, {Index: font.GID(4)}}},
	}

	r := geom.NewRect(0, 0, 4, 4)
	b.AddImage(root, r, clipOf(r), geom.Sz(4, 4), geom.Size{}, nil, 1, displaylist.ImageRenderingAuto, nil)
	b.AddText(root, r, clipOf(r), 9, 12, 0, red, displaylist.ItemRange{Start: 0, Length: 2}, nil)
	offscreen := geom.NewRect(0, 500, 4, 4)
	b.AddImage(root, offscreen, clipOf(offscreen), geom.Sz(4, 4), geom.Size{}, nil, 2, displaylist.ImageRenderingAuto, nil)

	tree.UpdateAllNodeTransforms(geom.Point{})
	f := b.Build(rc, 1, tree, aux, 1)

	got := f.Counters.Resources
	if got.ImageRequests != 1 || got.ImageUploads != 1 || got.GlyphUploads != 2 {
		t.Errorf("Resources = %+v, want 1 image request and upload, 2 glyph uploads", got)
	}
	if rc.ResidentImages() != 1 || rc.ResidentGlyphs() != 2 {
		t.Errorf("resident images, glyphs = %d, %d, want 1, 2", rc.ResidentImages(), rc.ResidentGlyphs())
	}
}

func TestBuildOverdraw(t *testing.T) {
	b, tree, root := newRootBuilder(Config{DebugOverdraw: true})
	a := geom.NewRect(0, 0, 10, 10)
	c := geom.NewRect(5, 5, 10, 10)
	b.AddSolidRectangle(root, a, clipOf(a), red, NoFlags())
	b.AddSolidRectangle(root, c, clipOf(c), red, NoFlags())

	tree.UpdateAllNodeTransforms(geom.Point{})
	f := b.Build(resource.New(), 1, tree, nil, 1)
	if f.Counters.OverdrawArea != 25 {
		t.Errorf("OverdrawArea = %v, want 25", f.Counters.OverdrawArea)
	}
}

func TestBuildScrollbar(t *testing.T) {
	b, tree, root := newRootBuilder(Config{EnableScrollbars: true})
	bar := geom.NewRect(0, 0, 10, 70)
	b.AddSolidRectangle(root, bar, clipOf(bar), red, Scrollbar(root, 4))

	tree.UpdateAllNodeTransforms(geom.Point{})
	f := b.Build(resource.New(), 1, tree, nil, 1)
	if len(f.Primitives) != 1 {
		t.Fatalf("len(Primitives) = %d, want 1", len(f.Primitives))
	}
	got := f.Primitives[0].WorldRect
	if got.X != 86 || got.Y != 0 || math.Abs(got.H-100.0/3) > 1e-9 {
		t.Errorf("scrollbar rect = %v, want x 86, y 0, height 100/3", got)
	}

	tree.ScrollNodes(geom.Pt(0, 150), root)
	tree.UpdateAllNodeTransforms(geom.Point{})
	f = b.Build(resource.New(), 2, tree, nil, 1)
	if got := f.Primitives[0].WorldRect.Y; math.Abs(got-50) > 1e-9 {
		t.Errorf("scrolled scrollbar y = %v, want 50", got)
	}
}
