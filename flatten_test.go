package frame

import (
	"math"
	"testing"

	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
	"github.com/gogpu/frame/primitive"
	"github.com/gogpu/frame/resource"
	"github.com/gogpu/frame/scene"
)

func TestEmptyStackingContextSkipped(t *testing.T) {
	translate := displaylist.BindValue(geom.Translation(10, 0, 0))
	sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
		clip := displaylist.SimpleClip(pageBounds)
		b.PushStackingContext(geom.NewRect(0, 0, 50, 50), clip, displaylist.StackingContext{Transform: &translate})
		b.PopStackingContext()
		b.PushRect(geom.NewRect(0, 0, 10, 10), clip, red)
	})
	f := create(t, primitive.DefaultConfig(), sc, resource.New())

	if n := len(f.Builder().StackingContexts()); n != 1 {
		t.Errorf("stacking contexts = %d, want 1", n)
	}
	// Root reference frame and root scroll node only.
	if f.Tree().Len() != 2 {
		t.Errorf("tree Len() = %d, want 2", f.Tree().Len())
	}
	if inst := instances(f); len(inst) != 1 || inst[0].Kind() != primitive.KindRectangle {
		t.Errorf("Instances() = %+v, want the rectangle after the empty context", inst)
	}
}

func TestInvisibleStackingContextSkipped(t *testing.T) {
	const key displaylist.PropertyBindingKey = 5
	tests := []struct {
		name     string
		opacity  displaylist.PropertyBinding[float64]
		props    map[displaylist.PropertyBindingKey]float64
		wantRect int
	}{
		{"zero opacity", displaylist.BindValue(0.0), nil, 2},
		{"half opacity", displaylist.BindValue(0.5), nil, 4},
		{"bound to zero", displaylist.BindKey[float64](key), map[displaylist.PropertyBindingKey]float64{key: 0}, 2},
		{"unbound key defaults to opaque", displaylist.BindKey[float64](key), nil, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
				clip := displaylist.SimpleClip(pageBounds)
				b.PushRect(geom.NewRect(0, 0, 10, 10), clip, red)
				b.PushStackingContext(pageBounds, clip, displaylist.StackingContext{}, displaylist.Opacity(tt.opacity))
				b.PushRect(geom.NewRect(20, 0, 10, 10), clip, red)
				b.PushStackingContext(pageBounds, clip, displaylist.StackingContext{})
				b.PushRect(geom.NewRect(40, 0, 10, 10), clip, red)
				b.PopStackingContext()
				b.PopStackingContext()
				b.PushRect(geom.NewRect(60, 0, 10, 10), clip, red)
			})
			sc.Properties.SetProperties(scene.DynamicProperties{Floats: tt.props})

			f := create(t, primitive.DefaultConfig(), sc, resource.New())
			inst := instances(f)
			if len(inst) != tt.wantRect {
				t.Fatalf("len(Instances()) = %d, want %d", len(inst), tt.wantRect)
			}
			if last := inst[len(inst)-1].Rect; last.X != 60 {
				t.Errorf("last rectangle at x = %v, want 60", last.X)
			}
		})
	}
}

func TestReferenceFrame(t *testing.T) {
	rootScroll := displaylist.RootScrollLayer(rootPipeline)
	translate := displaylist.BindValue(geom.Translation(10, 0, 0))
	sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
		clip := displaylist.SimpleClip(pageBounds)
		b.PushStackingContext(geom.NewRect(5, 5, 100, 100), clip, displaylist.StackingContext{})
		b.PushStackingContext(geom.NewRect(20, 30, 50, 50), clip, displaylist.StackingContext{Transform: &translate})
		b.PushRect(geom.NewRect(0, 0, 10, 10), clip, red)
		b.PopStackingContext()
		b.PushRect(geom.NewRect(0, 0, 10, 10), clip, red)
		b.PopStackingContext()
	})
	f := create(t, primitive.DefaultConfig(), sc, resource.New())
	inst := instances(f)
	if len(inst) != 2 {
		t.Fatalf("len(Instances()) = %d, want 2", len(inst))
	}

	frameID := inst[0].ScrollLayerID
	if !frameID.IsReferenceFrame() {
		t.Fatalf("transformed child attached to %v, want a reference frame", frameID)
	}
	node, ok := f.Tree().Node(frameID)
	if !ok {
		t.Fatal("reference frame not in tree")
	}
	if got := node.LocalTransform.Translation2D(); got != geom.Pt(35, 35) {
		t.Errorf("reference frame translation = %v, want (35, 35)", got)
	}
	if node.Parent != rootScroll {
		t.Errorf("reference frame parent = %v, want %v", node.Parent, rootScroll)
	}
	if want := geom.NewRect(0, 0, 50, 50); node.LocalViewportRect != want {
		t.Errorf("reference frame rect = %v, want %v", node.LocalViewportRect, want)
	}

	scs := f.Builder().StackingContexts()
	if got := scs[inst[0].StackingContext].Offset; got != (geom.Point{}) {
		t.Errorf("offset inside reference frame = %v, want zero", got)
	}
	if inst[1].ScrollLayerID != rootScroll {
		t.Errorf("sibling after the reference frame attached to %v, want %v", inst[1].ScrollLayerID, rootScroll)
	}
	if got := scs[inst[1].StackingContext].Offset; got != geom.Pt(5, 5) {
		t.Errorf("accumulated offset = %v, want (5, 5)", got)
	}
}

func TestPerspective(t *testing.T) {
	perspective := geom.Perspective(500)
	sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
		clip := displaylist.SimpleClip(pageBounds)
		b.PushStackingContext(geom.NewRect(10, 0, 50, 50), clip, displaylist.StackingContext{Perspective: &perspective})
		b.PushRect(geom.NewRect(0, 0, 10, 10), clip, red)
		b.PopStackingContext()
	})
	f := create(t, primitive.DefaultConfig(), sc, resource.New())

	node, _ := f.Tree().Node(instances(f)[0].ScrollLayerID)
	if want := geom.Translation(10, 0, 0).PreMul(perspective); node.LocalTransform != want {
		t.Errorf("LocalTransform = %v, want %v", node.LocalTransform, want)
	}
}

func TestFixedPosition(t *testing.T) {
	sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
		clip := displaylist.SimpleClip(pageBounds)
		b.PushStackingContext(geom.NewRect(0, 100, 800, 50), clip, displaylist.StackingContext{ScrollPolicy: displaylist.ScrollPolicyFixed})
		b.PushRect(geom.NewRect(0, 0, 800, 50), clip, red)
		b.PopStackingContext()
		b.PushRect(geom.NewRect(0, 0, 10, 10), clip, red)
	})
	f := create(t, primitive.DefaultConfig(), sc, resource.New())
	inst := instances(f)

	if want := displaylist.RootReferenceFrame(rootPipeline); inst[0].ScrollLayerID != want {
		t.Errorf("fixed content attached to %v, want %v", inst[0].ScrollLayerID, want)
	}
	if want := displaylist.RootScrollLayer(rootPipeline); inst[1].ScrollLayerID != want {
		t.Errorf("content after the fixed context attached to %v, want %v", inst[1].ScrollLayerID, want)
	}
}

func TestReplacementLookupSingleSlot(t *testing.T) {
	id := func(i uint32) displaylist.ScrollLayerID {
		return displaylist.ScrollLayerID{Pipeline: rootPipeline, Index: i}
	}
	c := &flattenContext{}

	if got := c.scrollLayerIDWithReplacement(id(1)); got != id(1) {
		t.Errorf("lookup with empty stack = %v, want %v", got, id(1))
	}

	c.pushReplacement(id(1), id(10))
	c.pushReplacement(id(2), id(20))
	tests := []struct {
		in, want displaylist.ScrollLayerID
	}{
		{id(2), id(20)},
		// Shadowed by the newer entry.
		{id(1), id(1)},
		{id(3), id(3)},
	}
	for _, tt := range tests {
		if got := c.scrollLayerIDWithReplacement(tt.in); got != tt.want {
			t.Errorf("scrollLayerIDWithReplacement(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	c.popReplacement()
	if got := c.scrollLayerIDWithReplacement(id(1)); got != id(10) {
		t.Errorf("after pop lookup = %v, want %v", got, id(10))
	}
}

func TestNestedFixedContexts(t *testing.T) {
	// Items keep the scroll layer they were recorded with. The inner
	// fixed context redirects the clip layer, which hides the outer
	// redirect of the root scroll layer.
	var clipID displaylist.ScrollLayerID
	sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
		clip := displaylist.SimpleClip(pageBounds)
		fixed := displaylist.StackingContext{ScrollPolicy: displaylist.ScrollPolicyFixed}
		clipID = b.DefineClip(geom.Sz(800, 600), clip)

		b.PushStackingContext(pageBounds, clip, fixed)
		b.PushScrollLayer(clipID)
		b.PushStackingContext(pageBounds, clip, fixed)
		b.PopScrollLayer()
		b.PushRect(geom.NewRect(0, 0, 10, 10), clip, red)
		b.PopStackingContext()
		b.PopStackingContext()
	})
	f := create(t, primitive.DefaultConfig(), sc, resource.New())

	inst := instances(f)
	if len(inst) != 1 {
		t.Fatalf("len(Instances()) = %d, want 1", len(inst))
	}
	if want := displaylist.RootScrollLayer(rootPipeline); inst[0].ScrollLayerID != want {
		t.Errorf("rectangle attached to %v, want %v", inst[0].ScrollLayerID, want)
	}
}

func TestClipNode(t *testing.T) {
	var clipID displaylist.ScrollLayerID
	sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
		clip := displaylist.SimpleClip(pageBounds)
		b.PushStackingContext(geom.NewRect(10, 20, 100, 100), clip, displaylist.StackingContext{})
		clipID = b.DefineClip(geom.Sz(50, 500), displaylist.SimpleClip(geom.NewRect(0, 0, 50, 50)))
		b.PushScrollLayer(clipID)
		b.PushRect(geom.NewRect(0, 0, 10, 10), clip, red)
		b.PopScrollLayer()
		b.PopStackingContext()
	})
	f := create(t, primitive.DefaultConfig(), sc, resource.New())

	node, ok := f.Tree().Node(clipID)
	if !ok {
		t.Fatal("clip node not in tree")
	}
	if want := geom.NewRect(10, 20, 50, 50); node.LocalViewportRect != want {
		t.Errorf("clip node rect = %v, want %v", node.LocalViewportRect, want)
	}
	if node.Parent != displaylist.RootScrollLayer(rootPipeline) || node.ContentSize != geom.Sz(50, 500) {
		t.Errorf("clip node = parent %v, content %v", node.Parent, node.ContentSize)
	}
	if inst := instances(f); inst[0].ScrollLayerID != clipID {
		t.Errorf("rectangle attached to %v, want %v", inst[0].ScrollLayerID, clipID)
	}
}

func TestIframe(t *testing.T) {
	iframeRect := geom.NewRect(100, 50, 200, 100)
	sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
		clip := displaylist.SimpleClip(pageBounds)
		b.PushStackingContext(geom.NewRect(10, 10, 400, 400), clip, displaylist.StackingContext{})
		b.PushIframe(iframeRect, clip, iframePipeline)
		b.PopStackingContext()
	})
	iframeBounds := geom.NewRect(0, 0, 200, 300)
	list, aux := record(t, iframePipeline, iframeBounds, func(b *displaylist.Builder) {
		b.PushRect(geom.NewRect(0, 0, 20, 20), displaylist.SimpleClip(iframeBounds), red)
	})
	sc.SetDisplayList(iframePipeline, 3, list, aux, geom.Sz(200, 100), nil)

	f := create(t, primitive.DefaultConfig(), sc, resource.New())

	iframeScroll := displaylist.RootScrollLayer(iframePipeline)
	scroll, ok := f.Tree().Node(iframeScroll)
	if !ok {
		t.Fatal("iframe root scroll node not in tree")
	}
	if scroll.ContentSize != iframeBounds.Size() || scroll.LocalViewportRect != geom.NewRect(0, 0, 200, 100) {
		t.Errorf("iframe scroll node = content %v, rect %v", scroll.ContentSize, scroll.LocalViewportRect)
	}
	ref, _ := f.Tree().Node(scroll.Parent)
	if !ref.ID.IsReferenceFrame() || ref.Parent != displaylist.RootScrollLayer(rootPipeline) {
		t.Errorf("iframe reference frame = %v with parent %v", ref.ID, ref.Parent)
	}
	if got := ref.LocalTransform.Translation2D(); got != geom.Pt(110, 60) {
		t.Errorf("iframe translation = %v, want (110, 60)", got)
	}

	inst := instances(f)
	if len(inst) != 1 || inst[0].ScrollLayerID != iframeScroll || inst[0].Pipeline != iframePipeline {
		t.Fatalf("Instances() = %+v, want the iframe rectangle", inst)
	}
	scs := f.Builder().StackingContexts()
	if iframeSC := scs[inst[0].StackingContext]; !iframeSC.IsPageRoot || iframeSC.Offset != (geom.Point{}) {
		t.Errorf("iframe stacking context = %+v, want page root at zero offset", iframeSC)
	}

	out := f.Build(resource.New(), nil, 1, geom.Point{}, nil)
	if want := geom.NewRect(110, 60, 20, 20); out.Frame.Primitives[0].WorldRect != want {
		t.Errorf("iframe rectangle WorldRect = %v, want %v", out.Frame.Primitives[0].WorldRect, want)
	}
}

func TestIframeOmitted(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, sc *scene.Scene)
	}{
		{"unknown pipeline", func(*testing.T, *scene.Scene) {}},
		{"no display list", func(t *testing.T, sc *scene.Scene) {
			list, aux := record(t, iframePipeline, pageBounds, nil)
			sc.SetDisplayList(iframePipeline, 1, list, aux, geom.Sz(10, 10), nil)
			delete(sc.DisplayLists, iframePipeline)
		}},
		{"no stacking context", func(t *testing.T, sc *scene.Scene) {
			list := displaylist.DisplayList{{Rect: pageBounds, Item: displaylist.RectangleItem{Color: red}}}
			sc.SetDisplayList(iframePipeline, 1, list, nil, geom.Sz(10, 10), nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
				clip := displaylist.SimpleClip(pageBounds)
				b.PushIframe(geom.NewRect(0, 0, 100, 100), clip, iframePipeline)
				b.PushRect(geom.NewRect(0, 0, 10, 10), clip, red)
			})
			tt.setup(t, sc)

			f := create(t, primitive.DefaultConfig(), sc, resource.New())
			if len(instances(f)) != 1 {
				t.Errorf("len(Instances()) = %d, want 1", len(instances(f)))
			}
			if f.Tree().Len() != 2 {
				t.Errorf("tree Len() = %d, want 2", f.Tree().Len())
			}
			if _, ok := f.PipelineEpochs()[iframePipeline]; ok {
				t.Error("omitted iframe recorded an epoch")
			}
		})
	}
}

func TestRectangleClipSplit(t *testing.T) {
	rect := geom.NewRect(0, 0, 100, 100)
	tests := []struct {
		name    string
		complex []displaylist.ComplexClipRegion
		mask    *displaylist.ImageMask
		want    int
	}{
		{"simple clip", nil, nil, 1},
		{"rounded clip", []displaylist.ComplexClipRegion{{Rect: rect, Radii: geom.UniformRadius(10)}}, nil, 5},
		{"image mask", nil, &displaylist.ImageMask{Image: 1, Rect: rect}, 1},
		{"corners overlap", []displaylist.ComplexClipRegion{{Rect: geom.NewRect(0, 0, 10, 10), Radii: geom.UniformRadius(100)}}, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var clip displaylist.ClipRegion
			sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
				clip = b.NewClipRegion(rect, tt.complex, tt.mask)
				b.PushRect(rect, clip, red)
			})
			f := create(t, primitive.DefaultConfig(), sc, resource.New())
			inst := instances(f)
			if len(inst) != tt.want {
				t.Fatalf("len(Instances()) = %d, want %d", len(inst), tt.want)
			}

			var area float64
			for _, p := range inst {
				area += p.Rect.Area()
			}
			if math.Abs(area-rect.Area()) > 1e-9 {
				t.Errorf("total area = %v, want %v", area, rect.Area())
			}
			if tt.want == 5 {
				if want := geom.NewRect(3, 3, 94, 94); inst[0].Rect != want || inst[0].Clip.IsComplex() {
					t.Errorf("opaque part = %v (complex clip %v), want %v with a simple clip", inst[0].Rect, inst[0].Clip.IsComplex(), want)
				}
				for _, p := range inst[1:] {
					if p.Clip != clip {
						t.Errorf("fragment %v clip = %+v, want the full clip", p.Rect, p.Clip)
					}
				}
			}
		})
	}
}

func TestZeroAreaRectangleDropped(t *testing.T) {
	tests := []struct {
		name    string
		rect    geom.Rect
		complex []displaylist.ComplexClipRegion
	}{
		{"zero height", geom.NewRect(10, 10, 100, 0), nil},
		{"zero width", geom.NewRect(10, 10, 0, 100), nil},
		{"zero height rounded clip", geom.NewRect(10, 10, 100, 0),
			[]displaylist.ComplexClipRegion{{Rect: geom.NewRect(0, 0, 200, 200), Radii: geom.UniformRadius(10)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
				clip := displaylist.SimpleClip(pageBounds)
				if tt.complex != nil {
					clip = b.NewClipRegion(pageBounds, tt.complex, nil)
				}
				b.PushRect(tt.rect, clip, red)
			})
			f := create(t, primitive.DefaultConfig(), sc, resource.New())
			if inst := instances(f); len(inst) != 0 {
				t.Errorf("len(Instances()) = %d, want 0", len(inst))
			}
		})
	}
}

func TestScrollbar(t *testing.T) {
	sc := newScene(t, geom.NewRect(0, 0, 800, 2000), nil, func(b *displaylist.Builder) {
		b.PushRect(geom.NewRect(0, 0, 10, 10), displaylist.SimpleClip(pageBounds), red)
	})
	f := create(t, primitive.Config{EnableScrollbars: true}, sc, resource.New())

	inst := instances(f)
	if len(inst) != 2 {
		t.Fatalf("len(Instances()) = %d, want 2", len(inst))
	}
	bar := inst[1]
	if !bar.Flags.IsScrollbar() || bar.Flags.ScrollbarOwner != displaylist.RootScrollLayer(rootPipeline) || bar.Flags.ScrollbarRadius != 4 {
		t.Errorf("scrollbar flags = %+v", bar.Flags)
	}
	if bar.Rect != geom.NewRect(0, 0, 10, 70) {
		t.Errorf("scrollbar rect = %v, want (0, 0, 10, 70)", bar.Rect)
	}
	if got := bar.Primitive.(primitive.Rectangle).Color; got != (displaylist.ColorF{R: 0.3, G: 0.3, B: 0.3, A: 0.6}) {
		t.Errorf("scrollbar color = %v", got)
	}
}

func TestPrimitivePassThrough(t *testing.T) {
	sc := newScene(t, pageBounds, nil, func(b *displaylist.Builder) {
		clip := displaylist.SimpleClip(pageBounds)
		r := geom.NewRect(0, 0, 50, 50)
		b.PushYUVImage(r, clip, 1, 2, 3, displaylist.YUVColorSpaceRec709)
		b.PushText(r, clip, []displaylist.GlyphInstance{{Index: 1}}, 4, red, 12, 0, nil)
		b.PushGradient(r, clip, geom.Pt(0, 0), geom.Pt(0, 50), []displaylist.GradientStop{{Offset: 0, Color: red}, {Offset: 1, Color: white}}, displaylist.ExtendClamp)
		b.PushRadialGradient(r, clip, displaylist.RadialGradient{EndRadius: 25}, []displaylist.GradientStop{{Offset: 1, Color: red}})
		b.PushBoxShadow(r, clip, displaylist.BoxShadowItem{BoxBounds: r, Color: red, BlurRadius: 2, ClipMode: displaylist.BoxShadowClipOutset})
		b.PushBorder(r, clip, displaylist.BorderItem{Widths: geom.UniformSideOffsets(1)})
		b.PushWebGL(r, clip, 9)
	})
	f := create(t, primitive.DefaultConfig(), sc, resource.New())

	want := []primitive.Kind{
		primitive.KindYUVImage,
		primitive.KindText,
		primitive.KindGradient,
		primitive.KindRadialGradient,
		primitive.KindBoxShadow,
		primitive.KindBorder,
		primitive.KindWebGL,
	}
	inst := instances(f)
	if len(inst) != len(want) {
		t.Fatalf("len(Instances()) = %d, want %d", len(inst), len(want))
	}
	for i, k := range want {
		if inst[i].Kind() != k {
			t.Errorf("Instances()[%d].Kind() = %v, want %v", i, inst[i].Kind(), k)
		}
	}
	if g := inst[2].Primitive.(primitive.Gradient); g.Stops.Length != 2 {
		t.Errorf("gradient stops = %+v, want 2", g.Stops)
	}
}

func TestCompositeOps(t *testing.T) {
	tests := []struct {
		name   string
		filter displaylist.FilterOp
		want   []primitive.LowLevelFilterOp
	}{
		{"blur", displaylist.Blur(2), []primitive.LowLevelFilterOp{
			{Kind: primitive.FilterBlur, Amount: 128, Axis: primitive.AxisHorizontal},
			{Kind: primitive.FilterBlur, Amount: 128, Axis: primitive.AxisVertical},
		}},
		{"brightness", displaylist.Brightness(1.5), []primitive.LowLevelFilterOp{{Kind: primitive.FilterBrightness, Amount: 96}}},
		{"hue rotate", displaylist.HueRotate(0.5), []primitive.LowLevelFilterOp{{Kind: primitive.FilterHueRotate, Angle: 32768}}},
		{"opacity", displaylist.Opacity(displaylist.BindValue(0.25)), []primitive.LowLevelFilterOp{{Kind: primitive.FilterOpacity, Amount: 16}}},
		{"sepia", displaylist.Sepia(1), []primitive.LowLevelFilterOp{{Kind: primitive.FilterSepia, Amount: 64}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &flattenContext{
				scene:    scene.New(),
				auxLists: displaylist.AuxiliaryListsMap{rootPipeline: {Filters: []displaylist.FilterOp{tt.filter}}},
			}
			sc := &displaylist.StackingContext{Filters: displaylist.ItemRange{Length: 1}}
			got := c.compositeOps(rootPipeline, sc)
			if len(got.Filters) != len(tt.want) {
				t.Fatalf("Filters = %+v, want %+v", got.Filters, tt.want)
			}
			for i := range tt.want {
				if got.Filters[i] != tt.want[i] {
					t.Errorf("Filters[%d] = %+v, want %+v", i, got.Filters[i], tt.want[i])
				}
			}
			if got.MixBlendMode != nil {
				t.Errorf("MixBlendMode = %v, want nil", *got.MixBlendMode)
			}
		})
	}
}

func TestCompositeOpsBlendMode(t *testing.T) {
	c := &flattenContext{scene: scene.New(), auxLists: displaylist.AuxiliaryListsMap{rootPipeline: {}}}
	got := c.compositeOps(rootPipeline, &displaylist.StackingContext{MixBlendMode: displaylist.MixBlendScreen})
	if got.MixBlendMode == nil || *got.MixBlendMode != displaylist.MixBlendScreen {
		t.Errorf("MixBlendMode = %v, want Screen", got.MixBlendMode)
	}
	if !c.compositeOps(rootPipeline, &displaylist.StackingContext{}).IsEmpty() {
		t.Error("normal blending produced composite ops")
	}
}

func TestMissingAuxiliaryListsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("compositeOps() with missing auxiliary lists did not panic")
		}
	}()
	c := &flattenContext{scene: scene.New(), auxLists: displaylist.AuxiliaryListsMap{}}
	c.compositeOps(rootPipeline, &displaylist.StackingContext{})
}
