// Command framedump builds a frame from a demo scene and prints the
// resulting primitives.
//
// The scene has a scrollable root page with a fixed header, a transformed
// card, an oversized image stored as tiles and an embedded iframe.
package main

import (
	"cmp"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
	"github.com/gogpu/frame/primitive"
	"github.com/gogpu/frame/resource"
	"github.com/gogpu/frame/scene"
)

var (
	rootPipeline   = displaylist.PipelineID{Namespace: 0, Index: 1}
	iframePipeline = displaylist.PipelineID{Namespace: 0, Index: 2}
)

const bigImage displaylist.ImageKey = 1

func main() {
	var (
		width     = flag.Uint("width", 800, "window width in device pixels")
		height    = flag.Uint("height", 600, "window height in device pixels")
		dpr       = flag.Float64("dpr", 1, "device pixel ratio")
		scrollY   = flag.Float64("scroll", 0, "vertical scroll of the root page")
		tileSize  = flag.Uint("tile", 512, "tile size of the oversized image")
		scrollbar = flag.Bool("scrollbars", false, "draw scrollbar indicators")
		overdraw  = flag.Bool("overdraw", false, "report overdraw area")
		verbose   = flag.Bool("v", false, "log frame building")
	)
	flag.Parse()

	if *verbose {
		frame.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	rc := resource.New(resource.WithTileSize(uint32(*tileSize)))
	if err := rc.AddImage(bigImage, resource.ImageDescriptor{Width: 3000, Height: 1200}, nil, 0); err != nil {
		log.Fatalf("add image: %v", err)
	}

	sc, err := demoScene()
	if err != nil {
		log.Fatalf("build scene: %v", err)
	}

	cfg := primitive.DefaultConfig()
	cfg.EnableScrollbars = *scrollbar
	cfg.DebugOverdraw = *overdraw

	window := geom.DeviceSize{W: uint32(*width), H: uint32(*height)}
	f := frame.New(cfg)
	if err := f.Create(sc, rc, window, geom.DeviceRect{W: window.W, H: window.H}, *dpr); err != nil {
		log.Fatalf("create frame: %v", err)
	}
	if *scrollY != 0 {
		f.ScrollNodes(geom.Pt(0, *scrollY), displaylist.RootScrollLayer(rootPipeline))
	}

	var counters primitive.ProfileCounters
	out := f.Build(rc, nil, *dpr, geom.Point{}, &counters)

	if err := dump(os.Stdout, out, counters); err != nil {
		log.Fatalf("write: %v", err)
	}
}

func demoScene() (*scene.Scene, error) {
	sc := scene.New()
	page := geom.NewRect(0, 0, 800, 3000)
	white := displaylist.ColorF{R: 1, G: 1, B: 1, A: 1}

	b := displaylist.NewBuilder(rootPipeline)
	clip := displaylist.SimpleClip(page)
	b.PushStackingContext(page, clip, displaylist.StackingContext{})

	b.PushStackingContext(geom.NewRect(0, 0, 800, 60), clip, displaylist.StackingContext{ScrollPolicy: displaylist.ScrollPolicyFixed})
	b.PushRect(geom.NewRect(0, 0, 800, 60), clip, displaylist.ColorF{R: 0.2, G: 0.2, B: 0.3, A: 1})
	b.PopStackingContext()

	rotate := displaylist.BindValue(geom.Rotation(0.1))
	card := geom.NewRect(40, 100, 300, 200)
	b.PushStackingContext(card, clip, displaylist.StackingContext{Transform: &rotate}, displaylist.Opacity(displaylist.BindValue(0.9)))
	rounded := b.NewClipRegion(geom.RectFromSize(card.Size()),
		[]displaylist.ComplexClipRegion{{Rect: geom.RectFromSize(card.Size()), Radii: geom.UniformRadius(12)}}, nil)
	b.PushRect(geom.RectFromSize(card.Size()), rounded, displaylist.ColorF{R: 0.9, G: 0.4, B: 0.1, A: 1})
	b.PushBoxShadow(geom.RectFromSize(card.Size()), clip, displaylist.BoxShadowItem{
		BoxBounds:  geom.RectFromSize(card.Size()),
		Offset:     geom.Pt(4, 4),
		Color:      displaylist.ColorF{A: 0.5},
		BlurRadius: 8,
		ClipMode:   displaylist.BoxShadowClipOutset,
	})
	b.PopStackingContext()

	imageRect := geom.NewRect(0, 400, 1500, 600)
	b.PushImage(imageRect, displaylist.SimpleClip(imageRect), imageRect.Size(), geom.Size{}, displaylist.ImageRenderingAuto, bigImage)

	b.PushIframe(geom.NewRect(400, 1100, 300, 200), clip, iframePipeline)
	b.PopStackingContext()
	list, aux, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	sc.SetDisplayList(rootPipeline, 1, list, aux, geom.Sz(800, 600), &white)

	inner := geom.NewRect(0, 0, 300, 400)
	ib := displaylist.NewBuilder(iframePipeline)
	ib.PushStackingContext(inner, displaylist.SimpleClip(inner), displaylist.StackingContext{})
	ib.PushGradient(inner, displaylist.SimpleClip(inner), geom.Pt(0, 0), geom.Pt(0, 400), []displaylist.GradientStop{
		{Offset: 0, Color: displaylist.ColorF{B: 1, A: 1}},
		{Offset: 1, Color: white},
	}, displaylist.ExtendClamp)
	ib.PopStackingContext()
	list, aux, err = ib.Finalize()
	if err != nil {
		return nil, err
	}
	sc.SetDisplayList(iframePipeline, 1, list, aux, geom.Sz(300, 200), nil)

	sc.SetRootPipeline(rootPipeline)
	return sc, nil
}

func dump(w io.Writer, out frame.RenderableFrame, counters primitive.ProfileCounters) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "frame %d\t%dx%d @%gx\n", out.Frame.ID, out.Frame.WindowSize.W, out.Frame.WindowSize.H, out.Frame.DevicePixelRatio)
	fmt.Fprintln(tw, "KIND\tNODE\tSC\tWORLD RECT")
	for _, p := range out.Frame.Primitives {
		r := p.WorldRect
		fmt.Fprintf(tw, "%v\t%v\t%d\t%.1f,%.1f %.1fx%.1f\n", p.Kind(), p.ScrollLayerID, p.StackingContext, r.X, r.Y, r.W, r.H)
	}
	fmt.Fprintf(tw, "\nprimitives\t%d visible / %d total\n", counters.VisiblePrimitives, counters.TotalPrimitives)
	fmt.Fprintf(tw, "image requests\t%d (%d uploads, %d bytes)\n",
		counters.Resources.ImageRequests, counters.Resources.ImageUploads, counters.Resources.UploadedBytes)
	if counters.OverdrawArea > 0 {
		fmt.Fprintf(tw, "overdraw\t%.0f px\n", counters.OverdrawArea)
	}
	ids := slices.SortedFunc(maps.Keys(out.PipelineEpochs), func(a, b displaylist.PipelineID) int {
		return cmp.Or(cmp.Compare(a.Namespace, b.Namespace), cmp.Compare(a.Index, b.Index))
	})
	for _, id := range ids {
		fmt.Fprintf(tw, "epoch %v\t%d\n", id, out.PipelineEpochs[id])
	}
	if len(out.NodesBouncingBack) > 0 {
		fmt.Fprintf(tw, "bouncing\t%v\n", out.NodesBouncingBack)
	}
	return tw.Flush()
}
