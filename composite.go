package frame

import (
	"math"

	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/primitive"
)

// compositeOps resolves the filter chain and blend mode of a stacking
// context. Opacity bindings are resolved against the scene properties and
// default to fully opaque.
func (c *flattenContext) compositeOps(pipeline displaylist.PipelineID, sc *displaylist.StackingContext) primitive.CompositeOps {
	var mixBlend *displaylist.MixBlendMode
	if sc.MixBlendMode != displaylist.MixBlendNormal {
		m := sc.MixBlendMode
		mixBlend = &m
	}

	filters := c.auxiliaryLists(pipeline).FiltersFor(sc.Filters)
	if len(filters) == 0 {
		return primitive.NewCompositeOps(nil, mixBlend)
	}
	ops := make([]primitive.LowLevelFilterOp, 0, len(filters)+1)
	for _, f := range filters {
		opacity := 1.0
		if f.Kind == displaylist.FilterOpacity {
			opacity = c.scene.Properties.ResolveFloat(f.Opacity, 1.0)
		}
		ops = appendFilter(ops, f, opacity)
	}
	return primitive.NewCompositeOps(ops, mixBlend)
}

// appendFilter lowers one filter function. Blur becomes a horizontal and a
// vertical pass.
func appendFilter(ops []primitive.LowLevelFilterOp, f displaylist.FilterOp, opacity float64) []primitive.LowLevelFilterOp {
	switch f.Kind {
	case displaylist.FilterBlur:
		amount := primitive.ToFixed(f.Amount)
		return append(ops,
			primitive.LowLevelFilterOp{Kind: primitive.FilterBlur, Amount: amount, Axis: primitive.AxisHorizontal},
			primitive.LowLevelFilterOp{Kind: primitive.FilterBlur, Amount: amount, Axis: primitive.AxisVertical})
	case displaylist.FilterHueRotate:
		angle := int32(math.Round(f.Amount * primitive.AngleToFixed))
		return append(ops, primitive.LowLevelFilterOp{Kind: primitive.FilterHueRotate, Angle: angle})
	case displaylist.FilterOpacity:
		return append(ops, primitive.LowLevelFilterOp{Kind: primitive.FilterOpacity, Amount: primitive.ToFixed(opacity)})
	}

	kind, ok := lowLevelKinds[f.Kind]
	if !ok {
		return ops
	}
	return append(ops, primitive.LowLevelFilterOp{Kind: kind, Amount: primitive.ToFixed(f.Amount)})
}

var lowLevelKinds = map[displaylist.FilterKind]primitive.FilterKind{
	displaylist.FilterBrightness: primitive.FilterBrightness,
	displaylist.FilterContrast:   primitive.FilterContrast,
	displaylist.FilterGrayscale:  primitive.FilterGrayscale,
	displaylist.FilterInvert:     primitive.FilterInvert,
	displaylist.FilterSaturate:   primitive.FilterSaturate,
	displaylist.FilterSepia:      primitive.FilterSepia,
}
