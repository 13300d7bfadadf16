package frame

import (
	"math"

	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
	"github.com/gogpu/frame/resource"
)

// Image tiling
//
// An image stored as a grid of tiles cannot be sampled as one texture, so
// one primitive is emitted per tile:
//
//	+----+----+--+
//	|    |    |//|   regular tiles
//	+----+----+--+
//	|    |    |//|   right column: leftover width
//	+----+----+--+
//	|////|////|//|   bottom row: leftover height
//	+----+----+--+
//
// Repetition of the image across the item (stretch size smaller than the
// item) is decomposed into one sub-rectangle per repeat along every axis
// that is tiled or has spacing. Along the other axes repetition is left to
// the shader.

// decomposeImage splits the item into vertical repeats.
func (c *flattenContext) decomposeImage(scrollID displaylist.ScrollLayerID, item *displaylist.DisplayItem, info displaylist.ImageItem, props resource.ImageProperties) {
	imageH := props.Descriptor.Height
	if imageH <= props.TileSize && info.TileSpacing.H == 0 {
		c.decomposeImageRow(scrollID, item.Rect, item.Clip, info, props)
		return
	}

	stride := info.StretchSize.H + info.TileSpacing.H
	if stride <= 0 {
		return
	}
	rect := item.Rect
	n := int(math.Ceil(rect.H / stride))
	for i := range n {
		row := geom.NewRect(rect.X, rect.Y+float64(i)*stride, rect.W, info.StretchSize.H)
		if r, ok := row.Intersection(rect); ok {
			c.decomposeImageRow(scrollID, r, item.Clip, info, props)
		}
	}
}

// decomposeImageRow splits one row into horizontal repeats.
func (c *flattenContext) decomposeImageRow(scrollID displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, info displaylist.ImageItem, props resource.ImageProperties) {
	imageW := props.Descriptor.Width
	if imageW <= props.TileSize && info.TileSpacing.W == 0 {
		c.decomposeTiledImage(scrollID, rect, clip, info, props)
		return
	}

	stride := info.StretchSize.W + info.TileSpacing.W
	if stride <= 0 {
		return
	}
	n := int(math.Ceil(rect.W / stride))
	for i := range n {
		col := geom.NewRect(rect.X+float64(i)*stride, rect.Y, info.StretchSize.W, rect.H)
		if r, ok := col.Intersection(rect); ok {
			c.decomposeTiledImage(scrollID, r, clip, info, props)
		}
	}
}

// tileGrid describes how one repeat of an image maps onto its tiles.
type tileGrid struct {
	rect    geom.Rect
	clip    displaylist.ClipRegion
	info    displaylist.ImageItem
	stretch geom.Size // layout size of a full tile

	repeatX, repeatY bool
}

// decomposeTiledImage emits one primitive per tile of a single repeat.
func (c *flattenContext) decomposeTiledImage(scrollID displaylist.ScrollLayerID, rect geom.Rect, clip displaylist.ClipRegion, info displaylist.ImageItem, props resource.ImageProperties) {
	tileSize := props.TileSize
	imgW, imgH := props.Descriptor.Width, props.Descriptor.Height
	tileF := float64(tileSize)

	g := tileGrid{
		rect: rect,
		clip: clip,
		info: info,
		stretch: geom.Sz(
			tileF/float64(imgW)*info.StretchSize.W,
			tileF/float64(imgH)*info.StretchSize.H,
		),
		// Axes without tiling repeat in the shader.
		repeatX: info.StretchSize.W < rect.W,
		repeatY: info.StretchSize.H < rect.H,
	}

	// Full tiles only; partial edge tiles are handled below.
	numX := uint16(imgW / tileSize)
	numY := uint16(imgH / tileSize)
	leftoverW := imgW % tileSize
	leftoverH := imgH % tileSize
	ratioW := float64(leftoverW) / tileF
	ratioH := float64(leftoverH) / tileF

	for ty := range numY {
		for tx := range numX {
			c.addTilePrimitive(scrollID, &g, displaylist.TileOffset{X: tx, Y: ty}, 1, 1)
		}
		if leftoverW != 0 {
			c.addTilePrimitive(scrollID, &g, displaylist.TileOffset{X: numX, Y: ty}, ratioW, 1)
		}
	}
	if leftoverH != 0 {
		for tx := range numX {
			c.addTilePrimitive(scrollID, &g, displaylist.TileOffset{X: tx, Y: numY}, 1, ratioH)
		}
		if leftoverW != 0 {
			c.addTilePrimitive(scrollID, &g, displaylist.TileOffset{X: numX, Y: numY}, ratioW, ratioH)
		}
	}
}

// addTilePrimitive emits one tile, scaled by the given ratios for partial
// edge tiles and clipped to the repeat rectangle.
func (c *flattenContext) addTilePrimitive(scrollID displaylist.ScrollLayerID, g *tileGrid, tile displaylist.TileOffset, ratioW, ratioH float64) {
	size := geom.Sz(g.stretch.W*ratioW, g.stretch.H*ratioH)
	prim := geom.NewRect(
		g.rect.X+float64(tile.X)*g.stretch.W,
		g.rect.Y+float64(tile.Y)*g.stretch.H,
		size.W, size.H,
	)
	if g.repeatX {
		prim.W = g.rect.W
	}
	if g.repeatY {
		prim.H = g.rect.H
	}

	r, ok := prim.Intersection(g.rect)
	if !ok {
		return
	}
	c.builder.AddImage(scrollID, r, g.clip, size, g.info.TileSpacing, nil, g.info.ImageKey, g.info.ImageRendering, &tile)
}
