package resource

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/frame/displaylist"
)

// ImageDescriptor describes the pixel layout of an image template.
type ImageDescriptor struct {
	Width  uint32
	Height uint32

	// Stride is the number of bytes per row. Zero means rows are tightly
	// packed.
	Stride uint32

	Format   gputypes.TextureFormat
	IsOpaque bool
}

// BytesPerPixel returns the size of one pixel in the descriptor's format.
// Unknown formats report 4.
func (d ImageDescriptor) BytesPerPixel() uint32 {
	switch d.Format {
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 4
	}
}

// RowBytes returns the effective stride.
func (d ImageDescriptor) RowBytes() uint32 {
	if d.Stride != 0 {
		return d.Stride
	}
	return d.Width * d.BytesPerPixel()
}

// ByteSize returns the number of bytes the image data must hold.
func (d ImageDescriptor) ByteSize() uint64 {
	if d.Height == 0 {
		return 0
	}
	return uint64(d.RowBytes())*uint64(d.Height-1) + uint64(d.Width)*uint64(d.BytesPerPixel())
}

// placeholderDescriptor is reported for image keys the cache does not know.
var placeholderDescriptor = ImageDescriptor{
	Width:  1,
	Height: 1,
	Format: gputypes.TextureFormatRGBA8Unorm,
}

// ImageProperties is what frame building needs to know about an image.
type ImageProperties struct {
	Descriptor ImageDescriptor

	// TileSize is the edge length of the square tiles the image is stored
	// as, or zero if the image is stored in one piece.
	TileSize uint32
}

// Tiled reports whether the image is stored as a grid of tiles.
func (p ImageProperties) Tiled() bool {
	return p.TileSize > 0
}

// TileCount returns the number of tile columns and rows, including partial
// tiles on the right and bottom edges.
func (p ImageProperties) TileCount() (cols, rows uint32) {
	if !p.Tiled() {
		return 1, 1
	}
	ts := p.TileSize
	return (p.Descriptor.Width + ts - 1) / ts, (p.Descriptor.Height + ts - 1) / ts
}

// TileRect returns the pixel origin and size of one tile. The last result
// is false if the offset lies outside the image.
func (p ImageProperties) TileRect(t displaylist.TileOffset) (x, y, w, h uint32, ok bool) {
	d := p.Descriptor
	if !p.Tiled() {
		if t != (displaylist.TileOffset{}) {
			return 0, 0, 0, 0, false
		}
		return 0, 0, d.Width, d.Height, true
	}
	x = uint32(t.X) * p.TileSize
	y = uint32(t.Y) * p.TileSize
	if x >= d.Width || y >= d.Height {
		return 0, 0, 0, 0, false
	}
	return x, y, min(p.TileSize, d.Width-x), min(p.TileSize, d.Height-y), true
}

// image is a registered image template.
type image struct {
	desc ImageDescriptor
	data []byte

	// tileSize is zero for untiled images.
	tileSize uint32

	// explicitTiling records that the client chose the tile size, so it is
	// kept across updates instead of being recomputed.
	explicitTiling bool

	// generation increases on every update and invalidates cached tiles.
	generation uint32
}

func (img *image) properties() ImageProperties {
	return ImageProperties{Descriptor: img.desc, TileSize: img.tileSize}
}
