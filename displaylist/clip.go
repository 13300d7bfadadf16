package displaylist

import (
	"math"

	"github.com/gogpu/frame/geom"
)

// ClipRegion defines the visible area of an item and all of its
// descendants: the main rectangle intersected with every complex
// (rounded) region and, if present, an image mask.
type ClipRegion struct {
	Main      geom.Rect
	Complex   ItemRange
	ImageMask *ImageMask
}

// SimpleClip returns a clip region consisting of a single rectangle.
func SimpleClip(rect geom.Rect) ClipRegion {
	return ClipRegion{Main: rect}
}

// IsComplex reports whether the region needs more than a rectangle test.
func (c ClipRegion) IsComplex() bool {
	return c.Complex.Length > 0 || c.ImageMask != nil
}

// ComplexClipRegion is a rounded rectangle clip.
type ComplexClipRegion struct {
	Rect  geom.Rect
	Radii geom.BorderRadius
}

// innerRectFactor is slightly larger than 1 - sqrt(0.5), the fraction of a
// corner radius that a circular arc can bulge into the rectangle.
const innerRectFactor = 0.3

// InnerRect returns a rectangle fully inside the rounded region, obtained
// by pulling each edge in by a fraction of the largest adjoining corner
// radius. The second result is false if the corners overlap so much that
// no such rectangle exists.
func (c ComplexClipRegion) InnerRect() (geom.Rect, bool) {
	r := c.Radii
	xl := c.Rect.X + innerRectFactor*math.Max(r.TopLeft.W, r.BottomLeft.W)
	xr := c.Rect.Right() - innerRectFactor*math.Max(r.TopRight.W, r.BottomRight.W)
	yt := c.Rect.Y + innerRectFactor*math.Max(r.TopLeft.H, r.TopRight.H)
	yb := c.Rect.Bottom() - innerRectFactor*math.Max(r.BottomLeft.H, r.BottomRight.H)
	if xl > xr || yt > yb {
		return geom.Rect{}, false
	}
	return geom.NewRect(xl, yt, xr-xl, yb-yt), true
}

// ImageMask clips content by the alpha channel of an image.
type ImageMask struct {
	Image  ImageKey
	Rect   geom.Rect
	Repeat bool
}
