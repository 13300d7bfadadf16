// Package resource implements the resource cache consulted while building
// frames: the registry of image templates with their tiling policy, and
// the per-frame store of image tiles and glyphs requested for rendering.
//
// Image lookups never fail. Unknown keys yield a 1x1 placeholder so that
// frame building can proceed; the missing image simply renders nothing.
//
// Every request made while a frame is being built is stamped with that
// frame's id. ExpireOldResources drops whatever the most recent frame did
// not ask for.
package resource

import (
	"errors"
	"math"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/internal/cache"
)

// FrameID identifies one built frame. It increases by one every time the
// frame is rebuilt from the scene.
type FrameID uint32

// Errors returned by image registration.
var (
	// ErrInvalidImageSize is returned for images with a zero dimension.
	ErrInvalidImageSize = errors.New("resource: image has zero width or height")

	// ErrDuplicateImageKey is returned when adding an image whose key is
	// already registered.
	ErrDuplicateImageKey = errors.New("resource: image key already registered")

	// ErrUnknownImageKey is returned when updating or deleting an image
	// that was never added.
	ErrUnknownImageKey = errors.New("resource: unknown image key")

	// ErrShortImageData is returned when the pixel data is smaller than
	// the descriptor requires.
	ErrShortImageData = errors.New("resource: image data shorter than descriptor")
)

// ImageRequest identifies one cached image tile.
type ImageRequest struct {
	Key       displaylist.ImageKey
	Rendering displaylist.ImageRendering
	Tile      displaylist.TileOffset
}

// CachedImage is a resident image tile.
type CachedImage struct {
	Request ImageRequest

	// Pixel rectangle of the tile within the image.
	X, Y, Width, Height uint32

	// Generation is the image template generation the tile was made from.
	Generation uint32
}

// GlyphRequest identifies one cached glyph rasterization.
type GlyphRequest struct {
	Font       displaylist.FontKey
	Size       fixed.Int26_6
	Index      font.GID
	SubpixelAA bool
}

// CachedGlyph is a resident glyph.
type CachedGlyph struct {
	Request GlyphRequest
}

// ProfileCounters reports resource traffic of the current frame.
type ProfileCounters struct {
	ImageRequests int
	GlyphRequests int

	// ImageUploads and GlyphUploads count requests that missed the cache.
	ImageUploads int
	GlyphUploads int

	// UploadedBytes is the pixel data size of uploaded image tiles.
	UploadedBytes uint64

	// The remaining fields describe the caches themselves and accumulate
	// over the cache's lifetime.
	ResidentTiles  int
	ResidentGlyphs int
	TileHitRate    float64
	GlyphHitRate   float64
	Evictions      uint64
}

// Cache is the resource cache. It is not safe for concurrent use: frame
// building owns it exclusively for the duration of each call.
type Cache struct {
	opts   options
	images map[displaylist.ImageKey]*image

	tiles  *cache.Cache[ImageRequest, *CachedImage]
	glyphs *cache.Cache[GlyphRequest, *CachedGlyph]

	frame    FrameID
	counters ProfileCounters
}

// New creates an empty resource cache.
func New(opts ...Option) *Cache {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache{
		opts:   o,
		images: make(map[displaylist.ImageKey]*image),
		tiles:  cache.New[ImageRequest, *CachedImage](o.imageLimit),
		glyphs: cache.New[GlyphRequest, *CachedGlyph](o.glyphLimit),
	}
}

// MaxTextureSize returns the largest image dimension stored untiled.
func (c *Cache) MaxTextureSize() uint32 {
	return c.opts.maxTextureSize
}

// AddImage registers an image template. tileSize selects explicit tiling;
// zero lets the cache tile the image only if it exceeds the maximum
// texture size. data may be nil for externally backed images.
func (c *Cache) AddImage(key displaylist.ImageKey, desc ImageDescriptor, data []byte, tileSize uint32) error {
	if _, ok := c.images[key]; ok {
		return ErrDuplicateImageKey
	}
	if err := validate(desc, data); err != nil {
		return err
	}
	img := &image{
		desc:           desc,
		data:           data,
		tileSize:       tileSize,
		explicitTiling: tileSize > 0,
	}
	if !img.explicitTiling {
		img.tileSize = c.autoTileSize(desc)
	}
	c.images[key] = img
	return nil
}

// UpdateImage replaces an image's pixels and descriptor. Cached tiles of
// the previous contents are dropped.
func (c *Cache) UpdateImage(key displaylist.ImageKey, desc ImageDescriptor, data []byte) error {
	img, ok := c.images[key]
	if !ok {
		return ErrUnknownImageKey
	}
	if err := validate(desc, data); err != nil {
		return err
	}
	img.desc = desc
	img.data = data
	img.generation++
	if !img.explicitTiling {
		img.tileSize = c.autoTileSize(desc)
	}
	c.dropTiles(key)
	return nil
}

// DeleteImage forgets an image and its cached tiles.
func (c *Cache) DeleteImage(key displaylist.ImageKey) error {
	if _, ok := c.images[key]; !ok {
		return ErrUnknownImageKey
	}
	delete(c.images, key)
	c.dropTiles(key)
	return nil
}

// ImageProperties returns the descriptor and tiling of an image. Unknown
// keys yield an untiled 1x1 placeholder.
func (c *Cache) ImageProperties(key displaylist.ImageKey) ImageProperties {
	img, ok := c.images[key]
	if !ok {
		return ImageProperties{Descriptor: placeholderDescriptor}
	}
	return img.properties()
}

// BeginFrame starts stamping requests with id and resets the counters.
func (c *Cache) BeginFrame(id FrameID) {
	c.frame = id
	c.counters = ProfileCounters{}
}

// CurrentFrame returns the id requests are stamped with.
func (c *Cache) CurrentFrame() FrameID {
	return c.frame
}

// Counters returns the resource traffic since the last BeginFrame.
func (c *Cache) Counters() ProfileCounters {
	p := c.counters
	tiles, glyphs := c.tiles.Stats(), c.glyphs.Stats()
	p.ResidentTiles, p.ResidentGlyphs = tiles.Len, glyphs.Len
	p.TileHitRate, p.GlyphHitRate = tiles.HitRate, glyphs.HitRate
	p.Evictions = tiles.Evictions + glyphs.Evictions
	return p
}

// RequestImage marks an image tile as used by the current frame, making it
// resident if needed. Untiled images are requested with a nil tile. The
// result is false for unknown keys and out-of-range tiles.
func (c *Cache) RequestImage(key displaylist.ImageKey, rendering displaylist.ImageRendering, tile *displaylist.TileOffset) (*CachedImage, bool) {
	c.counters.ImageRequests++

	img, ok := c.images[key]
	if !ok {
		return nil, false
	}
	req := ImageRequest{Key: key, Rendering: rendering}
	if tile != nil {
		req.Tile = *tile
	}
	x, y, w, h, ok := img.properties().TileRect(req.Tile)
	if !ok {
		return nil, false
	}

	stamp := uint64(c.frame)
	if cached, ok := c.tiles.Get(req, stamp); ok && cached.Generation == img.generation {
		return cached, true
	}
	cached := &CachedImage{
		Request:    req,
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		Generation: img.generation,
	}
	c.tiles.Set(req, cached, stamp)
	c.counters.ImageUploads++
	c.counters.UploadedBytes += uint64(w) * uint64(h) * uint64(img.desc.BytesPerPixel())
	return cached, true
}

// RequestGlyphs marks a glyph run as used by the current frame and returns
// the number of glyphs that had to be rasterized.
func (c *Cache) RequestGlyphs(fontKey displaylist.FontKey, size float64, glyphs []displaylist.GlyphInstance, subpixelAA bool) int {
	c.counters.GlyphRequests += len(glyphs)

	fixedSize := fixed.Int26_6(math.Round(size * 64))
	stamp := uint64(c.frame)
	misses := 0
	for _, g := range glyphs {
		req := GlyphRequest{Font: fontKey, Size: fixedSize, Index: g.Index, SubpixelAA: subpixelAA}
		c.glyphs.GetOrCreate(req, stamp, func() *CachedGlyph {
			misses++
			return &CachedGlyph{Request: req}
		})
	}
	c.counters.GlyphUploads += misses
	return misses
}

// ExpireOldResources drops cached tiles and glyphs that no request has
// touched since frame id. It returns the number of entries dropped.
func (c *Cache) ExpireOldResources(id FrameID) int {
	return c.tiles.ExpireBefore(uint64(id)) + c.glyphs.ExpireBefore(uint64(id))
}

// ResidentImages returns the number of cached image tiles.
func (c *Cache) ResidentImages() int {
	return c.tiles.Len()
}

// ResidentGlyphs returns the number of cached glyphs.
func (c *Cache) ResidentGlyphs() int {
	return c.glyphs.Len()
}

func (c *Cache) autoTileSize(desc ImageDescriptor) uint32 {
	if desc.Width > c.opts.maxTextureSize || desc.Height > c.opts.maxTextureSize {
		return c.opts.tileSize
	}
	return 0
}

func (c *Cache) dropTiles(key displaylist.ImageKey) {
	c.tiles.DeleteFunc(func(r ImageRequest) bool { return r.Key == key })
}

func validate(desc ImageDescriptor, data []byte) error {
	if desc.Width == 0 || desc.Height == 0 {
		return ErrInvalidImageSize
	}
	if data != nil && uint64(len(data)) < desc.ByteSize() {
		return ErrShortImageData
	}
	return nil
}
