package resource

// Option configures a Cache during creation.
//
// Example:
//
//	rc := resource.New(resource.WithMaxTextureSize(4096), resource.WithTileSize(256))
type Option func(*options)

// options holds optional configuration for Cache creation.
type options struct {
	maxTextureSize uint32
	tileSize       uint32
	glyphLimit     int
	imageLimit     int
}

// Defaults.
const (
	// DefaultMaxTextureSize is the largest image dimension stored untiled.
	DefaultMaxTextureSize = 2048

	// DefaultTileSize is the tile size given to images that exceed the
	// maximum texture size and were added without an explicit tile size.
	DefaultTileSize = 512

	defaultGlyphLimit = 4096
	defaultImageLimit = 1024
)

func defaultOptions() options {
	return options{
		maxTextureSize: DefaultMaxTextureSize,
		tileSize:       DefaultTileSize,
		glyphLimit:     defaultGlyphLimit,
		imageLimit:     defaultImageLimit,
	}
}

// WithMaxTextureSize sets the largest image dimension stored without
// tiling. Zero keeps the default.
func WithMaxTextureSize(size uint32) Option {
	return func(o *options) {
		if size > 0 {
			o.maxTextureSize = size
		}
	}
}

// WithTileSize sets the tile size used for automatically tiled images.
// Zero keeps the default.
func WithTileSize(size uint32) Option {
	return func(o *options) {
		if size > 0 {
			o.tileSize = size
		}
	}
}

// WithCacheLimits sets soft limits on the number of cached image tiles and
// glyphs kept between frames. Zero means unlimited.
func WithCacheLimits(images, glyphs int) Option {
	return func(o *options) {
		o.imageLimit = images
		o.glyphLimit = glyphs
	}
}
