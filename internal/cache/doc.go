// Package cache provides a generic LRU cache keyed by frame stamps.
//
// The resource cache uses it to hold rasterized images and glyphs that were
// requested while building a frame. Each request stamps the entry with the
// current frame id; once a frame is built, entries that no frame has asked
// for since an older id are expired in one pass from the cold end of the
// recency list.
//
//	c := cache.New[GlyphKey, *Glyph](4096)
//	c.GetOrCreate(key, frameID, rasterize)
//	c.ExpireBefore(frameID)
//
// # Thread Safety
//
// Cache is safe for concurrent use. It must not be copied after creation
// (it contains a mutex).
package cache
