package displaylist

import (
	"github.com/go-text/typesetting/font"

	"github.com/gogpu/frame/geom"
)

// ItemRange addresses a contiguous run of entries in one of the auxiliary
// lists. The zero value is the empty range.
type ItemRange struct {
	Start  int
	Length int
}

// IsEmpty reports whether the range has no entries.
func (r ItemRange) IsEmpty() bool {
	return r.Length == 0
}

// GradientStop is one colour stop of a linear or radial gradient.
type GradientStop struct {
	Offset float64
	Color  ColorF
}

// GlyphInstance positions one shaped glyph.
type GlyphInstance struct {
	Index font.GID
	Point geom.Point
}

// AuxiliaryLists holds the out-of-line payload of one pipeline's display
// list: gradient stops, complex clip regions, filter chains and glyph runs.
// Display items reference entries through ItemRange values.
type AuxiliaryLists struct {
	GradientStops      []GradientStop
	ComplexClipRegions []ComplexClipRegion
	Filters            []FilterOp
	Glyphs             []GlyphInstance
}

// GradientStopsFor returns the stops addressed by r.
func (a *AuxiliaryLists) GradientStopsFor(r ItemRange) []GradientStop {
	return rangeOf(a.GradientStops, r)
}

// ComplexClipRegionsFor returns the complex clip regions addressed by r.
func (a *AuxiliaryLists) ComplexClipRegionsFor(r ItemRange) []ComplexClipRegion {
	return rangeOf(a.ComplexClipRegions, r)
}

// FiltersFor returns the filter chain addressed by r.
func (a *AuxiliaryLists) FiltersFor(r ItemRange) []FilterOp {
	return rangeOf(a.Filters, r)
}

// GlyphsFor returns the glyph run addressed by r.
func (a *AuxiliaryLists) GlyphsFor(r ItemRange) []GlyphInstance {
	return rangeOf(a.Glyphs, r)
}

// rangeOf returns the sub-slice addressed by r, clamped to the slice bounds.
func rangeOf[E any](s []E, r ItemRange) []E {
	if r.Length <= 0 || r.Start < 0 || r.Start >= len(s) {
		return nil
	}
	end := min(r.Start+r.Length, len(s))
	return s[r.Start:end:end]
}

// AuxiliaryListsMap maps each pipeline to its auxiliary lists.
type AuxiliaryListsMap map[PipelineID]*AuxiliaryLists
