// Package collide detects and resolves geometric overlaps between regions.
//
// Detection is a straight O(n²) pass over unordered pairs, which is fine for
// templates that rarely exceed a few hundred regions. Resolution is a
// deterministic left-to-right, top-to-bottom scan: when two regions overlap,
// the one appearing later in the list moves. Once a pass leaves no
// collisions, further passes are no-ops.
package collide

import (
	"github.com/sheetsmith/sheetsmith/pkg/geom"
	"github.com/sheetsmith/sheetsmith/pkg/sheet"
	"github.com/sheetsmith/sheetsmith/pkg/standards"
)

// Collision is a pair of overlapping regions, identified by their indices in
// the region list (A < B), plus the overlap area in mm².
type Collision struct {
	A, B    int
	Overlap float64
}

// Detect returns every pair of regions whose rectangles overlap by a
// positive area. Pairs are reported in scan order: (0,1), (0,2), (1,2), …
func Detect(regions []sheet.Region) []Collision {
	var out []Collision
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			overlap := geom.OverlapArea(regions[i].Bounds(), regions[j].Bounds())
			if overlap > 0 {
				out = append(out, Collision{A: i, B: j, Overlap: overlap})
			}
		}
	}
	return out
}

// Resolve repositions overlapping regions and returns a new region list; the
// input is never mutated.
//
// The scan is deterministic: for each colliding pair the earlier region
// stays put and the later one moves to the earlier region's right edge plus
// the profile's minimum spacing. If that would cross the right content
// margin, the moved region wraps to the left margin one row below the
// earlier region (row-wrap packing). Because moves only ever push regions
// rightward/downward relative to the anchor, a second call on a
// collision-free result moves nothing.
func Resolve(regions []sheet.Region, profile standards.Profile, page sheet.Page) []sheet.Region {
	out := sheet.CloneRegions(regions)
	spacing := profile.Bubble.MinSpacing
	rightEdge := page.Width - profile.Margins.Right

	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if geom.OverlapArea(out[i].Bounds(), out[j].Bounds()) == 0 {
				continue
			}
			a := out[i]
			x := a.X + a.Width + spacing
			if x+out[j].Width > rightEdge {
				out[j].X = profile.Margins.Left
				out[j].Y = a.Y + a.Height + spacing
			} else {
				out[j].X = x
			}
		}
	}
	return out
}
