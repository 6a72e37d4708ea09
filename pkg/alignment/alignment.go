// Package alignment aligns or distributes a selected set of regions.
//
// Alignment snaps every region's edge or center to a reference line derived
// from the set itself (min edge, mean center, or max edge). Distribution
// spreads the regions so the gaps between consecutive edges are equal.
// Horizontal and vertical passes are independent and may be combined in one
// call. A selection of fewer than two regions is a no-op, not an error.
package alignment

import (
	"sort"

	"github.com/sheetsmith/sheetsmith/pkg/sheet"
)

// HMode is a horizontal alignment mode.
type HMode string

// Horizontal modes.
const (
	HLeft       HMode = "left"
	HCenter     HMode = "center"
	HRight      HMode = "right"
	HDistribute HMode = "distribute"
)

// VMode is a vertical alignment mode.
type VMode string

// Vertical modes.
const (
	VTop        VMode = "top"
	VMiddle     VMode = "middle"
	VBottom     VMode = "bottom"
	VDistribute VMode = "distribute"
)

// Options selects the passes to run. Zero values skip the corresponding
// axis. Spacing, when positive, overrides the computed even gap in
// distribute modes.
type Options struct {
	Horizontal HMode
	Vertical   VMode
	Spacing    float64
}

// Align applies the requested passes and returns a new region list in the
// input order; the input is never mutated. Fewer than two regions are
// returned unchanged.
func Align(regions []sheet.Region, opts Options) []sheet.Region {
	out := sheet.CloneRegions(regions)
	if len(out) < 2 {
		return out
	}

	switch opts.Horizontal {
	case HLeft:
		ref := minOver(out, func(r sheet.Region) float64 { return r.X })
		for i := range out {
			out[i].X = ref
		}
	case HCenter:
		ref := meanOver(out, func(r sheet.Region) float64 { return r.Bounds().CenterX() })
		for i := range out {
			out[i].X = ref - out[i].Width/2
		}
	case HRight:
		ref := maxOver(out, func(r sheet.Region) float64 { return r.X + r.Width })
		for i := range out {
			out[i].X = ref - out[i].Width
		}
	case HDistribute:
		distribute(out, opts.Spacing,
			func(r *sheet.Region) *float64 { return &r.X },
			func(r sheet.Region) float64 { return r.Width })
	}

	switch opts.Vertical {
	case VTop:
		ref := minOver(out, func(r sheet.Region) float64 { return r.Y })
		for i := range out {
			out[i].Y = ref
		}
	case VMiddle:
		ref := meanOver(out, func(r sheet.Region) float64 { return r.Bounds().CenterY() })
		for i := range out {
			out[i].Y = ref - out[i].Height/2
		}
	case VBottom:
		ref := maxOver(out, func(r sheet.Region) float64 { return r.Y + r.Height })
		for i := range out {
			out[i].Y = ref - out[i].Height
		}
	case VDistribute:
		distribute(out, opts.Spacing,
			func(r *sheet.Region) *float64 { return &r.Y },
			func(r sheet.Region) float64 { return r.Height })
	}

	return out
}

// distribute spaces regions evenly along one axis. Regions are walked in
// positional order; the first keeps its place and subsequent ones follow at
// the computed (or explicit) gap. With an explicit spacing the overall span
// may change; with the computed gap the span is preserved.
func distribute(regions []sheet.Region, spacing float64, pos func(*sheet.Region) *float64, size func(sheet.Region) float64) {
	order := make([]int, len(regions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return *pos(&regions[order[a]]) < *pos(&regions[order[b]])
	})

	first := order[0]
	last := order[len(order)-1]
	span := *pos(&regions[last]) + size(regions[last]) - *pos(&regions[first])

	total := 0.0
	for _, i := range order {
		total += size(regions[i])
	}

	gap := spacing
	if gap <= 0 {
		gap = (span - total) / float64(len(regions)-1)
	}

	cursor := *pos(&regions[first])
	for _, i := range order {
		*pos(&regions[i]) = cursor
		cursor += size(regions[i]) + gap
	}
}

func minOver(regions []sheet.Region, f func(sheet.Region) float64) float64 {
	v := f(regions[0])
	for _, r := range regions[1:] {
		if fv := f(r); fv < v {
			v = fv
		}
	}
	return v
}

func maxOver(regions []sheet.Region, f func(sheet.Region) float64) float64 {
	v := f(regions[0])
	for _, r := range regions[1:] {
		if fv := f(r); fv > v {
			v = fv
		}
	}
	return v
}

func meanOver(regions []sheet.Region, f func(sheet.Region) float64) float64 {
	sum := 0.0
	for _, r := range regions {
		sum += f(r)
	}
	return sum / float64(len(regions))
}
