// Package autolayout arranges a region set inside the page's content box.
//
// Three modes are supported: grid (row-major cells), linear (top-down flow
// with column wrapping), and adaptive (picks grid or linear from the number
// of objective-question regions). All modes are pure: the input slice is
// cloned, positioned, and returned as a new list. Regions are only ever
// capped to fit their slot, never enlarged. Positioning marks anchor the
// scanner's coordinate frame and are never repositioned.
package autolayout

import (
	"math"

	"github.com/sheetsmith/sheetsmith/pkg/errors"
	"github.com/sheetsmith/sheetsmith/pkg/sheet"
	"github.com/sheetsmith/sheetsmith/pkg/standards"
)

// Mode selects the arrangement strategy.
type Mode string

// Layout modes.
const (
	ModeGrid     Mode = "grid"
	ModeLinear   Mode = "linear"
	ModeAdaptive Mode = "adaptive"
)

// adaptiveGridThreshold is the objective-question count above which adaptive
// mode switches from linear to grid. Fixed policy, not user-configurable.
const adaptiveGridThreshold = 8

// HAlign is the horizontal placement of a region against the page.
type HAlign string

// Horizontal alignment values.
const (
	HAlignLeft   HAlign = "left"
	HAlignCenter HAlign = "center"
	HAlignRight  HAlign = "right"
)

// Spacing is the gap between neighboring slots, in millimeters.
type Spacing struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
}

// Config is a one-shot layout instruction. It is not persisted with the
// template.
type Config struct {
	Mode Mode `json:"mode"`

	// Columns and Rows shape the grid. Columns wins when both are set;
	// either one unset is derived from the region count.
	Columns int `json:"columns,omitempty"`
	Rows    int `json:"rows,omitempty"`

	Spacing Spacing `json:"spacing"`

	// Margins overrides the profile margins when set.
	Margins *standards.Margins `json:"margins,omitempty"`

	// HAlign controls horizontal placement in linear mode.
	HAlign HAlign `json:"horizontalAlignment,omitempty"`
}

// DefaultSpacing is used when the config leaves spacing unset.
var DefaultSpacing = Spacing{Horizontal: 5, Vertical: 5}

// Apply arranges the regions per the config and returns a new region list.
// The input is never mutated and the output keeps the input order.
// Positioning marks keep their geometry; all other regions are placed.
// Unknown modes are rejected; everything else is clamped rather than failed,
// and quality consequences surface through the validator instead of errors
// here.
func Apply(regions []sheet.Region, cfg Config, page sheet.Page, profile standards.Profile) ([]sheet.Region, error) {
	if len(regions) == 0 {
		return []sheet.Region{}, nil
	}

	if cfg.Spacing == (Spacing{}) {
		cfg.Spacing = DefaultSpacing
	}

	var place func([]sheet.Region, []int, Config, sheet.Page, standards.Profile)
	switch cfg.Mode {
	case ModeGrid:
		place = applyGrid
	case ModeLinear:
		place = applyLinear
	case ModeAdaptive:
		place = applyAdaptive
	default:
		return nil, errors.New(errors.ErrCodeInvalidLayout, "unknown layout mode %q", cfg.Mode)
	}

	out := sheet.CloneRegions(regions)
	idx := movable(out)
	if len(idx) > 0 {
		place(out, idx, cfg, page, profile)
	}
	return out, nil
}

// movable lists the indexes of regions the layout may reposition.
func movable(regions []sheet.Region) []int {
	var idx []int
	for i, r := range regions {
		if r.Kind != sheet.KindPositioning {
			idx = append(idx, i)
		}
	}
	return idx
}

// margins picks the config override when present, else the profile margins.
func margins(cfg Config, profile standards.Profile) standards.Margins {
	if cfg.Margins != nil {
		return *cfg.Margins
	}
	return profile.Margins
}

// applyGrid partitions the content box into columns × rows equal cells
// separated by the configured spacing and fills them row-major. An explicit
// column count wins; otherwise an explicit row count derives the columns as
// ceil(n/rows), and with neither the grid is square-ish at ceil(sqrt(n))
// columns. Rows can only grow past the geometric minimum, so slots never
// spill below the content box. Each region is capped to its cell, never
// enlarged.
func applyGrid(out []sheet.Region, idx []int, cfg Config, page sheet.Page, profile standards.Profile) {
	m := margins(cfg, profile)
	n := len(idx)

	cols := cfg.Columns
	if cols <= 0 {
		if cfg.Rows > 0 {
			cols = (n + cfg.Rows - 1) / cfg.Rows
		} else {
			cols = int(math.Ceil(math.Sqrt(float64(n))))
		}
	}
	rows := (n + cols - 1) / cols
	if cfg.Rows > rows {
		rows = cfg.Rows
	}

	contentW := page.Width - m.Left - m.Right
	contentH := page.Height - m.Top - m.Bottom
	cellW := (contentW - float64(cols-1)*cfg.Spacing.Horizontal) / float64(cols)
	cellH := (contentH - float64(rows-1)*cfg.Spacing.Vertical) / float64(rows)

	for k, i := range idx {
		row := k / cols
		col := k % cols
		out[i].X = m.Left + float64(col)*(cellW+cfg.Spacing.Horizontal)
		out[i].Y = m.Top + float64(row)*(cellH+cfg.Spacing.Vertical)
		out[i].Width = math.Min(out[i].Width, cellW)
		out[i].Height = math.Min(out[i].Height, cellH)
	}
}

// applyLinear stacks regions top-down from the top margin. When the next
// region would cross the bottom margin, a new column starts to the right of
// the widest region seen so far. Horizontal placement follows cfg.HAlign
// against the page; left (the default) tracks the current column.
func applyLinear(out []sheet.Region, idx []int, cfg Config, page sheet.Page, profile standards.Profile) {
	m := margins(cfg, profile)

	colX := m.Left
	y := m.Top
	widest := 0.0
	bottom := page.Height - m.Bottom

	for _, i := range idx {
		if y > m.Top && y+out[i].Height > bottom {
			colX += widest + cfg.Spacing.Horizontal
			y = m.Top
			widest = 0
		}

		switch cfg.HAlign {
		case HAlignCenter:
			out[i].X = (page.Width - out[i].Width) / 2
		case HAlignRight:
			out[i].X = page.Width - m.Right - out[i].Width
		default:
			out[i].X = colX
		}
		out[i].Y = y

		y += out[i].Height + cfg.Spacing.Vertical
		widest = math.Max(widest, out[i].Width)
	}
}

// applyAdaptive dispatches on the objective-question count: dense sheets go
// to a square-ish grid, sparse ones to a linear flow.
func applyAdaptive(out []sheet.Region, idx []int, cfg Config, page sheet.Page, profile standards.Profile) {
	count := sheet.CountKind(out, sheet.KindObjective)
	if count > adaptiveGridThreshold {
		grid := cfg
		grid.Mode = ModeGrid
		grid.Columns = int(math.Ceil(math.Sqrt(float64(count))))
		applyGrid(out, idx, grid, page, profile)
		return
	}
	linear := cfg
	linear.Mode = ModeLinear
	applyLinear(out, idx, linear, page, profile)
}
