package cli

import (
	"context"
	"fmt"

	"github.com/sheetsmith/sheetsmith/pkg/alignment"
	"github.com/sheetsmith/sheetsmith/pkg/autolayout"
	"github.com/sheetsmith/sheetsmith/pkg/pipeline"
	"github.com/sheetsmith/sheetsmith/pkg/sheet"
	"github.com/sheetsmith/sheetsmith/pkg/standards"
	"github.com/sheetsmith/sheetsmith/pkg/suggest"
)

// applySuggestion executes one suggestion against the template and returns
// the edited copy.
func applySuggestion(ctx context.Context, runner *pipeline.Runner, tpl *sheet.Template, s suggest.Suggestion, opts pipeline.Options) (*sheet.Template, error) {
	profile, err := opts.Profile()
	if err != nil {
		return nil, err
	}

	switch s.ID {
	case suggest.IDGridLayout:
		opts.Mode = autolayout.ModeGrid
		return runner.Layout(ctx, tpl, opts)

	case suggest.IDResolveCollisions:
		resolved, _, err := runner.Resolve(ctx, tpl, opts)
		return resolved, err

	case suggest.IDAlignHorizontal:
		// One shared row means equal Y coordinates.
		return runner.Align(ctx, tpl, objectiveIDs(tpl), alignment.Options{Vertical: alignment.VMiddle}, opts)

	case suggest.IDAlignVertical:
		// One shared column means equal X coordinates.
		return runner.Align(ctx, tpl, objectiveIDs(tpl), alignment.Options{Horizontal: alignment.HCenter}, opts)

	case suggest.IDIncreaseSpacing:
		return runner.Align(ctx, tpl, nil, alignment.Options{
			Horizontal: alignment.HDistribute,
			Spacing:    profile.Bubble.OptimalSpacing,
		}, opts)

	case suggest.IDResizeBubbles:
		return resizeBubbles(tpl, profile), nil

	case suggest.IDAddPositioning:
		return addPositioningMarks(tpl, profile), nil
	}

	return nil, fmt.Errorf("unknown suggestion id %q", s.ID)
}

// objectiveIDs lists the ids of objective-question regions.
func objectiveIDs(tpl *sheet.Template) []string {
	var ids []string
	for _, r := range tpl.Regions {
		if r.Kind == sheet.KindObjective {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// resizeBubbles grows undersized objective regions to the optimal bubble
// size, keeping their centers in place.
func resizeBubbles(tpl *sheet.Template, profile standards.Profile) *sheet.Template {
	regions := sheet.CloneRegions(tpl.Regions)
	for i, r := range regions {
		if r.Kind != sheet.KindObjective {
			continue
		}
		if r.Width >= profile.Bubble.MinSize && r.Height >= profile.Bubble.MinSize {
			continue
		}
		size := profile.Bubble.OptimalSize
		regions[i].X = r.X - (size-r.Width)/2
		regions[i].Y = r.Y - (size-r.Height)/2
		regions[i].Width = size
		regions[i].Height = size
	}
	return tpl.WithRegions(regions)
}

// addPositioningMarks tops up positioning marks to the optimal count,
// placing new marks at the page corners just inside the margins.
func addPositioningMarks(tpl *sheet.Template, profile standards.Profile) *sheet.Template {
	const markSize = 6.0

	m := profile.Margins
	corners := [][2]float64{
		{m.Left, m.Top},
		{tpl.Page.Width - m.Right - markSize, m.Top},
		{m.Left, tpl.Page.Height - m.Bottom - markSize},
		{tpl.Page.Width - m.Right - markSize, tpl.Page.Height - m.Bottom - markSize},
	}

	regions := sheet.CloneRegions(tpl.Regions)
	have := sheet.CountKind(regions, sheet.KindPositioning)
	for i := 0; have < profile.Positioning.OptimalCount && i < len(corners); i++ {
		corner := corners[i]
		if occupied(regions, corner[0], corner[1], markSize) {
			continue
		}
		mark, err := sheet.NewRegion("", sheet.KindPositioning, corner[0], corner[1], markSize, markSize)
		if err != nil {
			continue
		}
		regions = append(regions, mark)
		have++
	}
	return tpl.WithRegions(regions)
}

// occupied reports whether a mark-sized rect at (x, y) would overlap an
// existing region.
func occupied(regions []sheet.Region, x, y, size float64) bool {
	probe := sheet.Region{X: x, Y: y, Width: size, Height: size}
	for _, r := range regions {
		if r.Bounds().Intersects(probe.Bounds()) {
			return true
		}
	}
	return false
}
