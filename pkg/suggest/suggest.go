// Package suggest composes validator, collision, and layout signals into
// ranked, actionable design suggestions.
//
// Each heuristic triggers independently and contributes at most one
// suggestion with a fixed confidence; the collision count or offending pair
// only ever scales the description text, never the confidence value.
// Results are sorted by descending confidence, with the heuristic order as a
// stable tiebreaker.
package suggest

import (
	"fmt"
	"math"
	"sort"

	"github.com/sheetsmith/sheetsmith/pkg/collide"
	"github.com/sheetsmith/sheetsmith/pkg/geom"
	"github.com/sheetsmith/sheetsmith/pkg/sheet"
	"github.com/sheetsmith/sheetsmith/pkg/standards"
)

// Category groups suggestions by the engine that can act on them.
type Category string

// Suggestion categories.
const (
	CategoryLayout      Category = "layout"
	CategoryCollision   Category = "collision"
	CategoryAlignment   Category = "alignment"
	CategorySpacing     Category = "spacing"
	CategorySizing      Category = "sizing"
	CategoryPositioning Category = "positioning"
)

// Stable suggestion identifiers, usable as CLI apply targets.
const (
	IDGridLayout        = "grid-layout"
	IDResolveCollisions = "resolve-collisions"
	IDAlignHorizontal   = "align-horizontal"
	IDAlignVertical     = "align-vertical"
	IDIncreaseSpacing   = "increase-spacing"
	IDResizeBubbles     = "resize-bubbles"
	IDAddPositioning    = "add-positioning"
)

// alignmentVarianceThreshold is the coordinate variance (mm²) above which
// objective regions are considered visually scattered.
const alignmentVarianceThreshold = 5

// gridSuggestionMinObjective is the objective-region count above which a
// grid arrangement beats manual placement.
const gridSuggestionMinObjective = 4

// Suggestion is one ranked, actionable design recommendation.
type Suggestion struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
}

// Suggest evaluates every heuristic against the region set and returns the
// triggered suggestions sorted by descending confidence. It is total: an
// empty region set yields an empty list.
func Suggest(regions []sheet.Region, profile standards.Profile, page sheet.Page) []Suggestion {
	var out []Suggestion

	if n := sheet.CountKind(regions, sheet.KindObjective); n > gridSuggestionMinObjective {
		out = append(out, Suggestion{
			ID:          IDGridLayout,
			Category:    CategoryLayout,
			Title:       "Arrange objective questions in a grid",
			Description: fmt.Sprintf("%d objective-question regions would scan more reliably in a regular grid", n),
			Confidence:  0.8,
		})
	}

	if collisions := collide.Detect(regions); len(collisions) > 0 {
		out = append(out, Suggestion{
			ID:          IDResolveCollisions,
			Category:    CategoryCollision,
			Title:       "Resolve overlapping regions",
			Description: fmt.Sprintf("%d pair(s) of regions overlap and would corrupt recognition", len(collisions)),
			Confidence:  0.9,
		})
	}

	if ys := objectiveCoords(regions, func(r sheet.Region) float64 { return r.Y }); geom.Variance(ys) > alignmentVarianceThreshold {
		out = append(out, Suggestion{
			ID:          IDAlignHorizontal,
			Category:    CategoryAlignment,
			Title:       "Align regions horizontally",
			Description: "objective regions sit at scattered heights; aligning them to one row improves scan accuracy",
			Confidence:  0.7,
		})
	}
	if xs := objectiveCoords(regions, func(r sheet.Region) float64 { return r.X }); geom.Variance(xs) > alignmentVarianceThreshold {
		out = append(out, Suggestion{
			ID:          IDAlignVertical,
			Category:    CategoryAlignment,
			Title:       "Align regions vertically",
			Description: "objective regions sit at scattered horizontal offsets; aligning them to one column improves scan accuracy",
			Confidence:  0.7,
		})
	}

	if a, b, ok := firstTightPair(regions, profile.Bubble.MinSpacing); ok {
		out = append(out, Suggestion{
			ID:       IDIncreaseSpacing,
			Category: CategorySpacing,
			Title:    "Increase region spacing",
			Description: fmt.Sprintf("regions %q and %q are closer than the %g mm minimum; space them at %g mm",
				a, b, profile.Bubble.MinSpacing, profile.Bubble.OptimalSpacing),
			Confidence: 0.8,
		})
	}

	if n := undersizedObjectives(regions, profile.Bubble.MinSize); n > 0 {
		out = append(out, Suggestion{
			ID:       IDResizeBubbles,
			Category: CategorySizing,
			Title:    "Resize undersized bubbles",
			Description: fmt.Sprintf("%d objective region(s) are below the %g mm minimum; resize them to %g mm",
				n, profile.Bubble.MinSize, profile.Bubble.OptimalSize),
			Confidence: 0.9,
		})
	}

	if n := sheet.CountKind(regions, sheet.KindPositioning); n < profile.Positioning.MinCount {
		out = append(out, Suggestion{
			ID:       IDAddPositioning,
			Category: CategoryPositioning,
			Title:    "Add positioning marks",
			Description: fmt.Sprintf("only %d positioning mark(s); add marks up to %d so scanners can register the page",
				n, profile.Positioning.OptimalCount),
			Confidence: 0.9,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

// objectiveCoords collects one coordinate from every objective-question
// region; those are the regions alignment acts on.
func objectiveCoords(regions []sheet.Region, f func(sheet.Region) float64) []float64 {
	var out []float64
	for _, r := range regions {
		if r.Kind == sheet.KindObjective {
			out = append(out, f(r))
		}
	}
	return out
}

// firstTightPair returns the ids of the first pair (in scan order) whose
// center distance is below minSpacing. One suggestion covers all offending
// pairs.
func firstTightPair(regions []sheet.Region, minSpacing float64) (a, b string, ok bool) {
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			if geom.CenterDistance(regions[i].Bounds(), regions[j].Bounds()) < minSpacing {
				return regions[i].ID, regions[j].ID, true
			}
		}
	}
	return "", "", false
}

func undersizedObjectives(regions []sheet.Region, minSize float64) int {
	n := 0
	for _, r := range regions {
		if r.Kind == sheet.KindObjective && math.Min(r.Width, r.Height) < minSize {
			n++
		}
	}
	return n
}
