// Package validate scores a region set against an OMR standards profile.
//
// Scoring is a read-only pass: it never mutates regions and never fails for
// structurally valid input. Each region gets a single running compliance
// counter that starts at 100 and loses points for bubble-size, page-margin,
// and spacing violations; the per-phase snapshots of that counter become the
// region's quality metrics. Whole-set findings are reported as
// human-readable issues and suggestions.
package validate

import (
	"fmt"

	"github.com/sheetsmith/sheetsmith/pkg/collide"
	"github.com/sheetsmith/sheetsmith/pkg/geom"
	"github.com/sheetsmith/sheetsmith/pkg/sheet"
	"github.com/sheetsmith/sheetsmith/pkg/standards"
)

// Penalty points per violation. Under-sized bubbles are penalized harder
// than over-sized ones: a bubble below the scanner's minimum is a larger
// recognition risk than one that merely wastes space.
const (
	penaltyBubbleTooSmall = 20
	penaltyBubbleTooLarge = 15
	penaltyMarginEdge     = 10
	penaltyTightSpacing   = 5
)

// Report is the validator's output: per-region quality metrics plus
// aggregate findings across the whole region set.
type Report struct {
	PerRegion    map[string]sheet.Metrics `json:"perRegion"`
	OverallScore float64                  `json:"overallScore"`
	Issues       []string                 `json:"issues,omitempty"`
	Suggestions  []string                 `json:"suggestions,omitempty"`
}

// Score computes quality metrics for every region and aggregate findings for
// the set. It is total: an empty region set yields a neutral report with an
// overall score of 0 and no issues.
func Score(regions []sheet.Region, profile standards.Profile, page sheet.Page) Report {
	report := Report{PerRegion: make(map[string]sheet.Metrics, len(regions))}
	if len(regions) == 0 {
		return report
	}

	sum := 0.0
	for i, r := range regions {
		m := scoreRegion(i, r, regions, profile, page)
		report.PerRegion[r.ID] = m
		sum += m.OverallScore
	}
	report.OverallScore = sum / float64(len(regions))

	report.Issues, report.Suggestions = aggregate(regions, profile, page)
	return report
}

// scoreRegion runs the compliance counter for one region. The counter is
// snapshotted after each penalty phase so the metrics expose where points
// were lost; OverallScore is its final value.
func scoreRegion(idx int, r sheet.Region, regions []sheet.Region, profile standards.Profile, page sheet.Page) sheet.Metrics {
	score := 100.0

	// Phase 1: bubble size. Only objective-question regions carry marks that
	// the scanner must resolve.
	if r.Kind == sheet.KindObjective {
		side := r.Bounds().ShorterSide()
		if side < profile.Bubble.MinSize {
			score -= penaltyBubbleTooSmall
		} else if side > profile.Bubble.MaxSize {
			score -= penaltyBubbleTooLarge
		}
	}
	sizeCompliance := clamp(score)

	// Phase 2: page margins. Each violated edge costs points independently;
	// only an oversized region can realistically violate all four.
	for _, violated := range marginViolations(r, profile.Margins, page) {
		if violated {
			score -= penaltyMarginEdge
		}
	}
	positionAccuracy := clamp(score)

	// Phase 3: spacing. Every neighbor closer than the minimum center
	// distance costs points, so dense clusters are penalized increasingly.
	for j, other := range regions {
		if j == idx {
			continue
		}
		if geom.CenterDistance(r.Bounds(), other.Bounds()) < profile.Bubble.MinSpacing {
			score -= penaltyTightSpacing
		}
	}
	omrStandard := clamp(score)

	return sheet.Metrics{
		SizeCompliance:   sizeCompliance,
		PositionAccuracy: positionAccuracy,
		OMRStandard:      omrStandard,
		OverallScore:     omrStandard,
	}
}

// marginViolations reports, per edge (left, top, right, bottom), whether the
// region crosses into the page's keep-out border.
func marginViolations(r sheet.Region, m standards.Margins, page sheet.Page) [4]bool {
	return [4]bool{
		r.X < m.Left,
		r.Y < m.Top,
		r.X+r.Width > page.Width-m.Right,
		r.Y+r.Height > page.Height-m.Bottom,
	}
}

// aggregate derives whole-set issues and suggestions.
func aggregate(regions []sheet.Region, profile standards.Profile, page sheet.Page) (issues, suggestions []string) {
	if collisions := collide.Detect(regions); len(collisions) > 0 {
		issues = append(issues, fmt.Sprintf("%d pair(s) of regions overlap", len(collisions)))
		suggestions = append(suggestions, "run collision resolution to separate overlapping regions")
	}

	if n := countMarginViolators(regions, profile.Margins, page); n > 0 {
		issues = append(issues, fmt.Sprintf("%d region(s) extend into the page margins", n))
		suggestions = append(suggestions, fmt.Sprintf("keep regions inside the %g mm printable margins", profile.Margins.Left))
	}

	if n := countUndersizedBubbles(regions, profile.Bubble); n > 0 {
		issues = append(issues, fmt.Sprintf("%d objective region(s) are below the %g mm minimum bubble size", n, profile.Bubble.MinSize))
		suggestions = append(suggestions, fmt.Sprintf("resize small bubbles to the optimal %g mm", profile.Bubble.OptimalSize))
	}

	if hasTightPair(regions, profile.Bubble.MinSpacing) {
		issues = append(issues, fmt.Sprintf("regions closer than the %g mm minimum spacing", profile.Bubble.MinSpacing))
		suggestions = append(suggestions, fmt.Sprintf("increase spacing to the optimal %g mm", profile.Bubble.OptimalSpacing))
	}

	if n := sheet.CountKind(regions, sheet.KindPositioning); n < profile.Positioning.MinCount {
		issues = append(issues, fmt.Sprintf("only %d positioning mark(s), at least %d required", n, profile.Positioning.MinCount))
		suggestions = append(suggestions, fmt.Sprintf("add positioning marks up to the optimal %d", profile.Positioning.OptimalCount))
	}

	return issues, suggestions
}

func countMarginViolators(regions []sheet.Region, m standards.Margins, page sheet.Page) int {
	n := 0
	for _, r := range regions {
		for _, violated := range marginViolations(r, m, page) {
			if violated {
				n++
				break
			}
		}
	}
	return n
}

func countUndersizedBubbles(regions []sheet.Region, b standards.Bubble) int {
	n := 0
	for _, r := range regions {
		if r.Kind == sheet.KindObjective && r.Bounds().ShorterSide() < b.MinSize {
			n++
		}
	}
	return n
}

func hasTightPair(regions []sheet.Region, minSpacing float64) bool {
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			if geom.CenterDistance(regions[i].Bounds(), regions[j].Bounds()) < minSpacing {
				return true
			}
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
