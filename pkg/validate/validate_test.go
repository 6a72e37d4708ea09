package validate

import (
	"strings"
	"testing"

	"github.com/sheetsmith/sheetsmith/pkg/sheet"
	"github.com/sheetsmith/sheetsmith/pkg/standards"
)

// wellPlaced returns a region safely inside the default A4 margins.
func wellPlaced(id string, kind sheet.Kind, x, y, w, h float64) sheet.Region {
	return sheet.Region{ID: id, Kind: kind, X: x, Y: y, Width: w, Height: h}
}

func TestScoreEmpty(t *testing.T) {
	report := Score(nil, standards.Default, sheet.A4)

	if report.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want 0 for empty set", report.OverallScore)
	}
	if len(report.Issues) != 0 {
		t.Errorf("Issues = %v, want none for empty set", report.Issues)
	}
	if len(report.PerRegion) != 0 {
		t.Errorf("PerRegion has %d entries, want 0", len(report.PerRegion))
	}
}

func TestScoreUndersizedBubble(t *testing.T) {
	// A 6×6 mm objective region under the default profile (min 8 mm) loses
	// the 20-point under-size penalty and nothing else.
	regions := []sheet.Region{
		wellPlaced("q1", sheet.KindObjective, 50, 50, 6, 6),
	}

	report := Score(regions, standards.Default, sheet.A4)

	m := report.PerRegion["q1"]
	if m.SizeCompliance != 80 {
		t.Errorf("SizeCompliance = %v, want 80", m.SizeCompliance)
	}
	if m.OverallScore != 80 {
		t.Errorf("OverallScore = %v, want 80", m.OverallScore)
	}

	found := false
	for _, s := range report.Suggestions {
		if strings.Contains(s, "resize") {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggestions = %v, want a resize suggestion", report.Suggestions)
	}
}

func TestScoreOversizedBubble(t *testing.T) {
	regions := []sheet.Region{
		wellPlaced("q1", sheet.KindObjective, 50, 50, 16, 16),
	}

	m := Score(regions, standards.Default, sheet.A4).PerRegion["q1"]
	if m.SizeCompliance != 85 {
		t.Errorf("SizeCompliance = %v, want 85 (over-size penalty is 15)", m.SizeCompliance)
	}
}

func TestScoreSizeIgnoredForNonObjective(t *testing.T) {
	regions := []sheet.Region{
		wellPlaced("pos", sheet.KindPositioning, 50, 50, 6, 6),
	}

	m := Score(regions, standards.Default, sheet.A4).PerRegion["pos"]
	if m.SizeCompliance != 100 {
		t.Errorf("SizeCompliance = %v, want 100 for non-objective region", m.SizeCompliance)
	}
}

func TestScoreMarginViolation(t *testing.T) {
	// Region at x=0 violates the 15 mm left margin; its neighbor does not.
	regions := []sheet.Region{
		wellPlaced("edge", sheet.KindBarcode, 0, 50, 10, 10),
		wellPlaced("inner", sheet.KindBarcode, 100, 50, 10, 10),
	}

	report := Score(regions, standards.Default, sheet.A4)

	if got := report.PerRegion["edge"].OverallScore; got != 90 {
		t.Errorf("edge region score = %v, want 90 (one margin penalty)", got)
	}
	if got := report.PerRegion["inner"].OverallScore; got != 100 {
		t.Errorf("inner region score = %v, want 100 (unaffected)", got)
	}
}

func TestScoreMultipleMarginViolations(t *testing.T) {
	// A page-sized region violates all four margins at once.
	regions := []sheet.Region{
		wellPlaced("huge", sheet.KindSubjective, 0, 0, 210, 297),
	}

	m := Score(regions, standards.Default, sheet.A4).PerRegion["huge"]
	if m.PositionAccuracy != 60 {
		t.Errorf("PositionAccuracy = %v, want 60 (four independent -10 penalties)", m.PositionAccuracy)
	}
}

func TestScoreSpacingPenalty(t *testing.T) {
	// Three regions stacked on the same center lose 5 points per close
	// neighbor: two neighbors each, so 10 points.
	regions := []sheet.Region{
		wellPlaced("a", sheet.KindBarcode, 50, 50, 10, 10),
		wellPlaced("b", sheet.KindBarcode, 51, 50, 10, 10),
		wellPlaced("c", sheet.KindBarcode, 52, 50, 10, 10),
	}

	report := Score(regions, standards.Default, sheet.A4)
	if got := report.PerRegion["a"].OverallScore; got != 90 {
		t.Errorf("score = %v, want 90 (two tight neighbors)", got)
	}
}

func TestScoreBounded(t *testing.T) {
	// Pathological set: many undersized, misplaced, overlapping regions.
	// Every metric must stay within [0, 100].
	var regions []sheet.Region
	for i := 0; i < 30; i++ {
		regions = append(regions, wellPlaced("r"+string(rune('a'+i)), sheet.KindObjective, 0, 0, 2, 2))
	}

	report := Score(regions, standards.Default, sheet.A4)
	for id, m := range report.PerRegion {
		for name, v := range map[string]float64{
			"PositionAccuracy": m.PositionAccuracy,
			"SizeCompliance":   m.SizeCompliance,
			"OMRStandard":      m.OMRStandard,
			"OverallScore":     m.OverallScore,
		} {
			if v < 0 || v > 100 {
				t.Errorf("region %s: %s = %v, out of [0,100]", id, name, v)
			}
		}
	}
	if report.OverallScore < 0 || report.OverallScore > 100 {
		t.Errorf("OverallScore = %v, out of [0,100]", report.OverallScore)
	}
}

func TestScorePositioningIssue(t *testing.T) {
	regions := []sheet.Region{
		wellPlaced("pos1", sheet.KindPositioning, 20, 20, 6, 6),
		wellPlaced("pos2", sheet.KindPositioning, 180, 20, 6, 6),
	}

	report := Score(regions, standards.Default, sheet.A4)

	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "positioning") {
			found = true
		}
	}
	if !found {
		t.Errorf("Issues = %v, want a positioning-mark issue (2 < 3)", report.Issues)
	}
}

func TestScoreCollisionIssue(t *testing.T) {
	regions := []sheet.Region{
		wellPlaced("a", sheet.KindSubjective, 50, 50, 40, 40),
		wellPlaced("b", sheet.KindSubjective, 60, 60, 40, 40),
	}

	report := Score(regions, standards.Default, sheet.A4)

	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "overlap") {
			found = true
		}
	}
	if !found {
		t.Errorf("Issues = %v, want an overlap issue", report.Issues)
	}
}

func TestScoreCleanSheetHasNoIssues(t *testing.T) {
	regions := []sheet.Region{
		wellPlaced("pos1", sheet.KindPositioning, 20, 20, 6, 6),
		wellPlaced("pos2", sheet.KindPositioning, 184, 20, 6, 6),
		wellPlaced("pos3", sheet.KindPositioning, 20, 271, 6, 6),
		wellPlaced("q1", sheet.KindObjective, 30, 60, 10, 10),
		wellPlaced("q2", sheet.KindObjective, 30, 80, 10, 10),
	}

	report := Score(regions, standards.Default, sheet.A4)

	if len(report.Issues) != 0 {
		t.Errorf("Issues = %v, want none for a clean sheet", report.Issues)
	}
	if report.OverallScore != 100 {
		t.Errorf("OverallScore = %v, want 100", report.OverallScore)
	}
}
