package alignment

import (
	"math"
	"sort"
	"testing"

	"github.com/sheetsmith/sheetsmith/pkg/sheet"
)

func region(id string, x, y, w, h float64) sheet.Region {
	return sheet.Region{ID: id, Kind: sheet.KindSubjective, X: x, Y: y, Width: w, Height: h}
}

func TestAlignHorizontal(t *testing.T) {
	regions := []sheet.Region{
		region("a", 20, 10, 10, 10),
		region("b", 35, 30, 20, 10),
		region("c", 50, 50, 10, 10),
	}

	t.Run("Left", func(t *testing.T) {
		out := Align(regions, Options{Horizontal: HLeft})
		for _, r := range out {
			if r.X != 20 {
				t.Errorf("region %s X = %g, want 20 (min edge)", r.ID, r.X)
			}
		}
	})

	t.Run("Right", func(t *testing.T) {
		out := Align(regions, Options{Horizontal: HRight})
		for _, r := range out {
			if r.X+r.Width != 60 {
				t.Errorf("region %s right edge = %g, want 60 (max edge)", r.ID, r.X+r.Width)
			}
		}
	})

	t.Run("Center", func(t *testing.T) {
		out := Align(regions, Options{Horizontal: HCenter})
		// Mean of centers 25, 45, 55 is 125/3.
		want := 125.0 / 3
		for _, r := range out {
			if math.Abs(r.Bounds().CenterX()-want) > 1e-9 {
				t.Errorf("region %s center = %g, want %g", r.ID, r.Bounds().CenterX(), want)
			}
		}
	})

	t.Run("YUntouched", func(t *testing.T) {
		out := Align(regions, Options{Horizontal: HLeft})
		for i, r := range out {
			if r.Y != regions[i].Y {
				t.Errorf("region %s Y changed by a horizontal pass", r.ID)
			}
		}
	})
}

func TestAlignVertical(t *testing.T) {
	regions := []sheet.Region{
		region("a", 10, 20, 10, 10),
		region("b", 30, 35, 10, 20),
		region("c", 50, 50, 10, 10),
	}

	t.Run("Top", func(t *testing.T) {
		out := Align(regions, Options{Vertical: VTop})
		for _, r := range out {
			if r.Y != 20 {
				t.Errorf("region %s Y = %g, want 20", r.ID, r.Y)
			}
		}
	})

	t.Run("Bottom", func(t *testing.T) {
		out := Align(regions, Options{Vertical: VBottom})
		for _, r := range out {
			if r.Y+r.Height != 60 {
				t.Errorf("region %s bottom = %g, want 60", r.ID, r.Y+r.Height)
			}
		}
	})
}

func TestAlignBothAxes(t *testing.T) {
	regions := []sheet.Region{
		region("a", 20, 10, 10, 10),
		region("b", 40, 30, 10, 10),
	}

	out := Align(regions, Options{Horizontal: HLeft, Vertical: VTop})
	for _, r := range out {
		if r.X != 20 || r.Y != 10 {
			t.Errorf("region %s at (%g,%g), want (20,10)", r.ID, r.X, r.Y)
		}
	}
}

func TestDistributeEvenGaps(t *testing.T) {
	// Uneven gaps in, even gaps out; first and last edges preserved.
	regions := []sheet.Region{
		region("a", 10, 0, 10, 10),
		region("b", 22, 0, 10, 10),
		region("c", 70, 0, 10, 10),
		region("d", 100, 0, 10, 10),
	}

	out := Align(regions, Options{Horizontal: HDistribute})

	sorted := append([]sheet.Region(nil), out...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	if sorted[0].X != 10 {
		t.Errorf("first region X = %g, want 10 (span start preserved)", sorted[0].X)
	}
	if got := sorted[len(sorted)-1].X + sorted[len(sorted)-1].Width; got != 110 {
		t.Errorf("last region right edge = %g, want 110 (span end preserved)", got)
	}

	const eps = 1e-9
	var gaps []float64
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].X-(sorted[i-1].X+sorted[i-1].Width))
	}
	for i := 1; i < len(gaps); i++ {
		if math.Abs(gaps[i]-gaps[0]) > eps {
			t.Errorf("gap %d = %g, differs from gap 0 = %g", i, gaps[i], gaps[0])
		}
	}
}

func TestDistributeExplicitSpacing(t *testing.T) {
	regions := []sheet.Region{
		region("a", 10, 0, 10, 10),
		region("b", 25, 0, 10, 10),
		region("c", 60, 0, 10, 10),
	}

	out := Align(regions, Options{Horizontal: HDistribute, Spacing: 4})

	sorted := append([]sheet.Region(nil), out...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].X - (sorted[i-1].X + sorted[i-1].Width)
		if gap != 4 {
			t.Errorf("gap %d = %g, want explicit spacing 4", i, gap)
		}
	}
}

func TestDistributeVertical(t *testing.T) {
	regions := []sheet.Region{
		region("a", 0, 10, 10, 10),
		region("b", 0, 23, 10, 10),
		region("c", 0, 80, 10, 10),
	}

	out := Align(regions, Options{Vertical: VDistribute})

	sorted := append([]sheet.Region(nil), out...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	gap1 := sorted[1].Y - (sorted[0].Y + sorted[0].Height)
	gap2 := sorted[2].Y - (sorted[1].Y + sorted[1].Height)
	if math.Abs(gap1-gap2) > 1e-9 {
		t.Errorf("vertical gaps %g and %g should match", gap1, gap2)
	}
}

func TestAlignSmallSelections(t *testing.T) {
	t.Run("Single", func(t *testing.T) {
		regions := []sheet.Region{region("a", 42, 7, 10, 10)}
		out := Align(regions, Options{Horizontal: HLeft, Vertical: VTop})
		if out[0].X != 42 || out[0].Y != 7 {
			t.Error("single-region selection should be a no-op")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		out := Align(nil, Options{Horizontal: HLeft})
		if len(out) != 0 {
			t.Errorf("len = %d, want 0", len(out))
		}
	})
}

func TestAlignPure(t *testing.T) {
	regions := []sheet.Region{
		region("a", 20, 10, 10, 10),
		region("b", 40, 30, 10, 10),
	}

	Align(regions, Options{Horizontal: HLeft, Vertical: VTop})

	if regions[1].X != 40 || regions[1].Y != 30 {
		t.Error("Align() mutated its input")
	}
}
