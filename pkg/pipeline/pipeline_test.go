package pipeline

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sheetsmith/sheetsmith/pkg/alignment"
	"github.com/sheetsmith/sheetsmith/pkg/autolayout"
	"github.com/sheetsmith/sheetsmith/pkg/cache"
	"github.com/sheetsmith/sheetsmith/pkg/errors"
	"github.com/sheetsmith/sheetsmith/pkg/sheet"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewRunner(c, nil, logger)
}

func testTemplate() *sheet.Template {
	return &sheet.Template{
		Name: "exam",
		Page: sheet.A4,
		Regions: []sheet.Region{
			{ID: "pos1", Kind: sheet.KindPositioning, X: 20, Y: 20, Width: 6, Height: 6},
			{ID: "pos2", Kind: sheet.KindPositioning, X: 184, Y: 20, Width: 6, Height: 6},
			{ID: "pos3", Kind: sheet.KindPositioning, X: 20, Y: 271, Width: 6, Height: 6},
			{ID: "q1", Kind: sheet.KindObjective, X: 30, Y: 100, Width: 10, Height: 10},
			{ID: "q2", Kind: sheet.KindObjective, X: 60, Y: 100, Width: 10, Height: 10},
		},
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Error("NewRunner should default every nil dependency")
	}
	if _, ok := r.Cache.(*cache.NullCache); !ok {
		t.Error("nil cache should default to NullCache")
	}
}

func TestValidateCaching(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()
	tpl := testTemplate()

	report, hit, err := r.ValidateWithCacheInfo(ctx, tpl, Options{})
	if err != nil {
		t.Fatalf("ValidateWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("first run should miss the cache")
	}
	if report.OverallScore != 100 {
		t.Errorf("OverallScore = %v, want 100 for a clean template", report.OverallScore)
	}

	cached, hit, err := r.ValidateWithCacheInfo(ctx, tpl, Options{})
	if err != nil {
		t.Fatalf("ValidateWithCacheInfo error: %v", err)
	}
	if !hit {
		t.Error("second run should hit the cache")
	}
	if cached.OverallScore != report.OverallScore {
		t.Errorf("cached score %v differs from computed %v", cached.OverallScore, report.OverallScore)
	}
}

func TestValidateRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()
	tpl := testTemplate()

	if _, _, err := r.ValidateWithCacheInfo(ctx, tpl, Options{}); err != nil {
		t.Fatalf("ValidateWithCacheInfo error: %v", err)
	}
	_, hit, err := r.ValidateWithCacheInfo(ctx, tpl, Options{Refresh: true})
	if err != nil {
		t.Fatalf("ValidateWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestValidateCacheKeyedByProfile(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()
	tpl := testTemplate()

	if _, _, err := r.ValidateWithCacheInfo(ctx, tpl, Options{Standards: "standard"}); err != nil {
		t.Fatalf("ValidateWithCacheInfo error: %v", err)
	}
	_, hit, err := r.ValidateWithCacheInfo(ctx, tpl, Options{Standards: "primary"})
	if err != nil {
		t.Fatalf("ValidateWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("a different profile should miss the cache")
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()

	tpl := testTemplate().WithRegions([]sheet.Region{
		{ID: "a", Kind: sheet.KindSubjective, X: 50, Y: 100, Width: 40, Height: 40},
		{ID: "b", Kind: sheet.KindSubjective, X: 50, Y: 100, Width: 40, Height: 40},
	})

	resolved, n, err := r.Resolve(ctx, tpl, Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if n != 1 {
		t.Errorf("collisions = %d, want 1", n)
	}
	if len(collideFree(resolved.Regions)) != 0 {
		t.Errorf("resolved template still has overlaps: %v", resolved.Regions)
	}

	t.Run("CleanTemplateUntouched", func(t *testing.T) {
		clean := testTemplate()
		out, n, err := r.Resolve(ctx, clean, Options{})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if n != 0 {
			t.Errorf("collisions = %d, want 0", n)
		}
		if out != clean {
			t.Error("a clean template should be returned as-is")
		}
	})
}

// collideFree reports the overlapping pairs left in regions.
func collideFree(regions []sheet.Region) []string {
	var pairs []string
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			a, b := regions[i].Bounds(), regions[j].Bounds()
			if a.Intersects(b) {
				pairs = append(pairs, regions[i].ID+"+"+regions[j].ID)
			}
		}
	}
	return pairs
}

func TestLayoutCaching(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()
	tpl := testTemplate()

	out, hit, err := r.LayoutWithCacheInfo(ctx, tpl, Options{Mode: autolayout.ModeGrid, Columns: 2})
	if err != nil {
		t.Fatalf("LayoutWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("first layout should miss the cache")
	}
	if len(out.Regions) != len(tpl.Regions) {
		t.Errorf("layout changed the region count: %d != %d", len(out.Regions), len(tpl.Regions))
	}

	cached, hit, err := r.LayoutWithCacheInfo(ctx, tpl, Options{Mode: autolayout.ModeGrid, Columns: 2})
	if err != nil {
		t.Fatalf("LayoutWithCacheInfo error: %v", err)
	}
	if !hit {
		t.Error("second layout should hit the cache")
	}
	for i := range out.Regions {
		if cached.Regions[i].X != out.Regions[i].X || cached.Regions[i].Y != out.Regions[i].Y {
			t.Errorf("cached region %d differs from computed", i)
		}
	}

	_, hit, err = r.LayoutWithCacheInfo(ctx, tpl, Options{Mode: autolayout.ModeLinear})
	if err != nil {
		t.Fatalf("LayoutWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("a different mode should miss the cache")
	}
}

func TestLayoutInvalidMode(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()

	_, _, err := r.LayoutWithCacheInfo(ctx, testTemplate(), Options{Mode: "spiral"})
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("error code = %v, want INVALID_LAYOUT", errors.GetCode(err))
	}
}

func TestLayoutNegativeSpacing(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()

	_, _, err := r.LayoutWithCacheInfo(ctx, testTemplate(), Options{Mode: autolayout.ModeGrid, Spacing: -2})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestAlignSelection(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()
	tpl := testTemplate()

	out, err := r.Align(ctx, tpl, []string{"q1", "q2"}, alignment.Options{Vertical: alignment.VTop}, Options{})
	if err != nil {
		t.Fatalf("Align error: %v", err)
	}

	q1, _ := out.Region("q1")
	q2, _ := out.Region("q2")
	if q1.Y != q2.Y {
		t.Errorf("selected regions not aligned: %g vs %g", q1.Y, q2.Y)
	}
	pos1, _ := out.Region("pos1")
	if pos1.Y != 20 {
		t.Error("unselected regions must not move")
	}
}

func TestAlignPreservesRegionOrder(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()

	tpl := testTemplate().WithRegions([]sheet.Region{
		{ID: "a", Kind: sheet.KindObjective, X: 20, Y: 40, Width: 10, Height: 10},
		{ID: "b", Kind: sheet.KindObjective, X: 50, Y: 60, Width: 10, Height: 10},
		{ID: "c", Kind: sheet.KindHeader, X: 20, Y: 10, Width: 100, Height: 10},
	})

	out, err := r.Align(ctx, tpl, []string{"a", "b"}, alignment.Options{Vertical: alignment.VTop}, Options{})
	if err != nil {
		t.Fatalf("Align error: %v", err)
	}

	// Grid placement and collision resolution are index-based, so aligning
	// a selection must not move it to the end of the list.
	for i, want := range []string{"a", "b", "c"} {
		if out.Regions[i].ID != want {
			t.Errorf("region %d = %q, want %q", i, out.Regions[i].ID, want)
		}
	}

	a, _ := out.Region("a")
	b, _ := out.Region("b")
	if a.Y != 40 || b.Y != 40 {
		t.Errorf("selection not aligned to the top edge: a.Y=%g b.Y=%g", a.Y, b.Y)
	}

	t.Run("AllRegions", func(t *testing.T) {
		out, err := r.Align(ctx, tpl, nil, alignment.Options{Horizontal: alignment.HDistribute}, Options{})
		if err != nil {
			t.Fatalf("Align error: %v", err)
		}
		for i, want := range []string{"a", "b", "c"} {
			if out.Regions[i].ID != want {
				t.Errorf("region %d = %q, want %q", i, out.Regions[i].ID, want)
			}
		}
	})
}

func TestAlignUnknownID(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()

	_, err := r.Align(ctx, testTemplate(), []string{"ghost"}, alignment.Options{Horizontal: alignment.HLeft}, Options{})
	if !errors.Is(err, errors.ErrCodeRegionNotFound) {
		t.Errorf("error code = %v, want REGION_NOT_FOUND", errors.GetCode(err))
	}
}

func TestSuggest(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()

	tpl := testTemplate().WithRegions([]sheet.Region{
		{ID: "q1", Kind: sheet.KindObjective, X: 50, Y: 100, Width: 6, Height: 6},
	})

	suggestions, err := r.Suggest(ctx, tpl, Options{})
	if err != nil {
		t.Fatalf("Suggest error: %v", err)
	}
	if len(suggestions) == 0 {
		t.Error("undersized bubbles and missing marks should yield suggestions")
	}
}

func TestRenderPreviewCaching(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()
	tpl := testTemplate()

	svg, hit, err := r.RenderPreviewWithCacheInfo(ctx, tpl, Options{})
	if err != nil {
		t.Fatalf("RenderPreviewWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("first render should miss the cache")
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("preview should be SVG, got %q", svg[:20])
	}

	cached, hit, err := r.RenderPreviewWithCacheInfo(ctx, tpl, Options{})
	if err != nil {
		t.Fatalf("RenderPreviewWithCacheInfo error: %v", err)
	}
	if !hit {
		t.Error("second render should hit the cache")
	}
	if !bytes.Equal(cached, svg) {
		t.Error("cached preview differs from computed")
	}

	_, hit, err = r.RenderPreviewWithCacheInfo(ctx, tpl, Options{PreviewLabels: true})
	if err != nil {
		t.Fatalf("RenderPreviewWithCacheInfo error: %v", err)
	}
	if hit {
		t.Error("different preview options should miss the cache")
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)
	defer r.Close()
	tpl := testTemplate()

	result, err := r.Execute(ctx, tpl, Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Report == nil {
		t.Fatal("Execute should produce a report")
	}
	if result.Report.OverallScore != 100 {
		t.Errorf("OverallScore = %v, want 100", result.Report.OverallScore)
	}
	if len(result.Preview) == 0 {
		t.Error("Execute should produce a preview")
	}
	if result.TemplateHash == "" {
		t.Error("Execute should record the template hash")
	}
	if result.Stats.RegionCount != len(tpl.Regions) {
		t.Errorf("RegionCount = %d, want %d", result.Stats.RegionCount, len(tpl.Regions))
	}

	again, err := r.Execute(ctx, tpl, Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !again.CacheInfo.ReportHit || !again.CacheInfo.PreviewHit {
		t.Errorf("second run should hit report and preview caches: %+v", again.CacheInfo)
	}
}

func TestOptionsProfile(t *testing.T) {
	t.Run("NamedProfile", func(t *testing.T) {
		opts := Options{Standards: "primary"}
		p, err := opts.Profile()
		if err != nil {
			t.Fatalf("Profile error: %v", err)
		}
		if p.Name != "primary" {
			t.Errorf("Name = %q, want primary", p.Name)
		}
	})

	t.Run("UnknownFallsBack", func(t *testing.T) {
		opts := Options{Standards: "martian"}
		p, err := opts.Profile()
		if err != nil {
			t.Fatalf("Profile error: %v", err)
		}
		if p.Name != "standard" {
			t.Errorf("Name = %q, want the default profile", p.Name)
		}
	})

	t.Run("MissingFileErrors", func(t *testing.T) {
		opts := Options{StandardsFile: "/does/not/exist.toml"}
		if _, err := opts.Profile(); err == nil {
			t.Error("missing standards file should error")
		}
	})
}
