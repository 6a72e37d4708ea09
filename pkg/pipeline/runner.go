package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sheetsmith/sheetsmith/pkg/alignment"
	"github.com/sheetsmith/sheetsmith/pkg/autolayout"
	"github.com/sheetsmith/sheetsmith/pkg/cache"
	"github.com/sheetsmith/sheetsmith/pkg/collide"
	"github.com/sheetsmith/sheetsmith/pkg/errors"
	"github.com/sheetsmith/sheetsmith/pkg/observability"
	"github.com/sheetsmith/sheetsmith/pkg/render"
	"github.com/sheetsmith/sheetsmith/pkg/sheet"
	"github.com/sheetsmith/sheetsmith/pkg/standards"
	"github.com/sheetsmith/sheetsmith/pkg/suggest"
	"github.com/sheetsmith/sheetsmith/pkg/validate"
)

// Runner executes pipeline stages with caching.
//
// The Runner is stateless except for the cache and logger; it stores no
// stage results, so multiple goroutines can share one Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer gets the default keyer; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the full analyze pipeline: validate, suggest, and render a
// preview for the template.
func (r *Runner) Execute(ctx context.Context, tpl *sheet.Template, opts Options) (*Result, error) {
	r.applyLogger(&opts)

	result := &Result{Stats: Stats{RegionCount: len(tpl.Regions)}}
	if hash, err := templateHash(tpl); err == nil {
		result.TemplateHash = hash
	}

	validateStart := time.Now()
	report, reportHit, err := r.ValidateWithCacheInfo(ctx, tpl, opts)
	if err != nil {
		return nil, err
	}
	result.Report = report
	result.Stats.ValidateTime = time.Since(validateStart)
	result.CacheInfo.ReportHit = reportHit

	r.Logger.Info("validated template",
		"regions", len(tpl.Regions),
		"score", report.OverallScore,
		"duration", result.Stats.ValidateTime)

	suggestStart := time.Now()
	result.Suggestions, err = r.Suggest(ctx, tpl, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.SuggestTime = time.Since(suggestStart)

	renderStart := time.Now()
	preview, previewHit, err := r.RenderPreviewWithCacheInfo(ctx, tpl, opts)
	if err != nil {
		return nil, err
	}
	result.Preview = preview
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.PreviewHit = previewHit

	r.Logger.Info("rendered preview",
		"bytes", len(preview),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ValidateWithCacheInfo scores the template with caching and reports
// whether the result came from cache.
func (r *Runner) ValidateWithCacheInfo(ctx context.Context, tpl *sheet.Template, opts Options) (*validate.Report, bool, error) {
	r.applyLogger(&opts)

	profile, err := opts.Profile()
	if err != nil {
		return nil, false, err
	}

	hash, err := templateHash(tpl)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash template")
	}
	key := r.Keyer.ReportKey(hash, cache.ReportKeyOpts{Profile: profileHash(profile)})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached validate.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "report")
	}

	observability.Engine().OnValidateStart(ctx, tpl.Name, len(tpl.Regions))
	start := time.Now()
	report := validate.Score(tpl.Regions, profile, tpl.Page)
	observability.Engine().OnValidateComplete(ctx, tpl.Name, report.OverallScore, time.Since(start), nil)

	if data, err := json.Marshal(report); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLReport)
		observability.Cache().OnCacheSet(ctx, "report", len(data))
	}

	return &report, false, nil
}

// Validate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Validate(ctx context.Context, tpl *sheet.Template, opts Options) (*validate.Report, error) {
	report, _, err := r.ValidateWithCacheInfo(ctx, tpl, opts)
	return report, err
}

// Resolve detects and resolves region collisions. It returns the resolved
// template and the number of collisions that were found. Resolution is not
// cached: it is cheap and its output feeds further edits.
func (r *Runner) Resolve(ctx context.Context, tpl *sheet.Template, opts Options) (*sheet.Template, int, error) {
	r.applyLogger(&opts)

	profile, err := opts.Profile()
	if err != nil {
		return nil, 0, err
	}

	collisions := collide.Detect(tpl.Regions)
	if len(collisions) == 0 {
		return tpl, 0, nil
	}

	resolved := collide.Resolve(tpl.Regions, profile, tpl.Page)
	r.Logger.Info("resolved collisions",
		"collisions", len(collisions),
		"regions", len(resolved))

	return tpl.WithRegions(resolved), len(collisions), nil
}

// LayoutWithCacheInfo recomputes region positions with caching and reports
// whether the result came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, tpl *sheet.Template, opts Options) (*sheet.Template, bool, error) {
	r.applyLogger(&opts)

	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	profile, err := opts.Profile()
	if err != nil {
		return nil, false, err
	}

	hash, err := templateHash(tpl)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash template")
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts(profileHash(profile)))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached []sheet.Region
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return tpl.WithRegions(cached), true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Engine().OnLayoutStart(ctx, string(opts.Mode), len(tpl.Regions))
	start := time.Now()
	regions, err := autolayout.Apply(tpl.Regions, opts.LayoutConfig(profile), tpl.Page, profile)
	observability.Engine().OnLayoutComplete(ctx, string(opts.Mode), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Info("computed layout",
		"mode", opts.Mode,
		"regions", len(regions),
		"duration", time.Since(start))

	if data, err := json.Marshal(regions); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return tpl.WithRegions(regions), false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, tpl *sheet.Template, opts Options) (*sheet.Template, error) {
	out, _, err := r.LayoutWithCacheInfo(ctx, tpl, opts)
	return out, err
}

// Align aligns or distributes the selected regions. An empty id list
// selects every region. Unknown ids fail before anything moves. The output
// keeps the template's region order: layout and collision resolution are
// order-dependent, so an align pass must not reshuffle the list.
func (r *Runner) Align(ctx context.Context, tpl *sheet.Template, ids []string, alignOpts alignment.Options, opts Options) (*sheet.Template, error) {
	r.applyLogger(&opts)

	selected, err := selectRegions(tpl.Regions, ids)
	if err != nil {
		return nil, err
	}

	aligned := alignment.Align(selected, alignOpts)

	// Write results back by id; distribution may have reordered aligned.
	byID := make(map[string]sheet.Region, len(aligned))
	for _, a := range aligned {
		byID[a.ID] = a
	}
	out := sheet.CloneRegions(tpl.Regions)
	for i := range out {
		if a, ok := byID[out[i].ID]; ok {
			out[i] = a
		}
	}

	r.Logger.Info("aligned regions",
		"selected", len(aligned),
		"horizontal", alignOpts.Horizontal,
		"vertical", alignOpts.Vertical)

	return tpl.WithRegions(out), nil
}

// Suggest generates ranked design suggestions for the template.
func (r *Runner) Suggest(ctx context.Context, tpl *sheet.Template, opts Options) ([]suggest.Suggestion, error) {
	r.applyLogger(&opts)

	profile, err := opts.Profile()
	if err != nil {
		return nil, err
	}
	return suggest.Suggest(tpl.Regions, profile, tpl.Page), nil
}

// RenderPreviewWithCacheInfo renders an SVG preview with caching and
// reports whether the result came from cache.
func (r *Runner) RenderPreviewWithCacheInfo(ctx context.Context, tpl *sheet.Template, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetPreviewDefaults()

	profile, err := opts.Profile()
	if err != nil {
		return nil, false, err
	}

	hash, err := templateHash(tpl)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash template")
	}
	key := r.Keyer.PreviewKey(hash, opts.PreviewKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "preview")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "preview")
	}

	observability.Engine().OnRenderStart(ctx, tpl.Name)
	start := time.Now()

	renderOpts := []render.SVGOption{
		render.WithScale(opts.PreviewScale),
		render.WithMargins(profile.Margins.Top, profile.Margins.Right, profile.Margins.Bottom, profile.Margins.Left),
	}
	if opts.PreviewLabels {
		renderOpts = append(renderOpts, render.WithLabels())
	}
	if opts.PreviewGrid {
		renderOpts = append(renderOpts, render.WithGrid())
	}
	svg := render.RenderSVG(tpl, renderOpts...)

	observability.Engine().OnRenderComplete(ctx, tpl.Name, len(svg), time.Since(start), nil)

	_ = r.Cache.Set(ctx, key, svg, cache.TTLPreview)
	observability.Cache().OnCacheSet(ctx, "preview", len(svg))

	return svg, false, nil
}

// RenderPreview is a convenience wrapper that discards the cache hit info.
func (r *Runner) RenderPreview(ctx context.Context, tpl *sheet.Template, opts Options) ([]byte, error) {
	svg, _, err := r.RenderPreviewWithCacheInfo(ctx, tpl, opts)
	return svg, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// profileHash fingerprints a profile for cache keys so custom files and
// named profiles with identical values share entries.
func profileHash(p standards.Profile) string {
	data, _ := json.Marshal(p)
	return cache.Hash(data)
}

// selectRegions resolves ids to their regions, deduplicated, in id order.
// An empty id list selects every region.
func selectRegions(regions []sheet.Region, ids []string) ([]sheet.Region, error) {
	if len(ids) == 0 {
		return sheet.CloneRegions(regions), nil
	}

	byID := make(map[string]sheet.Region, len(regions))
	for _, r := range regions {
		byID[r.ID] = r
	}

	seen := make(map[string]bool, len(ids))
	var selected []sheet.Region
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeRegionNotFound, "region %q not found", id)
		}
		if !seen[id] {
			selected = append(selected, r.Clone())
			seen[id] = true
		}
	}
	return selected, nil
}
