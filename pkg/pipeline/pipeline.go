// Package pipeline provides the core template-processing pipeline.
//
// The pipeline wraps the engine packages (validate, collide, autolayout,
// alignment, suggest, render) behind a single Runner so the CLI and any
// embedding service share one caching and logging story.
//
// # Usage
//
// Create a Runner and run the stages you need:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Standards: "standard"}
//	report, err := runner.Validate(ctx, tpl, opts)
//
// Or run the full analyze pipeline:
//
//	result, err := runner.Execute(ctx, tpl, opts)
//	svg := result.Preview
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/sheetsmith/sheetsmith/pkg/autolayout"
	"github.com/sheetsmith/sheetsmith/pkg/cache"
	"github.com/sheetsmith/sheetsmith/pkg/errors"
	"github.com/sheetsmith/sheetsmith/pkg/sheet"
	"github.com/sheetsmith/sheetsmith/pkg/standards"
	"github.com/sheetsmith/sheetsmith/pkg/suggest"
	"github.com/sheetsmith/sheetsmith/pkg/validate"
)

// Default preview scale in pixels per millimeter.
const DefaultPreviewScale = 4.0

// ValidLayoutModes is the set of supported layout modes.
var ValidLayoutModes = map[autolayout.Mode]bool{
	autolayout.ModeGrid:     true,
	autolayout.ModeLinear:   true,
	autolayout.ModeAdaptive: true,
}

// Options configures a pipeline run. The zero value validates against the
// default standards profile with an adaptive layout.
type Options struct {
	// Standards selects a named standards profile. Unknown names fall
	// back to the default profile.
	Standards string `json:"standards,omitempty"`

	// StandardsFile loads a custom TOML profile and takes precedence
	// over Standards.
	StandardsFile string `json:"standards_file,omitempty"`

	// Layout options
	Mode    autolayout.Mode `json:"mode,omitempty"`
	Columns int             `json:"columns,omitempty"`
	Rows    int             `json:"rows,omitempty"`
	Spacing float64         `json:"spacing,omitempty"`

	// Preview options
	PreviewScale  float64 `json:"preview_scale,omitempty"`
	PreviewLabels bool    `json:"preview_labels,omitempty"`
	PreviewGrid   bool    `json:"preview_grid,omitempty"`

	// Refresh bypasses cache reads so every stage recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// resolvedProfile memoizes Profile() so one run loads the custom
	// file at most once.
	resolvedProfile *standards.Profile
}

// Result contains the outputs of a full pipeline run.
type Result struct {
	// Report is the validation report for the input template.
	Report *validate.Report

	// Suggestions are the ranked design recommendations.
	Suggestions []suggest.Suggestion

	// Preview is the rendered SVG preview.
	Preview []byte

	// TemplateHash is the content hash of the input template.
	TemplateHash string

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RegionCount  int
	ValidateTime time.Duration
	SuggestTime  time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ReportHit  bool // Whether the validation report came from cache
	LayoutHit  bool // Whether the computed layout came from cache
	PreviewHit bool // Whether the rendered preview came from cache
}

// Profile resolves the standards profile: an explicit file wins over a
// named profile, which falls back to the default. The result is memoized.
func (o *Options) Profile() (standards.Profile, error) {
	if o.resolvedProfile != nil {
		return *o.resolvedProfile, nil
	}

	var p standards.Profile
	if o.StandardsFile != "" {
		loaded, err := standards.LoadProfile(o.StandardsFile)
		if err != nil {
			return standards.Profile{}, err
		}
		p = loaded
	} else {
		p = standards.ForExamType(o.Standards)
	}

	o.resolvedProfile = &p
	return p, nil
}

// ValidateForLayout checks layout options and applies defaults.
func (o *Options) ValidateForLayout() error {
	if o.Mode == "" {
		o.Mode = autolayout.ModeAdaptive
	}
	if !ValidLayoutModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidLayout,
			"invalid layout mode %q (must be one of: grid, linear, adaptive)", o.Mode)
	}
	return errors.ValidateNonNegative("spacing", o.Spacing)
}

// SetPreviewDefaults applies preview defaults.
func (o *Options) SetPreviewDefaults() {
	if o.PreviewScale == 0 {
		o.PreviewScale = DefaultPreviewScale
	}
}

// LayoutConfig converts the options into an autolayout configuration.
func (o *Options) LayoutConfig(profile standards.Profile) autolayout.Config {
	cfg := autolayout.Config{
		Mode:    o.Mode,
		Columns: o.Columns,
		Rows:    o.Rows,
		Margins: &profile.Margins,
	}
	if o.Spacing > 0 {
		cfg.Spacing = autolayout.Spacing{Horizontal: o.Spacing, Vertical: o.Spacing}
	}
	return cfg
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(profileHash string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Profile: profileHash,
		Mode:    string(o.Mode),
		Columns: o.Columns,
		Rows:    o.Rows,
		Spacing: o.Spacing,
	}
}

// PreviewKeyOpts returns cache key options for preview rendering.
func (o *Options) PreviewKeyOpts() cache.PreviewKeyOpts {
	return cache.PreviewKeyOpts{
		Scale:  o.PreviewScale,
		Labels: o.PreviewLabels,
		Grid:   o.PreviewGrid,
	}
}

// templateHash derives the cache-key hash for a template's content.
func templateHash(tpl *sheet.Template) (string, error) {
	data, err := tpl.Marshal()
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
