// Package cache provides pluggable byte caches and key derivation for the
// layout engine.
//
// Three artifact classes are cached: validation reports, computed layouts,
// and rendered previews. Keys are derived from a template content hash plus
// the options that influenced the result, so a changed template or a changed
// flag always misses.
package cache

import (
	"context"
	"time"
)

// Default TTLs per artifact class. Reports and layouts are cheap to
// recompute; previews are kept longer.
const (
	TTLReport  = 24 * time.Hour
	TTLLayout  = 24 * time.Hour
	TTLPreview = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ReportKeyOpts are the inputs beyond the template that shape a
// validation report.
type ReportKeyOpts struct {
	Profile string `json:"profile"`
}

// LayoutKeyOpts are the inputs beyond the template that shape a
// computed layout.
type LayoutKeyOpts struct {
	Profile string  `json:"profile"`
	Mode    string  `json:"mode"`
	Columns int     `json:"columns"`
	Rows    int     `json:"rows"`
	Spacing float64 `json:"spacing"`
}

// PreviewKeyOpts are the inputs beyond the template that shape a
// rendered preview.
type PreviewKeyOpts struct {
	Scale  float64 `json:"scale"`
	Labels bool    `json:"labels"`
	Grid   bool    `json:"grid"`
}

// Keyer derives cache keys for the engine's artifact classes.
type Keyer interface {
	ReportKey(templateHash string, opts ReportKeyOpts) string
	LayoutKey(templateHash string, opts LayoutKeyOpts) string
	PreviewKey(templateHash string, opts PreviewKeyOpts) string
}

// DefaultKeyer derives keys as prefix:sha256(inputs).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// ReportKey generates a key for validation report caching.
func (k *DefaultKeyer) ReportKey(templateHash string, opts ReportKeyOpts) string {
	return hashKey("report", templateHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(templateHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", templateHash, opts)
}

// PreviewKey generates a key for preview caching.
func (k *DefaultKeyer) PreviewKey(templateHash string, opts PreviewKeyOpts) string {
	return hashKey("preview", templateHash, opts)
}
