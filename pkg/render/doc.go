// Package render turns templates into visual previews.
//
// The only sink is SVG: [RenderSVG] draws the page outline, an optional
// reference grid and margin boundary, and one color-coded rectangle per
// region. Output is deterministic for a given template, so previews are
// safe to cache and diff.
//
//	svg := render.RenderSVG(tpl, render.WithLabels(), render.WithMargins(15, 15, 15, 15))
package render
