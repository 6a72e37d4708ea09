// Package sheet defines the answer-sheet template model.
//
// A template is a page (in millimeters, top-left origin) plus a flat ordered
// list of rectangular regions: positioning marks, barcodes, question areas,
// and page furniture. Regions are immutable value types from the engine's
// point of view; every mutating operation elsewhere in the module takes a
// region slice and returns a new one.
//
// Degenerate geometry is rejected at this boundary: a region with
// non-positive width or height never reaches the validation, collision, or
// layout engines.
//
// Quality metrics are deliberately NOT stored on regions. They are a derived
// projection computed by the validate package, so a standards-profile swap
// can never leave stale scores behind.
package sheet
