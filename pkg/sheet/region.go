package sheet

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sheetsmith/sheetsmith/pkg/errors"
	"github.com/sheetsmith/sheetsmith/pkg/geom"
)

// Kind classifies what a region is used for on the printed sheet.
// The set is closed; unknown kinds are rejected at the model boundary.
type Kind string

// Region kinds.
const (
	KindPositioning Kind = "positioning"
	KindBarcode     Kind = "barcode"
	KindObjective   Kind = "objective-question"
	KindSubjective  Kind = "subjective-question"
	KindHeader      Kind = "header"
	KindFooter      Kind = "footer"
	KindStudentInfo Kind = "student-info"
)

// Kinds returns all valid region kinds in display order.
func Kinds() []Kind {
	return []Kind{
		KindPositioning,
		KindBarcode,
		KindObjective,
		KindSubjective,
		KindHeader,
		KindFooter,
		KindStudentInfo,
	}
}

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	switch k {
	case KindPositioning, KindBarcode, KindObjective, KindSubjective,
		KindHeader, KindFooter, KindStudentInfo:
		return true
	}
	return false
}

// Region is a rectangle with semantics: a positioning mark, a barcode box,
// an answer area. Geometry is in page millimeters with a top-left origin.
type Region struct {
	ID      string `json:"id"`
	Kind    Kind   `json:"kind"`
	SubKind string `json:"subKind,omitempty"` // e.g. choice, fill-blank, essay

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Properties is a kind-dependent attribute bag (questionNumber, maxScore,
	// choiceCount, barcodeSubtype). It is carried losslessly and only
	// interpreted where a consumer cares.
	Properties map[string]any `json:"properties,omitempty"`
}

// NewRegion constructs a validated region. An empty id is replaced with a
// generated one; degenerate geometry and unknown kinds are rejected.
func NewRegion(id string, kind Kind, x, y, width, height float64) (Region, error) {
	if id == "" {
		id = NewRegionID()
	}
	r := Region{ID: id, Kind: kind, X: x, Y: y, Width: width, Height: height}
	if err := r.Validate(); err != nil {
		return Region{}, err
	}
	return r, nil
}

// NewRegionID returns a fresh unique region identifier.
func NewRegionID() string {
	return uuid.NewString()
}

// Validate checks the model invariants: a well-formed id, a known kind, and
// strictly positive width and height.
func (r Region) Validate() error {
	if err := errors.ValidateRegionID(r.ID); err != nil {
		return err
	}
	if !r.Kind.Valid() {
		return errors.New(errors.ErrCodeInvalidKind, "region %q: unknown kind %q", r.ID, r.Kind)
	}
	if err := errors.ValidatePositive(fmt.Sprintf("region %q: width", r.ID), r.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive(fmt.Sprintf("region %q: height", r.ID), r.Height); err != nil {
		return err
	}
	return nil
}

// Bounds returns the region's rectangle for geometry computations.
func (r Region) Bounds() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Clone returns a deep copy of the region, including its property bag.
func (r Region) Clone() Region {
	out := r
	if r.Properties != nil {
		out.Properties = make(map[string]any, len(r.Properties))
		for k, v := range r.Properties {
			out.Properties[k] = v
		}
	}
	return out
}

// CloneRegions deep-copies a region slice. Engines use this so the caller's
// snapshot is never mutated in place.
func CloneRegions(regions []Region) []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		out[i] = r.Clone()
	}
	return out
}

// CountKind returns the number of regions of the given kind.
func CountKind(regions []Region, kind Kind) int {
	n := 0
	for _, r := range regions {
		if r.Kind == kind {
			n++
		}
	}
	return n
}
