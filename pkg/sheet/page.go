package sheet

import "github.com/sheetsmith/sheetsmith/pkg/errors"

// Page is the printable coordinate space all regions live in, in millimeters.
// Pages are set once per template and read-only to the engines.
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Standard page sizes.
var (
	// A4 is the default answer-sheet page (210 × 297 mm).
	A4 = Page{Width: 210, Height: 297}

	// A3 landscape, common for two-column sheets.
	A3Landscape = Page{Width: 420, Height: 297}
)

// Validate checks that the page has positive dimensions.
func (p Page) Validate() error {
	if p.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidPage, "page width must be positive, got %g", p.Width)
	}
	if p.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidPage, "page height must be positive, got %g", p.Height)
	}
	return nil
}

// IsZero reports whether the page is unset.
func (p Page) IsZero() bool {
	return p.Width == 0 && p.Height == 0
}
