// Package standards is the OMR design-constraint catalog.
//
// A Profile bundles the geometric constraints a scanned answer sheet must
// satisfy for reliable mark recognition: bubble size and spacing ranges,
// page margins, and positioning-mark counts. Profiles are immutable value
// types selected once per template by exam type and passed explicitly to the
// engines; there is no ambient singleton, so two templates can be evaluated
// against different profiles concurrently.
//
// Unknown exam types fail soft to the default profile so an editor always
// has a usable constraint set. Custom profiles can be loaded from TOML files
// for printshops with their own scanner tolerances.
package standards

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sheetsmith/sheetsmith/pkg/errors"
)

// Bubble holds the size and spacing constraints for objective-question mark
// areas, in millimeters.
type Bubble struct {
	MinSize        float64 `toml:"min_size"`
	MaxSize        float64 `toml:"max_size"`
	OptimalSize    float64 `toml:"optimal_size"`
	MinSpacing     float64 `toml:"min_spacing"`
	OptimalSpacing float64 `toml:"optimal_spacing"`
}

// Margins is the keep-out border around the page edge, in millimeters.
type Margins struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

// Positioning holds the fiducial-mark count constraints. Scanners need at
// least MinCount marks to register a page; OptimalCount adds redundancy
// against smudged corners.
type Positioning struct {
	MinCount     int `toml:"min_count"`
	OptimalCount int `toml:"optimal_count"`
}

// Profile is an immutable named constraint bundle.
type Profile struct {
	Name        string      `toml:"name"`
	Bubble      Bubble      `toml:"bubble"`
	Margins     Margins     `toml:"margins"`
	Positioning Positioning `toml:"positioning"`
}

// Exam-type keys understood by ForExamType.
const (
	ExamStandard   = "standard"
	ExamPrimary    = "primary"
	ExamHighSchool = "highschool"
	ExamCollege    = "college"
)

// Default is the profile used when no exam type matches. Sized for adult
// handwriting on A4 sheets scanned at 200 dpi.
var Default = Profile{
	Name: ExamStandard,
	Bubble: Bubble{
		MinSize:        8,
		MaxSize:        15,
		OptimalSize:    10,
		MinSpacing:     5,
		OptimalSpacing: 8,
	},
	Margins:     Margins{Top: 15, Right: 15, Bottom: 15, Left: 15},
	Positioning: Positioning{MinCount: 3, OptimalCount: 4},
}

// catalog maps exam-type keys to their constraint profiles.
var catalog = map[string]Profile{
	ExamStandard: Default,
	// Younger students fill marks less precisely; bubbles and gaps grow.
	ExamPrimary: {
		Name: ExamPrimary,
		Bubble: Bubble{
			MinSize:        10,
			MaxSize:        18,
			OptimalSize:    12,
			MinSpacing:     6,
			OptimalSpacing: 10,
		},
		Margins:     Margins{Top: 18, Right: 18, Bottom: 18, Left: 18},
		Positioning: Positioning{MinCount: 3, OptimalCount: 4},
	},
	ExamHighSchool: {
		Name: ExamHighSchool,
		Bubble: Bubble{
			MinSize:        8,
			MaxSize:        14,
			OptimalSize:    10,
			MinSpacing:     5,
			OptimalSpacing: 8,
		},
		Margins:     Margins{Top: 15, Right: 15, Bottom: 15, Left: 15},
		Positioning: Positioning{MinCount: 3, OptimalCount: 4},
	},
	// High-stakes sheets: tighter tolerances and an extra fiducial.
	ExamCollege: {
		Name: ExamCollege,
		Bubble: Bubble{
			MinSize:        8,
			MaxSize:        12,
			OptimalSize:    9,
			MinSpacing:     6,
			OptimalSpacing: 9,
		},
		Margins:     Margins{Top: 20, Right: 15, Bottom: 20, Left: 15},
		Positioning: Positioning{MinCount: 4, OptimalCount: 4},
	},
}

// ForExamType returns the constraint profile for an exam-type key.
// Unknown or empty keys fall back to the default profile rather than
// erroring, so callers always get a usable profile.
func ForExamType(examType string) Profile {
	if p, ok := catalog[examType]; ok {
		return p
	}
	return Default
}

// ExamTypes returns the known exam-type keys in stable order.
func ExamTypes() []string {
	return []string{ExamStandard, ExamPrimary, ExamHighSchool, ExamCollege}
}

// LoadProfile reads a custom profile from a TOML file. Omitted fields keep
// the default profile's values, so a file only needs to state what differs.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidProfile, err, "read %s", path)
	}

	p := Default
	p.Name = ""
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parse %s", path)
	}
	if p.Name == "" {
		p.Name = "custom"
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks that the profile's constraints are internally consistent.
func (p Profile) Validate() error {
	if p.Bubble.MinSize <= 0 || p.Bubble.MaxSize <= 0 {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: bubble sizes must be positive", p.Name)
	}
	if p.Bubble.MinSize > p.Bubble.MaxSize {
		return errors.New(errors.ErrCodeInvalidProfile,
			"profile %q: bubble min_size %g exceeds max_size %g", p.Name, p.Bubble.MinSize, p.Bubble.MaxSize)
	}
	if p.Bubble.MinSpacing < 0 || p.Bubble.OptimalSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: spacing cannot be negative", p.Name)
	}
	if p.Margins.Top < 0 || p.Margins.Right < 0 || p.Margins.Bottom < 0 || p.Margins.Left < 0 {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: margins cannot be negative", p.Name)
	}
	if p.Positioning.MinCount < 0 || p.Positioning.OptimalCount < p.Positioning.MinCount {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: positioning counts are inconsistent", p.Name)
	}
	return nil
}
