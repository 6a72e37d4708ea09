package standards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sheetsmith/sheetsmith/pkg/errors"
)

func TestForExamType(t *testing.T) {
	tests := []struct {
		name     string
		examType string
		wantName string
	}{
		{name: "Standard", examType: "standard", wantName: "standard"},
		{name: "Primary", examType: "primary", wantName: "primary"},
		{name: "College", examType: "college", wantName: "college"},
		{name: "UnknownFallsBack", examType: "space-academy", wantName: "standard"},
		{name: "EmptyFallsBack", examType: "", wantName: "standard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ForExamType(tt.examType)
			if p.Name != tt.wantName {
				t.Errorf("ForExamType(%q).Name = %q, want %q", tt.examType, p.Name, tt.wantName)
			}
			if err := p.Validate(); err != nil {
				t.Errorf("built-in profile %q invalid: %v", p.Name, err)
			}
		})
	}
}

func TestDefaultProfileConstants(t *testing.T) {
	// The validator's scenario expectations depend on these values.
	if Default.Bubble.MinSize != 8 {
		t.Errorf("Default.Bubble.MinSize = %g, want 8", Default.Bubble.MinSize)
	}
	if Default.Margins.Left != 15 {
		t.Errorf("Default.Margins.Left = %g, want 15", Default.Margins.Left)
	}
	if Default.Positioning.MinCount != 3 {
		t.Errorf("Default.Positioning.MinCount = %d, want 3", Default.Positioning.MinCount)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	content := `name = "printshop"

[bubble]
min_size = 9.0
optimal_size = 11.0

[margins]
left = 20.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}

	if p.Name != "printshop" {
		t.Errorf("Name = %q, want printshop", p.Name)
	}
	if p.Bubble.MinSize != 9 {
		t.Errorf("Bubble.MinSize = %g, want 9 (from file)", p.Bubble.MinSize)
	}
	if p.Bubble.MaxSize != Default.Bubble.MaxSize {
		t.Errorf("Bubble.MaxSize = %g, want default %g", p.Bubble.MaxSize, Default.Bubble.MaxSize)
	}
	if p.Margins.Left != 20 {
		t.Errorf("Margins.Left = %g, want 20 (from file)", p.Margins.Left)
	}
	if p.Margins.Right != Default.Margins.Right {
		t.Errorf("Margins.Right = %g, want default %g", p.Margins.Right, Default.Margins.Right)
	}
}

func TestLoadProfileErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		os.WriteFile(path, []byte("[bubble\nmin_size = 9"), 0644)
		_, err := LoadProfile(path)
		if !errors.Is(err, errors.ErrCodeInvalidProfile) {
			t.Errorf("error code = %v, want INVALID_PROFILE", errors.GetCode(err))
		}
	})

	t.Run("Inconsistent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inconsistent.toml")
		os.WriteFile(path, []byte("[bubble]\nmin_size = 20.0\nmax_size = 10.0\n"), 0644)
		_, err := LoadProfile(path)
		if !errors.Is(err, errors.ErrCodeInvalidProfile) {
			t.Errorf("error code = %v, want INVALID_PROFILE", errors.GetCode(err))
		}
	})
}

func TestProfileValidate(t *testing.T) {
	p := Default
	p.Positioning.OptimalCount = 1 // below MinCount
	if err := p.Validate(); err == nil {
		t.Error("inconsistent positioning counts should fail validation")
	}
}
