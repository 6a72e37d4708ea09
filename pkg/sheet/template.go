package sheet

import (
	"encoding/json"
	"io"
	"os"

	"github.com/sheetsmith/sheetsmith/pkg/errors"
)

// Template is the serialized answer-sheet document: a page plus its ordered
// region list. The JSON format is lossless for every Region field; numeric
// fields are plain numbers and kinds are their string values.
type Template struct {
	Name     string   `json:"name,omitempty"`
	ExamType string   `json:"examType,omitempty"`
	Page     Page     `json:"page"`
	Regions  []Region `json:"regions"`
}

// ReadTemplate decodes a template from r and validates it.
//
// An unset page defaults to A4. Regions without an id get a generated one,
// matching editor behavior for freshly drawn rectangles. Any degenerate
// region or duplicate id rejects the whole document.
func ReadTemplate(r io.Reader) (*Template, error) {
	var t Template
	dec := json.NewDecoder(r)
	if err := dec.Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode template")
	}

	if t.Page.IsZero() {
		t.Page = A4
	}
	if err := t.Page.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(t.Regions))
	for i := range t.Regions {
		if t.Regions[i].ID == "" {
			t.Regions[i].ID = NewRegionID()
		}
		if err := t.Regions[i].Validate(); err != nil {
			return nil, err
		}
		if seen[t.Regions[i].ID] {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "duplicate region id %q", t.Regions[i].ID)
		}
		seen[t.Regions[i].ID] = true
	}

	return &t, nil
}

// ReadTemplateFile reads a template from a JSON file at path.
func ReadTemplateFile(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "open %s", path)
	}
	defer f.Close()
	return ReadTemplate(f)
}

// Write encodes the template as indented JSON.
func (t *Template) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode template")
	}
	return nil
}

// WriteFile writes the template to a JSON file at path.
func (t *Template) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return t.Write(f)
}

// Marshal returns the canonical JSON bytes of the template. The engine uses
// this for content-addressed cache keys, so the output is deterministic for
// a given template value.
func (t *Template) Marshal() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal template")
	}
	return data, nil
}

// WithRegions returns a copy of the template carrying the given region list.
// The page and metadata are shared; the regions slice is used as passed.
func (t *Template) WithRegions(regions []Region) *Template {
	out := *t
	out.Regions = regions
	return &out
}

// Region returns the region with the given id, if present.
func (t *Template) Region(id string) (Region, bool) {
	for _, r := range t.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}
