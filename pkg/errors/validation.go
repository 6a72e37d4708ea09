package errors

import "unicode"

// ValidateRegionID validates a region identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 128 characters
//
// Identifiers are opaque to the engine; these rules only guard against
// values that would corrupt reports or serialized templates.
func ValidateRegionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRegion, "region id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidRegion, "region id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRegion, "region id contains invalid control characters")
		}
	}

	return nil
}

// ValidatePositive validates that a dimension is strictly positive.
// The field name is included in the error so callers can surface which
// coordinate was degenerate.
func ValidatePositive(field string, v float64) error {
	if v <= 0 {
		return New(ErrCodeInvalidRegion, "%s must be positive, got %g", field, v)
	}
	return nil
}

// ValidateNonNegative validates that a value is zero or greater.
func ValidateNonNegative(field string, v float64) error {
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative, got %g", field, v)
	}
	return nil
}
