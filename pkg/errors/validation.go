package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateContainerSize validates container dimensions supplied by a host.
// Zero is allowed and means "not laid out yet"; negative, NaN and infinite
// values are rejected.
func ValidateContainerSize(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidSize, "container size must be a finite number")
		}
		if v < 0 {
			return New(ErrCodeInvalidSize, "container size cannot be negative (got %gx%g)", width, height)
		}
	}
	return nil
}

// ValidateOutputPath validates a path the CLI writes an artifact to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// validFormats is the set of supported artifact formats.
var validFormats = map[string]bool{"svg": true, "png": true, "pdf": true, "json": true}

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[strings.TrimSpace(f)] {
			return New(ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', 'pdf', or 'json')", f)
		}
	}
	return nil
}
