package errors

import (
	"strings"
	"unicode"
)

// maxGenomeNameLength bounds genome names; names double as colors in split
// identifiers and report keys.
const maxGenomeNameLength = 256

// SplitSeparator joins colors in split identifiers. Genome names may not
// contain it, otherwise identifiers would not round-trip.
const SplitSeparator = "..."

// ValidateGenomeName validates a genome name for use as a color.
//
// The validation rules:
//   - No empty names
//   - No control characters (tabs included) and no leading or trailing spaces;
//     interior spaces are fine ("E coli K12")
//   - No split separator sequence ("...")
//   - Maximum length of 256 characters
func ValidateGenomeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGenomeName, "genome name cannot be empty")
	}

	if len(name) > maxGenomeNameLength {
		return New(ErrCodeInvalidGenomeName, "genome name too long (max %d characters)", maxGenomeNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGenomeName, "genome name %q contains control characters", name)
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidGenomeName, "genome name %q has leading or trailing spaces", name)
	}

	if strings.Contains(name, SplitSeparator) {
		return New(ErrCodeInvalidGenomeName, "genome name %q contains reserved sequence %q", name, SplitSeparator)
	}

	return nil
}

// ValidateMarkerID validates a marker identifier.
// Marker IDs must be non-empty and free of whitespace; the UniMoG reader
// splits on whitespace, so anything else could never have been read back.
func ValidateMarkerID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "marker id cannot be empty")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "marker id %q contains whitespace or control characters", id)
		}
	}
	return nil
}
