package rules

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchesExtension reports whether ext (normalized, lowercase, leading dot)
// matches pattern, which is either a single extension glob (e.g. "*.pdf") or
// a brace list of extensions (e.g. "*.{jpg,jpeg,png}"). pattern is lowercased
// before matching so an uppercase rule pattern still matches a lowercase
// extension.
//
// Patterns that fail to validate never match, rather than erroring at match
// time.
func matchesExtension(pattern, ext string) bool {
	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return false
	}
	matched, err := doublestar.Match(pattern, "x"+ext)
	if err != nil {
		return false
	}
	return matched
}
