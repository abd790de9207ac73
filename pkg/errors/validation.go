package errors

import (
	"strings"
	"unicode"
)

// ValidatePackageID checks that a NuGet package or project id is usable as
// an identifier and as a path segment inside a package cache.
//
// Rules:
//   - not empty
//   - at most 256 characters
//   - no control characters
//   - no path separators or parent-directory sequences
func ValidatePackageID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIdentifier, "package id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidIdentifier, "package id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIdentifier, "package id contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidIdentifier, "package id contains invalid characters: %q", pattern)
		}
	}
	return nil
}
