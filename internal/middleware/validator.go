package middleware

import (
	"fmt"
	"strings"
)

// Input validation and sanitization utilities

const maxCompoundNameLen = 128

// ValidateCompoundName checks a submitted drug/compound name. PubChem names
// are free-form, so this only rejects blank input, oversized input and
// control characters.
func ValidateCompoundName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("drug_name cannot be empty")
	}
	if len(trimmed) > maxCompoundNameLen {
		return fmt.Errorf("drug_name too long (max %d characters)", maxCompoundNameLen)
	}
	for _, r := range trimmed {
		if r < 32 {
			return fmt.Errorf("drug_name contains control characters")
		}
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidatePage normalizes a page number
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// ValidatePageSize normalizes a page size
func ValidatePageSize(size int) int {
	if size <= 0 {
		return 20 // default
	}
	if size > 100 {
		return 100 // max
	}
	return size
}
