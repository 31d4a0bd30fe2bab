package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Compiled regular expressions for validation
var (
	// Allow alphanumeric, underscore, hyphen, dot - column slugs and page names
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const (
	maxIDLength     = 100
	maxFilterLength = 100
	maxQueryLength  = 200
)

// ValidateID validates that a path identifier is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > maxIDLength {
		return fmt.Errorf("id too long (max %d characters)", maxIDLength)
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateFilterValue validates a category value such as a country or
// continent name. Empty values are allowed and mean "no filter".
func ValidateFilterValue(value string) error {
	if value == "" {
		return nil
	}

	if len(value) > maxFilterLength {
		return fmt.Errorf("value too long (max %d characters)", maxFilterLength)
	}

	if dangerousPattern.MatchString(value) {
		return errors.New("value contains invalid characters")
	}

	return nil
}

// ValidateQuery validates free-form query strings such as column lists
func ValidateQuery(query string) error {
	if query == "" {
		return nil
	}

	if len(query) > maxQueryLength {
		return fmt.Errorf("query too long (max %d characters)", maxQueryLength)
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// ValidateLimit checks a result size against an upper bound.
func ValidateLimit(n, max int) error {
	if n < 1 {
		return errors.New("must be at least 1")
	}
	if n > max {
		return fmt.Errorf("must be at most %d", max)
	}
	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateAndSanitizeQuery validates and sanitizes a query
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}
