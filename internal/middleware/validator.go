package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/skinai/internal/domain/catalog"
)

// Input validation and sanitization utilities

const maxQueryLen = 100

// ValidateID id flow / handoff harus UUID
func ValidateID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s id cannot be empty", kind)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid %s id format", kind)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// SanitizeQuery untuk search produk: bersih + dipotong
func SanitizeQuery(q string) string {
	q = SanitizeString(q)
	if r := []rune(q); len(r) > maxQueryLen {
		q = string(r[:maxQueryLen])
	}
	return q
}

// ValidateSkinType kosong dianggap "All"
func ValidateSkinType(s string) (string, error) {
	if s == "" {
		return catalog.SkinTypeAll, nil
	}
	if !catalog.IsValidSkinType(s) {
		return "", fmt.Errorf("invalid skin type: %s (allowed: %s)", s, strings.Join(catalog.SkinTypeFilters, ", "))
	}
	return s, nil
}

// ValidateLimit validates recommendation limit
func ValidateLimit(raw string, def int) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	if limit > 20 {
		return 20
	}
	return limit
}
