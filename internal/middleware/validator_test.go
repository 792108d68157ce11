package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("flow", "6f1c2a7e-3b7c-4d5e-9f70-1a2b3c4d5e6f"))
	assert.EqualError(t, ValidateID("flow", ""), "flow id cannot be empty")
	assert.EqualError(t, ValidateID("handoff", "../etc"), "invalid handoff id format")
}

func TestSanitizeQuery(t *testing.T) {
	assert.Equal(t, "vitamin c", SanitizeQuery("  vitamin\x00 c\x07 "))
	long := strings.Repeat("é", 150)
	assert.Len(t, []rune(SanitizeQuery(long)), 100)
}

func TestValidateSkinType(t *testing.T) {
	got, err := ValidateSkinType("")
	require.NoError(t, err)
	assert.Equal(t, "All", got)

	got, err = ValidateSkinType("Oily")
	require.NoError(t, err)
	assert.Equal(t, "Oily", got)

	_, err = ValidateSkinType("Scaly")
	assert.ErrorContains(t, err, "invalid skin type: Scaly")
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 4, ValidateLimit("", 4))
	assert.Equal(t, 4, ValidateLimit("abc", 4))
	assert.Equal(t, 4, ValidateLimit("-2", 4))
	assert.Equal(t, 7, ValidateLimit("7", 4))
	assert.Equal(t, 20, ValidateLimit("500", 4))
}
