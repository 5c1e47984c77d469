package hash_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"userhub/pkg/hash"
)

func TestEncodeNeverReturnsPlaintext(t *testing.T) {
	for _, plain := range []string{"pw1", "admin123", "correct horse battery staple"} {
		h, err := hash.Encode(plain)
		assert.NoError(t, err)
		assert.NotEqual(t, plain, h)
		assert.True(t, strings.HasPrefix(h, "$2"), "expected a bcrypt hash, got %q", h)
	}
}

func TestMatches(t *testing.T) {
	h, err := hash.Encode("password123")
	assert.NoError(t, err)

	assert.True(t, hash.Matches("password123", h))
	assert.False(t, hash.Matches("password124", h))
	assert.False(t, hash.Matches("", h))
	// A hash never matches itself as plaintext.
	assert.False(t, hash.Matches(h, h))
}

func TestEncodeSaltsEveryCall(t *testing.T) {
	h1, err := hash.Encode("same-input")
	assert.NoError(t, err)
	h2, err := hash.Encode("same-input")
	assert.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, hash.Matches("same-input", h1))
	assert.True(t, hash.Matches("same-input", h2))
}
