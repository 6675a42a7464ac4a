package accesscode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()
		assert.Len(t, code, Length)
		assert.Equal(t, strings.ToUpper(code), code, "code should be uppercase")
		for _, r := range code {
			assert.Contains(t, alphabet, string(r))
		}
	}
}

func TestGeneratedCodesAreValid(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.True(t, Valid(Generate()))
	}
}

func TestValidRejectsWrongShapes(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("ABC12"))   // too short
	assert.False(t, Valid("ABC1234")) // too long
	assert.False(t, Valid("abc123"))  // lowercase
	assert.False(t, Valid("ABC-12"))  // punctuation
	assert.True(t, Valid("7BL29Y"))
}
