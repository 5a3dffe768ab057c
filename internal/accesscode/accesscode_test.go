package accesscode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := Generate()
		require.Len(t, code, Length)
		for _, r := range code {
			ok := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			require.Truef(t, ok, "unexpected character %q in code %q", r, code)
		}
	}
}

func TestGenerateCoversAlphabet(t *testing.T) {
	// With 10k draws of 6 chars each, every one of the 62 symbols should
	// show up; a systematically skipped symbol would indicate a biased draw.
	seen := make(map[byte]bool)
	for i := 0; i < 10000; i++ {
		code := Generate()
		for j := 0; j < len(code); j++ {
			seen[code[j]] = true
		}
	}
	assert.Len(t, seen, 62)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("Ab3Xy9"))
	assert.False(t, Valid("Ab3Xy"))   // too short
	assert.False(t, Valid("Ab3Xy99")) // too long
	assert.False(t, Valid("Ab3Xy!"))
	assert.False(t, Valid(""))
	assert.True(t, Valid(Generate()))
}
