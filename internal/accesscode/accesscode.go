// Package accesscode generates the short codes students type to join a
// class session. Codes are not secrets; uniqueness among registered sessions
// is enforced by the storage layer, not here.
package accesscode

import (
	"math/rand/v2"
	"strings"
)

const (
	// Length of every generated code.
	Length = 6

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// MaxAttempts bounds how many times session creation retries generation when
// a freshly drawn code collides with a registered one. At 62^6 combinations a
// collision is already unlikely; hitting the cap means something is wrong.
const MaxAttempts = 20

// Generate returns a 6-character case-sensitive alphanumeric code drawn
// uniformly from the 62-character alphabet.
func Generate() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

// Valid reports whether s could have been produced by Generate.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(alphabet, rune(s[i])) {
			return false
		}
	}
	return true
}
