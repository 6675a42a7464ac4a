// Package accesscode produces the short human-shareable codes that key the
// registry. Codes are not guaranteed unique; a colliding registration simply
// overwrites the earlier entry, which is acceptable for short-lived
// human-entered tokens.
package accesscode

import (
	"math/rand"
	"strings"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Length is the fixed size of a generated access code.
	Length = 6
)

// Generate returns a 6-character uppercase alphanumeric code.
func Generate() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}

// Valid reports whether s has the shape of a generated code.
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
