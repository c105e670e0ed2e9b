package room

import (
	"crypto/rand"
	"strings"
)

// CodeLength is the length of a room code.
const CodeLength = 6

// GenerateCode returns a random upper-case room code over A-Z and 2-7.
func GenerateCode() string {
	return rand.Text()[:CodeLength]
}

// NormalizeCode canonicalizes a client-supplied room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
