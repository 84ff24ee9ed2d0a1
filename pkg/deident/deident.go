// Package deident replaces identifying text with one-way digests.
package deident

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSize is the length of a digest produced by HashText, in hex
// characters.
const HashSize = sha256.Size * 2

// HashText returns the hex-encoded SHA-256 digest of text.
// Equal inputs always give equal digests.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
