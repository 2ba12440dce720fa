package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// TextDigest returns the hex sha256 of s with surrounding whitespace removed.
// Texts that differ only in leading or trailing whitespace share a digest.
func TextDigest(s string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(s)))
	return hex.EncodeToString(sum[:])
}

// ContentDigest returns the hex sha256 of s exactly as given.
func ContentDigest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
