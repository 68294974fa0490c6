// Package cache provides the claim fingerprint and the adjudication cache
// keyed by it. Two claims with the same fingerprint are treated as the same
// claim for caching purposes.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize lowercases, collapses whitespace runs and trims the claim text
// so that formatting variants hash identically.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(strings.ToLower(text), " "))
}

// Fingerprint returns the SHA-256 hex digest of the normalized claim text.
// This is the sole cache key; paraphrases hash differently and re-verify.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}
