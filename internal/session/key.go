package session

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// KeyLength is the fixed size of a session key.
const KeyLength = 12

const keyCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var keyPattern = regexp.MustCompile(fmt.Sprintf("^[A-Z0-9]{%d}$", KeyLength))

// GenerateKey produces a fresh random session key: uppercase alphanumeric,
// fixed length. Collision resistance is purely probabilistic; no registry
// is consulted.
func GenerateKey() (string, error) {
	b := make([]byte, KeyLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session key: %v", err)
	}
	for i := range b {
		b[i] = keyCharset[int(b[i])%len(keyCharset)]
	}
	return string(b), nil
}

// ValidKey reports whether key matches the accepted session key format.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}
