package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestLength is the length of a hex-encoded SHA-256 content digest.
const DigestLength = sha256.Size * 2

// ContentDigest returns the lowercase hex SHA-256 of payload.
func ContentDigest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// ValidDigest reports whether s has the shape of a content digest:
// exactly DigestLength lowercase hex characters.
func ValidDigest(s string) bool {
	if len(s) != DigestLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
