package sitrans

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text. Node identity
// during Apply and translation memory keys both derive from it.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a translation memory key from a text hash and
// target language.
func CacheKey(hash, targetLang string) string {
	return hash + ":" + targetLang
}
