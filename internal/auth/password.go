package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// saltBytes is the size of the per-user salt. 32 bytes -> 64 hex chars.
const saltBytes = 32

// keyLen is the PBKDF2 output size in bytes.
const keyLen = 32

// GenerateSalt returns a fresh hex-encoded salt from a cryptographically
// secure source. Each user gets exactly one salt, generated at signup and
// never reused across users.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a hex-encoded PBKDF2-SHA256 digest of the password
// keyed by the user's salt. The digest is deterministic for a given
// (password, salt, iterations) triple and cannot be derived without the salt.
func HashPassword(password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLen, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the keyed hash for the candidate password and
// compares it against the stored digest in constant time, so the cost does
// not depend on where a mismatch occurs.
func VerifyPassword(storedHash, password, salt string, iterations int) bool {
	candidate := HashPassword(password, salt, iterations)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(candidate)) == 1
}
