// Package cryptox holds the key-derivation helpers behind the offline
// unlock feature: after a successful online sign-in the client caches an
// argon2id verifier for the password, so the locally cached journal can be
// opened when the store is unreachable.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// GenerateSalt returns n cryptographically random bytes.
func GenerateSalt(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// DeriveUnlockKey stretches the password with argon2id. Parameters match
// the interactive profile: 1 pass, 64 MiB, 4 lanes, 32-byte key.
func DeriveUnlockKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes the derived key; only the verifier is ever stored.
func MakeVerifier(key []byte) []byte {
	h := sha256.Sum256(key)
	return h[:]
}

// VerifyUnlock reports whether password matches the stored verifier, in
// constant time.
func VerifyUnlock(password, salt, verifier []byte) bool {
	candidate := MakeVerifier(DeriveUnlockKey(password, salt))
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}

// Wipe zeroes a sensitive byte slice after use.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
