// Package cryptox implements the one-way secret hashing used by the
// credential store.
//
// A secret is stretched with Argon2id under a per-user random salt and the
// resulting key is reduced to a SHA-256 verifier. Only the salt and the
// verifier are persisted.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated salt.
const SaltSize = 32

// Argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// DeriveKey stretches secret with Argon2id under salt.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// MakeVerifier reduces a derived key to the value stored as secret hash.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewSalt returns a random salt of SaltSize bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashSecret derives the stored verifier for secret under salt.
func HashSecret(secret []byte, salt []byte) []byte {
	key := DeriveKey(secret, salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key)
}

// VerifySecret reports whether secret hashes to verifier under salt.
// The comparison is constant-time.
func VerifySecret(secret, salt, verifier []byte) bool {
	candidate := HashSecret(secret, salt)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
