package hashing

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher produces salted SHA-256 digests for phone hashes and session tokens.
// The salt keeps roster phone hashes from being reversed by a plain rainbow
// table if the database leaks.
type Hasher struct {
	salt string
}

// New creates a Hasher with the given salt.
// PRE: salt is non-empty in production deployments
func New(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// Sum returns the lowercase hex SHA-256 of input combined with the salt.
// INVARIANT: Same input and salt always yield the same digest
func (h *Hasher) Sum(input string) string {
	d := sha256.Sum256([]byte(input + "|" + h.salt))
	return hex.EncodeToString(d[:])
}
