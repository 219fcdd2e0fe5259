package hash

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 100_000
	keyLen     = 32
)

// Hasher derives password digests with PBKDF2-SHA256. The salt is a
// process-wide configuration value, injected at construction.
type Hasher struct {
	Salt string
}

func NewHasher(salt string) *Hasher {
	return &Hasher{Salt: salt}
}

// Hash returns a hex digest of fixed length (64 characters). Identical
// inputs always produce identical digests, so stored digests can be
// compared with plain string equality.
func (h *Hasher) Hash(password string) string {
	sum := pbkdf2.Key([]byte(password), []byte(h.Salt), iterations, keyLen, sha256.New)
	return hex.EncodeToString(sum)
}

// Check compares a plaintext password against a stored digest.
func (h *Hasher) Check(digest, password string) bool {
	return h.Hash(password) == digest
}
