package vault

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KDFIterations is fixed: changing it silently would make every
	// existing vault undecryptable without a format tag to dispatch on.
	KDFIterations = 100000

	KeyBytes  = 32
	SaltBytes = 16
	IVBytes   = 12
)

// DeriveKey stretches a password into an AES-256 key. Deterministic for
// the same password and salt; password verification works purely by
// attempting decryption with the derived key.
func DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, KDFIterations, KeyBytes, sha256.New)
}
