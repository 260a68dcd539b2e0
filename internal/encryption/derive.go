package encryption

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the key-file salt length in bytes.
	SaltSize = 16
	// DefaultIterations is the default PBKDF2 iteration count.
	DefaultIterations = 200_000
	// MinIterations is the lowest iteration count the configuration accepts.
	MinIterations = 10_000
)

// Derive stretches a password and salt into length bytes using
// PBKDF2-HMAC-SHA256. Identical inputs always yield identical output;
// that determinism is what makes key recovery possible.
func Derive(password, salt []byte, iterations, length int) []byte {
	return pbkdf2.Key(password, salt, iterations, length, sha256.New)
}

// DeriveMaterial derives wrapping material from a password and salt.
// One 48-byte derivation is split: the first 32 bytes become the wrap key,
// the next 16 the wrap IV.
func DeriveMaterial(password, salt []byte, iterations int) Material {
	derived := Derive(password, salt, iterations, MaterialSize)

	return Material{
		Key: derived[:KeySize],
		IV:  derived[KeySize:],
	}
}
