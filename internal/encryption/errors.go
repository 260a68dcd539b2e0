package encryption

import "errors"

var (
	// ErrInvalidKeyMaterial is returned when a key or IV has the wrong length.
	// Length checks run before any I/O is attempted.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	// ErrInvalidPadding is returned when decryption produces malformed PKCS#7
	// padding: wrong key, wrong IV, or corrupted/foreign ciphertext.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when ciphertext length is not aligned with the AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
)
