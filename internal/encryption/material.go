package encryption

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// IVSize matches the AES block size.
	IVSize = 16
	// MaterialSize is the serialized length of a key followed by its IV.
	MaterialSize = KeySize + IVSize
)

// Material holds a symmetric key and its initialization vector.
// A Material is either freshly generated or recovered whole from a key file;
// partially populated material never leaves this package.
type Material struct {
	Key []byte
	IV  []byte
}

// NewMaterial generates fresh key material from the operating system CSPRNG.
// Failure to obtain entropy aborts the operation; there is no fallback source.
func NewMaterial() (Material, error) {
	material := Material{
		Key: make([]byte, KeySize),
		IV:  make([]byte, IVSize),
	}

	if _, err := io.ReadFull(rand.Reader, material.Key); err != nil {
		return Material{}, fmt.Errorf("generating key: %w", err)
	}

	if _, err := io.ReadFull(rand.Reader, material.IV); err != nil {
		return Material{}, fmt.Errorf("generating IV: %w", err)
	}

	return material, nil
}

// MaterialFromBytes splits a key||IV concatenation into a Material.
func MaterialFromBytes(raw []byte) (Material, error) {
	if len(raw) != MaterialSize {
		return Material{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyMaterial, MaterialSize, len(raw))
	}

	material := Material{
		Key: make([]byte, KeySize),
		IV:  make([]byte, IVSize),
	}

	copy(material.Key, raw[:KeySize])
	copy(material.IV, raw[KeySize:])

	return material, nil
}

// Bytes returns the key followed by the IV as a single slice.
func (m Material) Bytes() []byte {
	raw := make([]byte, 0, MaterialSize)
	raw = append(raw, m.Key...)

	return append(raw, m.IV...)
}

// Validate checks the field lengths before any cipher or I/O work starts.
func (m Material) Validate() error {
	if len(m.Key) != KeySize {
		return fmt.Errorf("%w: key must be %d bytes, got %d", ErrInvalidKeyMaterial, KeySize, len(m.Key))
	}

	if len(m.IV) != IVSize {
		return fmt.Errorf("%w: IV must be %d bytes, got %d", ErrInvalidKeyMaterial, IVSize, len(m.IV))
	}

	return nil
}
