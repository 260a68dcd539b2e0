// Package keyfile persists key material in a password-protected file.
//
// The on-disk layout is fixed at 80 bytes with no version tag:
//
//	offset 0  : 16 bytes  salt (cleartext)
//	offset 16 : 64 bytes  CBC-encrypt(key||iv) under material derived from (password, salt)
//
// The 48-byte key||iv payload is block-aligned, so PKCS#7 always appends one
// full padding block. Format changes are not backward compatible.
package keyfile

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/idelchi/goseal/internal/encryption"
	"github.com/idelchi/goseal/internal/fileutil"
)

// ErrTruncated is returned when a key file is too short to contain a salt and
// ciphertext, or when the unwrapped payload is not exactly 48 bytes.
var ErrTruncated = errors.New("truncated key file")

// Size is the total length of a key file in bytes.
const Size = encryption.SaltSize + encryption.MaterialSize + encryption.IVSize

// Save wraps the material under a password-derived key and writes
// salt || ciphertext to path, overwriting any existing file. The write goes
// through a temporary file and rename, so a failure cannot leave a truncated
// key file behind. The material is not retained beyond the call.
func Save(path string, material encryption.Material, password []byte, iterations int) error {
	if err := material.Validate(); err != nil {
		return err
	}

	salt := make([]byte, encryption.SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}

	wrap := encryption.DeriveMaterial(password, salt, iterations)

	var buf bytes.Buffer

	buf.Write(salt)

	if err := encryption.EncryptStream(bytes.NewReader(material.Bytes()), &buf, wrap); err != nil {
		return fmt.Errorf("wrapping key material: %w", err)
	}

	const ownerReadWrite = 0o600

	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), ownerReadWrite); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	return nil
}

// Load reads a key file and recovers the material it wraps. A wrong password
// or a corrupted/foreign file surfaces as encryption.ErrInvalidPadding,
// distinct from I/O errors, so callers can report "wrong password or corrupt
// key file" rather than a generic failure. Either a fully populated Material
// is returned or an error; there is no partial result.
func Load(path string, password []byte, iterations int) (encryption.Material, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return encryption.Material{}, fmt.Errorf("reading key file: %w", err)
	}

	if len(data) <= encryption.SaltSize {
		return encryption.Material{}, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}

	salt := data[:encryption.SaltSize]
	wrap := encryption.DeriveMaterial(password, salt, iterations)

	var payload bytes.Buffer

	if err := encryption.DecryptStream(bytes.NewReader(data[encryption.SaltSize:]), &payload, wrap); err != nil {
		return encryption.Material{}, fmt.Errorf("unwrapping key material: %w", err)
	}

	if payload.Len() != encryption.MaterialSize {
		return encryption.Material{}, fmt.Errorf("%w: payload is %d bytes, want %d",
			ErrTruncated, payload.Len(), encryption.MaterialSize)
	}

	return encryption.MaterialFromBytes(payload.Bytes())
}
