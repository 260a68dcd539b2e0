package encryption

import (
	"bytes"
	"crypto/aes"
	"fmt"
)

// pkcs7Pad appends padding so data is a multiple of blockSize. The pad value
// equals the pad count, and a full extra block is added when data is already
// aligned, so the boundary is always unambiguous on decryption.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize

	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// pkcs7Unpad strips the padding from a decrypted final block.
// Inconsistent pad bytes mean a wrong key, wrong IV, or corrupted ciphertext.
func pkcs7Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 || length%aes.BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	padding := int(data[length-1])
	if padding == 0 || padding > aes.BlockSize {
		return nil, fmt.Errorf("%w: pad byte %d", ErrInvalidPadding, padding)
	}

	for _, b := range data[length-padding:] {
		if b != byte(padding) {
			return nil, ErrInvalidPadding
		}
	}

	return data[:length-padding], nil
}
