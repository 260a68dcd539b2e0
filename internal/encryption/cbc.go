package encryption

import (
	"bufio"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
)

// EncryptStream encrypts plaintext from reader to writer using AES-256-CBC
// under the given material, with PKCS#7 padding on the final block.
// Input is processed in chunks, so file size is not bounded by memory.
// An empty input still produces one full padding block.
func EncryptStream(reader io.Reader, writer io.Writer, material Material) error {
	if err := material.Validate(); err != nil {
		return err
	}

	block, err := aes.NewCipher(material.Key)
	if err != nil {
		return fmt.Errorf("creating cipher: %w", err)
	}

	return encryptBlocks(cipher.NewCBCEncrypter(block, material.IV), reader, writer)
}

// DecryptStream decrypts AES-256-CBC ciphertext from reader to writer under
// the given material, removing the PKCS#7 padding from the final block.
// Returns ErrInvalidPadding when the padding is inconsistent and
// ErrInvalidBlockSize when the ciphertext is not block-aligned.
func DecryptStream(reader io.Reader, writer io.Writer, material Material) error {
	if err := material.Validate(); err != nil {
		return err
	}

	block, err := aes.NewCipher(material.Key)
	if err != nil {
		return fmt.Errorf("creating cipher: %w", err)
	}

	return decryptBlocks(cipher.NewCBCDecrypter(block, material.IV), reader, writer)
}

// encryptBlocks runs the chunked CBC encryption loop. Complete blocks are
// encrypted in place and flushed as they accumulate; the tail is padded and
// written once the input is exhausted.
func encryptBlocks(mode cipher.BlockMode, reader io.Reader, writer io.Writer) error {
	bufReader := bufio.NewReaderSize(reader, defaultBufferSize)

	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return errors.New("invalid buffer type from pool")
	}
	defer bufferPool.Put(buf) //nolint:staticcheck

	pending := make([]byte, 0, defaultBufferSize+aes.BlockSize)

	for {
		n, err := bufReader.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
		}

		isEOF := errors.Is(err, io.EOF)
		if err != nil && !isEOF {
			return fmt.Errorf("reading plaintext: %w", err)
		}

		if isEOF {
			padded := pkcs7Pad(pending, aes.BlockSize)
			mode.CryptBlocks(padded, padded)

			if _, err := writer.Write(padded); err != nil {
				return fmt.Errorf("writing final ciphertext: %w", err)
			}

			return nil
		}

		whole := len(pending) / aes.BlockSize * aes.BlockSize
		if whole > 0 {
			mode.CryptBlocks(pending[:whole], pending[:whole])

			if _, err := writer.Write(pending[:whole]); err != nil {
				return fmt.Errorf("writing ciphertext: %w", err)
			}

			pending = append(pending[:0], pending[whole:]...)
		}
	}
}

// decryptBlocks runs the chunked CBC decryption loop. One block is always
// held back so the padded final block is never flushed before it can be
// validated and trimmed.
func decryptBlocks(mode cipher.BlockMode, reader io.Reader, writer io.Writer) error {
	bufReader := bufio.NewReaderSize(reader, defaultBufferSize)

	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return errors.New("invalid buffer type from pool")
	}
	defer bufferPool.Put(buf) //nolint:staticcheck

	pending := make([]byte, 0, defaultBufferSize+aes.BlockSize)

	for {
		n, err := bufReader.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
		}

		isEOF := errors.Is(err, io.EOF)
		if err != nil && !isEOF {
			return fmt.Errorf("reading ciphertext: %w", err)
		}

		if isEOF {
			if len(pending) == 0 || len(pending)%aes.BlockSize != 0 {
				return ErrInvalidBlockSize
			}

			mode.CryptBlocks(pending, pending)

			trimmed, err := pkcs7Unpad(pending)
			if err != nil {
				return err
			}

			if _, err := writer.Write(trimmed); err != nil {
				return fmt.Errorf("writing final plaintext: %w", err)
			}

			return nil
		}

		whole := len(pending)/aes.BlockSize*aes.BlockSize - aes.BlockSize
		if whole > 0 {
			mode.CryptBlocks(pending[:whole], pending[:whole])

			if _, err := writer.Write(pending[:whole]); err != nil {
				return fmt.Errorf("writing plaintext: %w", err)
			}

			pending = append(pending[:0], pending[whole:]...)
		}
	}
}
