package encryption

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMaterial(t *testing.T) Material {
	t.Helper()

	material, err := NewMaterial()
	require.NoError(t, err)

	return material
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	material := testMaterial(t)

	// Sizes chosen around block and buffer boundaries.
	for _, size := range []int{0, 1, 15, 16, 17, 31, 32, 1000, defaultBufferSize, defaultBufferSize + 3, 3*defaultBufferSize + 7} {
		plaintext := make([]byte, size)
		_, err := io.ReadFull(rand.Reader, plaintext)
		require.NoError(t, err)

		var ciphertext bytes.Buffer
		require.NoError(t, EncryptStream(bytes.NewReader(plaintext), &ciphertext, material))

		assert.Equal(t, 0, ciphertext.Len()%aes.BlockSize, "size %d", size)
		assert.Greater(t, ciphertext.Len(), size, "size %d", size)

		var decrypted bytes.Buffer
		require.NoError(t, DecryptStream(bytes.NewReader(ciphertext.Bytes()), &decrypted, material))

		assert.Equal(t, plaintext, decrypted.Bytes(), "size %d", size)
	}
}

func TestEncryptEmptyInputIsOneBlock(t *testing.T) {
	material := testMaterial(t)

	var ciphertext bytes.Buffer
	require.NoError(t, EncryptStream(bytes.NewReader(nil), &ciphertext, material))

	assert.Equal(t, aes.BlockSize, ciphertext.Len())

	var decrypted bytes.Buffer
	require.NoError(t, DecryptStream(bytes.NewReader(ciphertext.Bytes()), &decrypted, material))

	assert.Empty(t, decrypted.Bytes())
}

func TestKnownAnswerTwoBytes(t *testing.T) {
	material := Material{
		Key: make([]byte, KeySize),
		IV:  make([]byte, IVSize),
	}

	var ciphertext bytes.Buffer
	require.NoError(t, EncryptStream(bytes.NewReader([]byte("AB")), &ciphertext, material))

	// Two plaintext bytes plus fourteen 0x0E pad bytes make exactly one block.
	assert.Equal(t, aes.BlockSize, ciphertext.Len())

	var decrypted bytes.Buffer
	require.NoError(t, DecryptStream(bytes.NewReader(ciphertext.Bytes()), &decrypted, material))

	assert.Equal(t, "AB", decrypted.String())
}

func TestEncryptDeterministicForFixedIV(t *testing.T) {
	material := testMaterial(t)
	plaintext := []byte("same input, same key, same IV")

	var first, second bytes.Buffer
	require.NoError(t, EncryptStream(bytes.NewReader(plaintext), &first, material))
	require.NoError(t, EncryptStream(bytes.NewReader(plaintext), &second, material))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestDecryptMissingPaddingBlock(t *testing.T) {
	material := testMaterial(t)

	// A zero-filled aligned plaintext encrypts to two blocks: data + padding.
	var ciphertext bytes.Buffer
	require.NoError(t, EncryptStream(bytes.NewReader(make([]byte, aes.BlockSize)), &ciphertext, material))
	require.Equal(t, 2*aes.BlockSize, ciphertext.Len())

	// Dropping the padding block leaves a final block of zero bytes, which can
	// never be valid padding.
	var decrypted bytes.Buffer
	err := DecryptStream(bytes.NewReader(ciphertext.Bytes()[:aes.BlockSize]), &decrypted, material)

	assert.ErrorIs(t, err, ErrInvalidPadding)
}

func TestDecryptRejectsUnalignedInput(t *testing.T) {
	material := testMaterial(t)

	for _, size := range []int{0, 1, 10, 17} {
		var decrypted bytes.Buffer
		err := DecryptStream(bytes.NewReader(make([]byte, size)), &decrypted, material)

		assert.ErrorIs(t, err, ErrInvalidBlockSize, "size %d", size)
	}
}

func TestStreamRejectsInvalidMaterial(t *testing.T) {
	bad := Material{Key: make([]byte, 16), IV: make([]byte, IVSize)}

	var out bytes.Buffer

	assert.ErrorIs(t, EncryptStream(bytes.NewReader([]byte("data")), &out, bad), ErrInvalidKeyMaterial)
	assert.Empty(t, out.Bytes(), "no output before validation")

	bad = Material{Key: make([]byte, KeySize), IV: make([]byte, 8)}

	assert.ErrorIs(t, DecryptStream(bytes.NewReader(make([]byte, aes.BlockSize)), &out, bad), ErrInvalidKeyMaterial)
}
