package encryption

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Published PBKDF2-HMAC-SHA256 test vectors.
func TestDeriveKnownAnswers(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		salt       string
		iterations int
		want       string
	}{
		{
			"one iteration",
			"password", "salt", 1,
			"120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b",
		},
		{
			"4096 iterations",
			"password", "salt", 4096,
			"c5e478d59288c841aa530db6845c4c8d962893a001ce4e11a4963873aa98134a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived := Derive([]byte(tt.password), []byte(tt.salt), tt.iterations, 32)

			assert.Equal(t, tt.want, hex.EncodeToString(derived))
		})
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := []byte("0123456789abcdef")

	first := Derive(password, salt, MinIterations, MaterialSize)
	second := Derive(password, salt, MinIterations, MaterialSize)

	assert.Equal(t, first, second)

	// Changing any input changes the output.
	assert.NotEqual(t, first, Derive([]byte("other password"), salt, MinIterations, MaterialSize))
	assert.NotEqual(t, first, Derive(password, []byte("fedcba9876543210"), MinIterations, MaterialSize))
	assert.NotEqual(t, first, Derive(password, salt, MinIterations+1, MaterialSize))
}

func TestDeriveMaterialSplitsOneDerivation(t *testing.T) {
	password := []byte("hunter2")
	salt := []byte("saltsaltsaltsalt")

	material := DeriveMaterial(password, salt, MinIterations)
	require.NoError(t, material.Validate())

	// The wrap key and IV are consecutive slices of a single 48-byte stream.
	derived := Derive(password, salt, MinIterations, MaterialSize)

	assert.Equal(t, derived[:KeySize], material.Key)
	assert.Equal(t, derived[KeySize:], material.IV)
}
