package certificate

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestCipherRoundTrip(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	big := make([]byte, 1<<20)
	_, err = rand.Read(big)
	require.NoError(t, err)

	tests := []struct {
		name  string
		plain []byte
	}{
		{name: "empty", plain: []byte{}},
		{name: "single byte", plain: []byte{0x00}},
		{name: "text", plain: []byte("certificate artifact bytes")},
		{name: "binary with nulls", plain: []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x00, 0xFF}},
		{name: "1MB random", plain: big},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := cipher.Encrypt(tt.plain)
			require.NoError(t, err)
			assert.NotEqual(t, tt.plain, blob)

			got, err := cipher.Decrypt(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.plain, got)
		})
	}
}

func TestCipherRandomizedNonce(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	plain := []byte("same plaintext")
	first, err := cipher.Encrypt(plain)
	require.NoError(t, err)
	second, err := cipher.Encrypt(plain)
	require.NoError(t, err)

	// Two encryptions of the same plaintext must not produce the same blob.
	assert.False(t, bytes.Equal(first, second))
}

func TestCipherDecryptRejectsTampering(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	blob, err := cipher.Encrypt([]byte("authentic bytes"))
	require.NoError(t, err)

	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0x01

	_, err = cipher.Decrypt(tampered)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestCipherDecryptRejectsShortBlob(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	for _, blob := range [][]byte{nil, {}, {0x01}, make([]byte, 11)} {
		_, err := cipher.Decrypt(blob)
		assert.ErrorIs(t, err, ErrDecrypt)
	}
}

func TestCipherDecryptRejectsWrongKey(t *testing.T) {
	first, err := NewCipher(testKey(t))
	require.NoError(t, err)
	second, err := NewCipher(testKey(t))
	require.NoError(t, err)

	blob, err := first.Encrypt([]byte("keyed to the first cipher"))
	require.NoError(t, err)

	_, err = second.Decrypt(blob)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestNewCipherRejectsBadKeyLength(t *testing.T) {
	for _, n := range []int{0, 8, 15, 33} {
		_, err := NewCipher(make([]byte, n))
		assert.Error(t, err, "key length %d", n)
	}
}
