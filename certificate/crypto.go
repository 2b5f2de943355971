package certificate

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Cipher provides authenticated at-rest encryption for certificate
// artifacts. The key is injected by the caller; it is never read from the
// environment here.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a Cipher from a 16, 24 or 32 byte AES key.
func NewCipher(key []byte) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init GCM: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext bytes for at-rest storage. The random nonce is
// prepended to the ciphertext so the blob is self-contained.
func (c *Cipher) Encrypt(plain []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plain, nil), nil
}

// Decrypt opens a blob produced by Encrypt. Any tampering or truncation
// fails authentication and returns ErrDecrypt.
func (c *Cipher) Decrypt(blob []byte) ([]byte, error) {
	if len(blob) < c.aead.NonceSize() {
		return nil, ErrDecrypt
	}
	nonce, sealed := blob[:c.aead.NonceSize()], blob[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	// Open returns a nil slice for empty plaintext; keep the round trip exact.
	if plain == nil {
		plain = []byte{}
	}
	return plain, nil
}
