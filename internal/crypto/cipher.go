package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// NonceSize is the GCM nonce length in bytes.
	NonceSize = 12
	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16

	// partDelimiter separates the serialized components. A colon never
	// appears in the standard base64 alphabet, so splitting is safe.
	partDelimiter = ":"
)

// ErrDecrypt is returned for any decryption failure: malformed shape,
// bad base64, or a tag that does not verify. Callers must not be able
// to distinguish tampering from corruption.
var ErrDecrypt = errors.New("message decryption failed")

// MessageCipher performs authenticated encryption of individual
// message bodies. Each Encrypt call draws a fresh random nonce; two
// encryptions of the same plaintext never serialize identically.
type MessageCipher struct {
	aead cipher.AEAD
}

// NewMessageCipher builds a cipher from 32-byte key material, normally
// the output of LoadKey. The AEAD is constructed once and reused.
func NewMessageCipher(key []byte) (*MessageCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("cipher key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init block cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init GCM: %w", err)
	}
	return &MessageCipher{aead: aead}, nil
}

// Encrypt seals a plaintext body and serializes it as
// base64(nonce):base64(tag):base64(ciphertext).
func (c *MessageCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	// Seal appends the tag to the ciphertext; the stored format keeps
	// them as separate components.
	split := len(sealed) - TagSize
	ciphertext, tag := sealed[:split], sealed[split:]

	enc := base64.StdEncoding
	return strings.Join([]string{
		enc.EncodeToString(nonce),
		enc.EncodeToString(tag),
		enc.EncodeToString(ciphertext),
	}, partDelimiter), nil
}

// Decrypt parses a serialized value, verifies the authentication tag
// and returns the plaintext. Any failure yields ErrDecrypt.
func (c *MessageCipher) Decrypt(serialized string) (string, error) {
	parts := strings.Split(serialized, partDelimiter)
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: expected 3 components, got %d", ErrDecrypt, len(parts))
	}

	enc := base64.StdEncoding
	nonce, err := enc.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: malformed nonce encoding", ErrDecrypt)
	}
	tag, err := enc.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: malformed tag encoding", ErrDecrypt)
	}
	ciphertext, err := enc.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: malformed ciphertext encoding", ErrDecrypt)
	}
	if len(nonce) != NonceSize {
		return "", fmt.Errorf("%w: bad nonce length %d", ErrDecrypt, len(nonce))
	}

	plaintext, err := c.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecrypt)
	}
	return string(plaintext), nil
}
