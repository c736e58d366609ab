package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *MessageCipher {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	c, err := NewMessageCipher(key)
	require.NoError(t, err)
	return c
}

func TestNewMessageCipher_RejectsBadKeyLength(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33} {
		_, err := NewMessageCipher(make([]byte, size))
		assert.Error(t, err, "key of %d bytes must be rejected", size)
	}
}

func TestMessageCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)
	cases := []string{
		"123456789",  // 9 chars
		"1234567890", // 10 chars
		"12345678901",
		"I cannot log into my account since yesterday.",
		"unicode body: héllo wörld — приветствую 你好 🙂",
		strings.Repeat("x", 5000),
	}
	for _, plaintext := range cases {
		serialized, err := c.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := c.Decrypt(serialized)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestMessageCipher_WireFormat(t *testing.T) {
	c := newTestCipher(t)
	serialized, err := c.Encrypt("a perfectly ordinary support request")
	require.NoError(t, err)

	parts := strings.Split(serialized, ":")
	require.Len(t, parts, 3)

	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Len(t, nonce, NonceSize)

	tag, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Len(t, tag, TagSize)

	_, err = base64.StdEncoding.DecodeString(parts[2])
	require.NoError(t, err)
}

func TestMessageCipher_NonceUniqueness(t *testing.T) {
	c := newTestCipher(t)
	const trials = 1000
	seen := make(map[string]struct{}, trials)
	for i := 0; i < trials; i++ {
		serialized, err := c.Encrypt("identical plaintext")
		require.NoError(t, err)
		_, dup := seen[serialized]
		require.False(t, dup, "identical serialization produced at trial %d", i)
		seen[serialized] = struct{}{}
	}
}

func TestMessageCipher_TamperDetection(t *testing.T) {
	c := newTestCipher(t)
	serialized, err := c.Encrypt("tamper with me if you can")
	require.NoError(t, err)
	parts := strings.Split(serialized, ":")
	require.Len(t, parts, 3)

	flipBit := func(encoded string) string {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		raw[0] ^= 0x01
		return base64.StdEncoding.EncodeToString(raw)
	}

	for idx, name := range map[int]string{0: "nonce", 1: "tag", 2: "ciphertext"} {
		t.Run(name, func(t *testing.T) {
			tampered := make([]string, 3)
			copy(tampered, parts)
			tampered[idx] = flipBit(parts[idx])
			_, err := c.Decrypt(strings.Join(tampered, ":"))
			assert.ErrorIs(t, err, ErrDecrypt)
		})
	}
}

func TestMessageCipher_DecryptMalformedInput(t *testing.T) {
	c := newTestCipher(t)
	cases := []struct {
		name       string
		serialized string
	}{
		{"empty", ""},
		{"no delimiters", "justonepart"},
		{"two components", "aaaa:bbbb"},
		{"four components", "aaaa:bbbb:cccc:dddd"},
		{"invalid base64 nonce", "!!!:YWJj:YWJj"},
		{"invalid base64 tag", "YWJj:!!!:YWJj"},
		{"invalid base64 ciphertext", "YWJj:YWJj:!!!"},
		{"short nonce", "YWJj:YWJjYWJjYWJjYWJjYQ==:YWJj"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Decrypt(tc.serialized)
			assert.ErrorIs(t, err, ErrDecrypt)
		})
	}
}

func TestMessageCipher_WrongKeyFailsDecryption(t *testing.T) {
	a := newTestCipher(t)
	b := newTestCipher(t)

	serialized, err := a.Encrypt("for the first key only")
	require.NoError(t, err)

	_, err = b.Decrypt(serialized)
	assert.ErrorIs(t, err, ErrDecrypt)
}
