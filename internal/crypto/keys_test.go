package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKey_Valid(t *testing.T) {
	key, err := LoadKey(strings.Repeat("ab", 32))
	require.NoError(t, err)
	assert.Len(t, key, KeySize)
}

func TestLoadKey_ValidUppercase(t *testing.T) {
	key, err := LoadKey(strings.Repeat("AB", 32))
	require.NoError(t, err)
	assert.Len(t, key, KeySize)
}

func TestLoadKey_Rejected(t *testing.T) {
	cases := []struct {
		name   string
		hexKey string
	}{
		{"empty", ""},
		{"too short 63 chars", strings.Repeat("a", 63)},
		{"too long 65 chars", strings.Repeat("a", 65)},
		{"half-size key", strings.Repeat("ab", 16)},
		{"invalid hex digit", strings.Repeat("a", 63) + "g"},
		{"whitespace", strings.Repeat("a", 62) + " a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := LoadKey(tc.hexKey)
			assert.Error(t, err)
			assert.Nil(t, key)
			// diagnostics must never echo the key material
			if tc.hexKey != "" {
				assert.NotContains(t, err.Error(), tc.hexKey)
			}
		})
	}
}
