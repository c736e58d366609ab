package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// hexKeyLength is the expected length of the hex-encoded key material.
const hexKeyLength = KeySize * 2

// LoadKey decodes and validates hex-encoded key material. It is called
// once at startup; any error here is fatal before the service accepts
// requests. Error messages never echo the supplied value.
func LoadKey(hexKey string) ([]byte, error) {
	if hexKey == "" {
		return nil, errors.New("encryption key is not set")
	}
	if len(hexKey) != hexKeyLength {
		return nil, fmt.Errorf("encryption key must be %d hex characters, got %d", hexKeyLength, len(hexKey))
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, errors.New("encryption key is not valid hexadecimal")
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must decode to %d bytes, got %d", KeySize, len(key))
	}
	return key, nil
}
