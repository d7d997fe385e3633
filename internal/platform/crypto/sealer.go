// Package crypto seals short secrets, such as TOTP seeds, with AES-256-GCM before they are
// written to the database.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrSealedTooShort = errors.New("sealed value too short")

type Sealer struct {
	aead cipher.AEAD
}

// New builds a sealer from a 32 byte key given as hex or base64. An empty key returns a nil
// sealer, which callers treat as "secrets cannot be stored".
func New(key string) (*Sealer, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	raw, err := decodeKey(key)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("DATA_ENCRYPTION_KEY: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal returns nonce || ciphertext.
func (s *Sealer) Seal(plain string) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, []byte(plain), nil), nil
}

func (s *Sealer) Open(sealed []byte) (string, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n {
		return "", ErrSealedTooShort
	}
	plain, err := s.aead.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return "", fmt.Errorf("open sealed value: %w", err)
	}
	return string(plain), nil
}

func decodeKey(raw string) ([]byte, error) {
	var decoded []byte
	if b, err := hex.DecodeString(raw); err == nil && len(raw) == 64 {
		decoded = b
	} else if b, err := base64.StdEncoding.DecodeString(raw); err == nil {
		decoded = b
	} else if b, err := base64.RawStdEncoding.DecodeString(raw); err == nil {
		decoded = b
	}
	if len(decoded) != 32 {
		return nil, errors.New("DATA_ENCRYPTION_KEY must be 32 bytes, hex or base64 encoded")
	}
	return decoded, nil
}
