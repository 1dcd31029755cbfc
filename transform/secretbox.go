package transform

import (
	"crypto/rand"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// SecretBox encrypts JSON bodies with NaCl secretbox. The wire format is the
// random nonce followed by the sealed ciphertext.
type SecretBox struct {
	key [32]byte
}

// NewSecretBox builds the codec from a 32-byte shared key.
func NewSecretBox(key []byte) (*SecretBox, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("secretbox key must be 32 bytes, got %d", len(key))
	}
	s := &SecretBox{}
	copy(s.key[:], key)
	return s, nil
}

func (s *SecretBox) Encode(v any, header http.Header) (any, error) {
	encoded, err := JSON{}.Encode(v, header)
	if err != nil {
		return nil, err
	}
	if encoded == nil {
		return nil, nil
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("secretbox nonce: %w", err)
	}

	header.Set("Content-Type", "application/octet-stream")
	return secretbox.Seal(nonce[:], encoded.([]byte), &nonce, &s.key), nil
}

func (s *SecretBox) Decode(v any) (any, error) {
	data, ok := v.([]byte)
	if !ok {
		return v, nil
	}
	if len(data) < nonceSize {
		return nil, fmt.Errorf("secretbox payload too short: %d bytes", len(data))
	}

	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])

	plain, ok := secretbox.Open(nil, data[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, fmt.Errorf("secretbox open failed")
	}
	return JSON{}.Decode(plain)
}
