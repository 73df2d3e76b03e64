package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
)

// nonceSize is the standard GCM nonce length. Envelopes whose nonce
// decodes to any other length are rejected before key derivation.
const nonceSize = 12

// sealBytes encrypts plaintext under a 256-bit key with AES-256-GCM and
// a fresh random nonce. The returned ciphertext carries the 16-byte GCM
// tag appended; no associated data is bound. The nonce is always
// generated here, never accepted from a caller.
func sealBytes(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("create AEAD: %w", err)
	}

	nonce = make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// openBytes reverses sealBytes. The nonce length is checked before any
// cryptographic work. A failed tag check is always the single
// ErrAuthenticationFailed: callers cannot tell a wrong key from a
// tampered ciphertext or a modified nonce.
func openBytes(ciphertext, nonce, key []byte) ([]byte, error) {
	if len(nonce) != nonceSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidNonceLength, len(nonce))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create AEAD: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
