package vault

import (
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sealing and opening failures. All are terminal for the call: nothing
// is retried inside this package and none carry secret material.
var (
	// ErrEmptySecret is returned by Seal when the secret is empty.
	ErrEmptySecret = errors.New("vault: secret must not be empty")
	// ErrEmptyPassword is returned when the password is empty.
	ErrEmptyPassword = errors.New("vault: password must not be empty")
	// ErrMalformedSalt means a salt encoding could not be parsed back
	// into algorithm, parameters, and salt bytes.
	ErrMalformedSalt = errors.New("vault: malformed salt encoding")
	// ErrInvalidParameters means a salt encoding parsed but carries
	// derivation parameters that cannot produce a key.
	ErrInvalidParameters = errors.New("vault: invalid derivation parameters")
	// ErrPasswordHashing means the derivation primitive itself failed,
	// for example when salt randomness is unavailable.
	ErrPasswordHashing = errors.New("vault: password hashing failed")
	// ErrMalformedEnvelope means an envelope is structurally invalid:
	// not parseable, missing fields, or carrying non-hex content.
	ErrMalformedEnvelope = errors.New("vault: malformed envelope")
	// ErrInvalidNonceLength is the nonce-specific case of
	// ErrMalformedEnvelope (it wraps it), reported before any key
	// derivation or decryption work is done.
	ErrInvalidNonceLength = fmt.Errorf("%w: wrong nonce length", ErrMalformedEnvelope)
	// ErrAuthenticationFailed covers a wrong password and a tampered
	// envelope without distinguishing the two.
	ErrAuthenticationFailed = errors.New("vault: authentication failed")
	// ErrInvalidUTF8 means decryption authenticated but the recovered
	// bytes are not valid text.
	ErrInvalidUTF8 = errors.New("vault: decrypted secret is not valid utf-8")
)

// Seal encrypts secret under password and returns the Envelope holding
// the result. Every call generates a fresh salt and nonce, so sealing
// the same secret twice with the same password yields unlinkable
// envelopes. The derived key lives only inside this call and is wiped
// before it returns.
func Seal(secret, password string) (*Envelope, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	key, saltEncoding, err := deriveNew(password)
	if err != nil {
		return nil, err
	}
	defer wipe(key)

	ciphertext, nonce, err := sealBytes([]byte(secret), key)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	return encodeEnvelope(ciphertext, nonce, saltEncoding), nil
}

// Open recovers the secret from env using password. Structural checks
// run first (hex decoding, then the nonce length), so a malformed
// envelope fails before the expensive derivation; then the key is
// re-derived from the envelope's stored salt and the ciphertext is
// authenticated and decrypted. The derived key is wiped on every exit
// path.
func Open(env *Envelope, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	ciphertext, err := hex.DecodeString(env.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext is not hex", ErrMalformedEnvelope)
	}
	nonce, err := hex.DecodeString(env.Nonce)
	if err != nil {
		return "", fmt.Errorf("%w: nonce is not hex", ErrMalformedEnvelope)
	}
	if len(nonce) != nonceSize {
		return "", fmt.Errorf("%w: got %d bytes", ErrInvalidNonceLength, len(nonce))
	}

	key, err := deriveWithSalt(password, env.Salt)
	if err != nil {
		return "", err
	}
	defer wipe(key)

	plaintext, err := openBytes(ciphertext, nonce, key)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", ErrInvalidUTF8
	}
	return string(plaintext), nil
}

// wipe overwrites key material that is no longer needed.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
