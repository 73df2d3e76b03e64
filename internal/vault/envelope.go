package vault

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Envelope is the serializable result of sealing a secret. It carries
// everything needed to recover the secret given the right password and
// nothing that reveals the secret without it. An Envelope is immutable
// once produced: re-sealing a secret yields a brand-new Envelope with a
// fresh salt and nonce.
type Envelope struct {
	// Ciphertext is the hex-encoded AEAD output, authentication tag included.
	Ciphertext string `json:"ciphertext"`
	// Nonce is the hex-encoded 12-byte GCM nonce, unique per seal.
	Nonce string `json:"nonce"`
	// Tag is kept for wire compatibility with older envelopes. The real
	// authentication tag lives inside Ciphertext; this field is written
	// empty and ignored on read.
	Tag string `json:"tag"`
	// Salt is the self-describing salt encoding used to re-derive the key.
	Salt string `json:"salt"`
}

// encodeEnvelope hex-encodes the binary fields into an Envelope.
func encodeEnvelope(ciphertext, nonce []byte, saltEncoding string) *Envelope {
	return &Envelope{
		Ciphertext: hex.EncodeToString(ciphertext),
		Nonce:      hex.EncodeToString(nonce),
		Tag:        "",
		Salt:       saltEncoding,
	}
}

// Wire renders the Envelope as a JSON string so an external store can
// keep it as an opaque value.
func (e *Envelope) Wire() (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return string(b), nil
}

// ParseEnvelope parses a wire string produced by Wire. Field order is
// not significant; field names are. It fails with ErrMalformedEnvelope
// when the string is not JSON, when ciphertext, nonce, or salt is
// missing, or when a hex field does not decode. Nonce length is not the
// codec's concern; Open checks it.
func ParseEnvelope(s string) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal([]byte(s), &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if e.Ciphertext == "" || e.Nonce == "" || e.Salt == "" {
		return nil, fmt.Errorf("%w: missing fields", ErrMalformedEnvelope)
	}
	if _, err := hex.DecodeString(e.Ciphertext); err != nil {
		return nil, fmt.Errorf("%w: ciphertext is not hex", ErrMalformedEnvelope)
	}
	if _, err := hex.DecodeString(e.Nonce); err != nil {
		return nil, fmt.Errorf("%w: nonce is not hex", ErrMalformedEnvelope)
	}
	return &e, nil
}
