// Package vault seals wallet private keys into password-protected
// envelopes and opens them back. A password and a random salt are
// stretched into a 256-bit key with Argon2id; the key encrypts the
// secret with AES-256-GCM; the envelope carries everything needed to
// reverse the process except the password itself.
//
// Seal and Open share no state and may be called concurrently. Each
// call re-derives the key from the password supplied in that call and
// wipes it before returning; nothing is cached and nothing is logged.
package vault

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. Tuned so one interactive unlock costs tens
// of milliseconds while staying expensive for offline brute force.
const (
	argonMemory  uint32 = 19456 // KiB
	argonTime    uint32 = 2
	argonThreads uint8  = 1
	keyLen       uint32 = 32
	saltLen             = 16
)

// saltAlg tags salt encodings produced by this package. The full form is
// $argon2id$v=19$m=<KiB>,t=<iterations>,p=<lanes>$<base64 salt>.
const saltAlg = "argon2id"

// deriveNew generates a fresh random salt and derives a 256-bit key from
// password. It returns the key together with the salt's self-describing
// encoding, which embeds the algorithm tag and cost parameters so the
// key can be re-derived later without storing parameters separately.
func deriveNew(password string) (key []byte, saltEncoding string, err error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, "", fmt.Errorf("%w: generate salt: %w", ErrPasswordHashing, err)
	}
	key = argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLen)
	return key, encodeSalt(salt), nil
}

// deriveWithSalt re-derives the key for password from a salt encoding
// produced by deriveNew. The parameters embedded in the encoding are
// used, never the package defaults, so envelopes sealed under different
// costs keep opening.
func deriveWithSalt(password, saltEncoding string) ([]byte, error) {
	salt, memory, iterations, lanes, err := parseSalt(saltEncoding)
	if err != nil {
		return nil, err
	}
	return argon2.IDKey([]byte(password), salt, iterations, memory, lanes, keyLen), nil
}

// encodeSalt renders salt bytes and the package cost parameters as a PHC
// string.
func encodeSalt(salt []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s",
		saltAlg, argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt))
}

// parseSalt splits a salt encoding back into salt bytes and cost
// parameters. Anything that does not scan is ErrMalformedSalt; values
// that scan but cannot drive a derivation are ErrInvalidParameters.
func parseSalt(s string) (salt []byte, memory, iterations uint32, lanes uint8, err error) {
	parts := strings.Split(s, "$")
	if len(parts) != 5 || parts[0] != "" {
		return nil, 0, 0, 0, fmt.Errorf("%w: want $alg$v=N$m=N,t=N,p=N$salt", ErrMalformedSalt)
	}
	if parts[1] != saltAlg {
		return nil, 0, 0, 0, fmt.Errorf("%w: unknown algorithm %q", ErrMalformedSalt, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("%w: version: %v", ErrMalformedSalt, err)
	}
	if version != argon2.Version {
		return nil, 0, 0, 0, fmt.Errorf("%w: unsupported version %d", ErrMalformedSalt, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &lanes); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("%w: parameters: %v", ErrMalformedSalt, err)
	}
	if memory == 0 || iterations == 0 || lanes == 0 {
		return nil, 0, 0, 0, fmt.Errorf("%w: m=%d,t=%d,p=%d", ErrInvalidParameters, memory, iterations, lanes)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("%w: salt bytes: %v", ErrMalformedSalt, err)
	}
	if len(salt) < 8 {
		return nil, 0, 0, 0, fmt.Errorf("%w: salt too short", ErrMalformedSalt)
	}
	return salt, memory, iterations, lanes, nil
}
