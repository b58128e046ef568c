package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// Size is the number of random bytes in a token. 32 bytes gives 256 bits
// of entropy, encoded to a fixed 43-character string.
const Size = 32

// New generates a cryptographically secure random token.
func New() (string, error) {
	b := make([]byte, Size)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Must generates a token and panics if the entropy source fails.
// A weak or absent randomness source must abort startup, not silently
// degrade, so wiring code calls Must once as a boot-time probe.
func Must() string {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}
