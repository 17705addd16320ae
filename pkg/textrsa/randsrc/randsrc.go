// Package randsrc provides the randomness sources injected into prime and
// token generation.
//
// Production code uses Default, which is crypto/rand. Tests and reproducible
// runs use NewDeterministic, a SHAKE-256 stream keyed by a caller seed, so the
// same seed always yields the same primes.
package randsrc

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// DefaultTokenBits is the size of a random token when the caller has no
// preference.
const DefaultTokenBits = 64

const domain = "textrsa/randsrc/v1"

// Default returns the cryptographically strong system source.
func Default() io.Reader {
	return rand.Reader
}

// NewDeterministic returns an endless stream derived from seed. It is not a
// secret-key generator; use it only where reproducibility matters more than
// unpredictability.
func NewDeterministic(seed []byte) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(domain))
	_, _ = h.Write(seed)
	return h
}

// Bits returns a uniformly random integer in [0, 2^bits).
func Bits(rnd io.Reader, bits int) (*big.Int, error) {
	if rnd == nil {
		return nil, errors.New("nil randomness source")
	}
	if bits < 1 {
		return nil, fmt.Errorf("bit length must be positive, got %d", bits)
	}

	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	if extra := len(buf)*8 - bits; extra > 0 {
		buf[0] &= byte(0xFF >> extra)
	}

	return new(big.Int).SetBytes(buf), nil
}
