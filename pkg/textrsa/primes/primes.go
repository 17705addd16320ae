package primes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/coinbase/textrsa-go/pkg/textrsa/randsrc"
)

// MinBits is the smallest bit length that can hold a prime.
const MinBits = 2

// Generate draws candidates from rnd until one passes the primality test.
func Generate(ctx context.Context, rnd io.Reader, bits, confidence int) (*big.Int, error) {
	if bits < MinBits {
		return nil, fmt.Errorf("bit length must be at least %d, got %d", MinBits, bits)
	}
	if confidence < 0 {
		return nil, fmt.Errorf("confidence must not be negative, got %d", confidence)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("prime search cancelled: %w", err)
		}
		candidate, err := randsrc.Bits(rnd, bits)
		if err != nil {
			return nil, err
		}
		if candidate.ProbablyPrime(confidence) {
			return candidate, nil
		}
	}
}

// GenerateN returns count records generated with the same parameters.
func GenerateN(ctx context.Context, rnd io.Reader, bits, confidence, count int) ([]Record, error) {
	if count < 0 {
		return nil, errors.New("count must not be negative")
	}
	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		p, err := Generate(ctx, rnd, bits, confidence)
		if err != nil {
			return records, fmt.Errorf("prime %d of %d: %w", i+1, count, err)
		}
		records = append(records, Record{Bits: bits, Confidence: confidence, Prime: p})
	}
	return records, nil
}
