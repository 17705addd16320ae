package keyderiv

import (
	"context"
	"math/big"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// cancelCheckInterval is how many search iterations run between context checks.
const cancelCheckInterval = 1 << 12

// KeyPair is the result of a derivation. The totient is not retained.
type KeyPair struct {
	Modulus         *big.Int // N = p*q
	Generator       *big.Int // e
	PrivateExponent *big.Int // d, e*d = 1 (mod phi)
}

// Wipe zeroizes the private exponent.
func (kp *KeyPair) Wipe() {
	if kp == nil {
		return
	}
	textrsa.ZeroizeInt(kp.PrivateExponent)
}

type options struct {
	maxIterations   uint64
	primalityRounds int
}

// Option configures PrivateExponent and Derive.
type Option func(*options)

// WithMaxIterations bounds the search to n values of k. Zero restores the
// default bound, which is the generator's magnitude.
func WithMaxIterations(n uint64) Option {
	return func(o *options) { o.maxIterations = n }
}

// WithPrimalityCheck makes Derive reject inputs that fail a
// Miller-Rabin/Baillie-PSW test with the given number of rounds.
func WithPrimalityCheck(rounds int) Option {
	return func(o *options) { o.primalityRounds = rounds }
}

// Totient returns phi = (p-1)(q-1) together with fresh copies of p-1 and q-1.
// p and q are not modified.
func Totient(p, q *big.Int) (phi, pMinus1, qMinus1 *big.Int, err error) {
	if p == nil || q == nil {
		return nil, nil, nil, textrsa.Errorf("Totient", "nil prime: %w", textrsa.ErrInvalidPrime)
	}
	if p.Cmp(two) < 0 || q.Cmp(two) < 0 {
		return nil, nil, nil, textrsa.Errorf("Totient", "primes must be at least 2: %w", textrsa.ErrInvalidPrime)
	}

	pMinus1 = new(big.Int).Sub(p, one)
	qMinus1 = new(big.Int).Sub(q, one)
	phi = new(big.Int).Mul(pMinus1, qMinus1)
	return phi, pMinus1, qMinus1, nil
}

// PrivateExponent returns d = (k*phi + 1) / e for the smallest k >= 1 that
// makes the division exact.
func PrivateExponent(ctx context.Context, phi, e *big.Int, opts ...Option) (*big.Int, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if e == nil || e.Sign() <= 0 {
		return nil, textrsa.Errorf("PrivateExponent", "generator must be positive: %w", textrsa.ErrInvalidGenerator)
	}
	if phi == nil || phi.Sign() <= 0 {
		return nil, textrsa.Errorf("PrivateExponent", "totient must be positive: %w", textrsa.ErrInvalidModulus)
	}
	if err := ctx.Err(); err != nil {
		return nil, textrsa.Errorf("PrivateExponent", "search not started: %w", err)
	}

	// e*d = 1 (mod phi) has no solution unless phi and e are coprime, so a
	// shared factor is reported without searching.
	if g := new(big.Int).GCD(nil, nil, phi, e); g.Cmp(one) != 0 {
		return nil, textrsa.Errorf("PrivateExponent", "gcd(phi, e) = %s: %w", g, textrsa.ErrNoInverse)
	}

	// With gcd 1 the residue hits 0 within e steps, so e iterations suffice.
	bound := o.maxIterations
	if bound == 0 {
		if e.IsUint64() {
			bound = e.Uint64()
		} else {
			bound = ^uint64(0)
		}
	}

	// r tracks (k*phi + 1) mod e incrementally, which keeps each iteration
	// independent of the size of phi.
	step := new(big.Int).Mod(phi, e)
	r := new(big.Int).Add(step, one)
	r.Mod(r, e)

	for k := uint64(1); k <= bound; k++ {
		if r.Sign() == 0 {
			d := new(big.Int).SetUint64(k)
			d.Mul(d, phi)
			d.Add(d, one)
			return d.Quo(d, e), nil
		}

		if k%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, textrsa.Errorf("PrivateExponent", "search cancelled after %d iterations: %w", k, err)
			}
		}

		r.Add(r, step)
		if r.Cmp(e) >= 0 {
			r.Sub(r, e)
		}
	}

	return nil, textrsa.Errorf("PrivateExponent", "no solution within %d iterations: %w", bound, textrsa.ErrSearchBound)
}

// IsInverse reports whether e*d = 1 (mod phi).
func IsInverse(e, d, phi *big.Int) bool {
	if e == nil || d == nil || phi == nil || phi.Sign() <= 0 {
		return false
	}
	prod := new(big.Int).Mul(e, d)
	prod.Mod(prod, phi)
	// phi == 1 makes every residue 0, and 1 mod 1 is 0 as well.
	return prod.Cmp(new(big.Int).Mod(one, phi)) == 0
}

// Derive computes the key pair for primes p, q and generator e.
func Derive(ctx context.Context, p, q, e *big.Int, opts ...Option) (*KeyPair, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if p == nil || q == nil {
		return nil, textrsa.Errorf("Derive", "nil prime: %w", textrsa.ErrInvalidPrime)
	}
	if p.Cmp(q) == 0 {
		return nil, textrsa.Errorf("Derive", "primes must be distinct: %w", textrsa.ErrInvalidPrime)
	}
	if o.primalityRounds > 0 {
		if !p.ProbablyPrime(o.primalityRounds) {
			return nil, textrsa.Errorf("Derive", "first prime failed primality test: %w", textrsa.ErrInvalidPrime)
		}
		if !q.ProbablyPrime(o.primalityRounds) {
			return nil, textrsa.Errorf("Derive", "second prime failed primality test: %w", textrsa.ErrInvalidPrime)
		}
	}

	modulus := new(big.Int).Mul(p, q)

	phi, _, _, err := Totient(p, q)
	if err != nil {
		return nil, err
	}
	defer textrsa.ZeroizeInt(phi)

	d, err := PrivateExponent(ctx, phi, e, opts...)
	if err != nil {
		return nil, err
	}
	if !IsInverse(e, d, phi) {
		textrsa.ZeroizeInt(d)
		return nil, textrsa.Errorf("Derive", "derived exponent fails e*d = 1 (mod phi): %w", textrsa.ErrNoInverse)
	}

	return &KeyPair{
		Modulus:         modulus,
		Generator:       new(big.Int).Set(e),
		PrivateExponent: d,
	}, nil
}
