// Package keyderiv derives the textbook RSA key pair from two primes and a
// public generator.
//
// The private exponent is found by searching for the smallest k >= 1 such
// that e divides k*phi + 1, and taking d = (k*phi + 1) / e. A solution exists
// only when gcd(phi, e) = 1. That is checked first and a shared factor is
// reported as textrsa.ErrNoInverse without searching. Otherwise the residue
// (k*phi + 1) mod e reaches 0 within e steps, so the search is bounded by e
// iterations (or a caller-supplied bound, whose exhaustion is reported as
// textrsa.ErrSearchBound).
//
// Totient never mutates its inputs. Derive computes the modulus from the
// caller's primes before anything else.
package keyderiv
