// Package cipher applies textbook RSA element by element.
//
// Each integer of a message is exponentiated independently,
//
//	Encrypt: c_i = m_i^e mod N
//	Decrypt: m_i = c_i^d mod N
//
// so positions never interact and output order always matches input order.
// Every input must lie in [0, N); values outside that range are rejected with
// textrsa.ErrValueRange instead of silently wrapping.
//
// Two exponentiation backends are available. BigInt uses math/big. SafeRith
// uses github.com/cronokirby/saferith, whose exponentiation runs in time
// independent of the exponent's value, and accepts odd moduli only.
//
// A Cipher built WithWorkers(n) for n > 1 spreads elements over a bounded
// errgroup. The exponents and modulus are shared read-only and results are
// collected by index.
package cipher
