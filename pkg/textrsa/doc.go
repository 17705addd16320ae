// Package textrsa holds the types, errors and configuration shared by the
// textbook RSA pipeline.
//
// The scheme derives a private exponent from two primes and a public
// generator, then encrypts a message one character at a time:
//
//	c_i = m_i^e mod N
//	m_i = c_i^d mod N
//
// The subpackages implement the individual stages:
//
//   - codec: text to integer code points and back
//   - keyderiv: totient and private exponent search
//   - cipher: element-wise modular exponentiation
//   - pipeline: sequences the stages for one message and one key pair
//   - primes, randsrc: probable-prime supply with injected randomness
//   - store, report: INI persistence and terminal output
//
// # Security
//
// This is a compatibility implementation of per-character textbook RSA. There
// is no padding, identical characters encrypt to identical ciphertexts, and the
// private exponent is found by a bounded brute-force search rather than the
// extended Euclidean algorithm. Do not use it to protect real data.
package textrsa
