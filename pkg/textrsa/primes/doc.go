// Package primes supplies probable primes of a requested bit length.
//
// Candidates are drawn uniformly from [0, 2^bits) and accepted once they pass
// big.Int.ProbablyPrime with the requested number of Miller-Rabin rounds (plus
// the Baillie-PSW test Go always applies). A candidate may therefore have fewer
// than bits significant bits, and an accepted value is a probable prime, not a
// certified one.
//
// Generated primes can be recorded in the line format
//
//	256BIT 25 Validator 7830...41
//
// one prime per line, appended to a list file.
package primes
