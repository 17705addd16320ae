package textrsa

import "math/big"

// KeyMaterial is what a key source supplies for one run.
type KeyMaterial struct {
	PrimeOne  *big.Int
	PrimeTwo  *big.Int
	Generator *big.Int
	Plaintext string
	Seed      string
}

// Message returns the text the pipeline operates on: the plaintext with the
// seed appended verbatim.
func (k KeyMaterial) Message() string {
	return k.Plaintext + k.Seed
}

// Result is what a run hands to its sinks.
type Result struct {
	Modulus    *big.Int
	Generator  *big.Int
	CipherText []*big.Int
	Plaintext  string
}
