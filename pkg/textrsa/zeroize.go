package textrsa

import (
	"math/big"
	"runtime"
)

// ZeroizeInt overwrites the limbs backing x and sets it to zero. Use it on
// private exponents and totients once a run is finished.
//
// big.Int may have copied its limbs during earlier arithmetic, so this is best
// effort in the same sense as zeroizing any Go heap buffer.
func ZeroizeInt(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	x.SetInt64(0)
	// Prevent dead store elimination per golang/go#33325
	runtime.KeepAlive(words)
}
