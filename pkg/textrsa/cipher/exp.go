package cipher

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
)

// Exponentiator computes base^exp mod mod.
type Exponentiator interface {
	Exp(base, exp, mod *big.Int) (*big.Int, error)
}

// ExponentiatorFor maps a Config backend name to an Exponentiator.
func ExponentiatorFor(backend string) (Exponentiator, error) {
	switch backend {
	case textrsa.BackendBigInt, "":
		return BigInt{}, nil
	case textrsa.BackendSafeRith:
		return SafeRith{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", textrsa.ErrInvalidConfig, backend)
	}
}

func checkOperands(base, exp, mod *big.Int) error {
	if base == nil || exp == nil || mod == nil {
		return textrsa.Errorf("Exp", "nil operand: %w", textrsa.ErrInvalidModulus)
	}
	if mod.Sign() <= 0 {
		return textrsa.Errorf("Exp", "modulus must be positive: %w", textrsa.ErrInvalidModulus)
	}
	if exp.Sign() < 0 {
		return textrsa.Errorf("Exp", "exponent is negative: %w", textrsa.ErrNegativeExponent)
	}
	return nil
}

// BigInt exponentiates with math/big.
type BigInt struct{}

func (BigInt) Exp(base, exp, mod *big.Int) (*big.Int, error) {
	if err := checkOperands(base, exp, mod); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(base, exp, mod), nil
}

// SafeRith exponentiates with saferith's constant-time Nat arithmetic.
type SafeRith struct{}

func (SafeRith) Exp(base, exp, mod *big.Int) (*big.Int, error) {
	if err := checkOperands(base, exp, mod); err != nil {
		return nil, err
	}
	if mod.Bit(0) == 0 {
		return nil, textrsa.Errorf("Exp", "saferith backend needs an odd modulus: %w", textrsa.ErrInvalidModulus)
	}
	if base.Sign() < 0 {
		return nil, textrsa.Errorf("Exp", "negative base: %w", textrsa.ErrValueRange)
	}

	m := saferith.ModulusFromBytes(mod.Bytes())
	x := new(saferith.Nat).SetBytes(base.Bytes())
	x.Mod(x, m)
	y := new(saferith.Nat).SetBytes(exp.Bytes())

	return new(saferith.Nat).Exp(x, y, m).Big(), nil
}
