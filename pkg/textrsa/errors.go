package textrsa

import (
	"errors"
	"fmt"
)

// Precondition violations.
var (
	// ErrInvalidPrime indicates a prime input below 2, or two equal primes.
	ErrInvalidPrime = errors.New("textrsa: invalid prime")

	// ErrInvalidGenerator indicates a public exponent that is not positive.
	ErrInvalidGenerator = errors.New("textrsa: invalid generator")

	// ErrNoInverse indicates gcd(phi, e) != 1, so no private exponent exists.
	ErrNoInverse = errors.New("textrsa: no modular inverse exists")

	// ErrInvalidModulus indicates a zero, negative or otherwise unusable modulus.
	ErrInvalidModulus = errors.New("textrsa: invalid modulus")

	// ErrNegativeExponent indicates a negative exponent passed to modular
	// exponentiation.
	ErrNegativeExponent = errors.New("textrsa: negative exponent")

	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("textrsa: invalid config")
)

// Data-range violations.
var (
	// ErrValueRange indicates an integer outside [0, N) at the cipher boundary.
	// Exponentiating such a value would silently wrap modulo N.
	ErrValueRange = errors.New("textrsa: value out of range for modulus")

	// ErrCodePointRange indicates a decrypted integer that is not a valid
	// character code.
	ErrCodePointRange = errors.New("textrsa: integer is not a valid code point")
)

// Liveness.

// ErrSearchBound indicates the private exponent search ran out of iterations
// before finding a solution even though one exists. Raise the bound.
var ErrSearchBound = errors.New("textrsa: private exponent search bound exceeded")

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("textrsa.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf returns an *Error for op. The format may wrap a sentinel with %w so
// callers can match it with errors.Is.
func Errorf(op string, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}
