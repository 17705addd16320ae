// Package report renders pipeline results for a human reader.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
	"github.com/coinbase/textrsa-go/pkg/textrsa/logging"
)

// Terminal writes results to W, typically os.Stdout.
type Terminal struct {
	W io.Writer
}

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{W: w}
}

// Publish prints the ciphertext in hex followed by the recovered plaintext.
func (t *Terminal) Publish(ctx context.Context, res *textrsa.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if res == nil {
		return errors.New("nil result")
	}

	_, err := fmt.Fprintf(t.W, "\nEncrypted Message (Hex): %s\nDecrypted Text: %s\n",
		textrsa.FormatHex(res.CipherText), res.Plaintext)
	return err
}

// KeysDerived prints the values a run started from once the modulus is
// known. Primes and the private exponent are shown as the redaction
// placeholder.
func (t *Terminal) KeysDerived(ctx context.Context, km textrsa.KeyMaterial, modulus *big.Int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(t.W,
		"Loaded values:\nPrivate Prime One: %s\nPrivate Prime Two: %s\nPublic Generator: %s\nPublic Key: %s\nPrivate Key: %s\nText: %s\n",
		logging.Placeholder(), logging.Placeholder(), orDash(km.Generator), orDash(modulus), logging.Placeholder(), km.Message())
	return err
}

func orDash(v *big.Int) string {
	if v == nil {
		return "-"
	}
	return v.String()
}
