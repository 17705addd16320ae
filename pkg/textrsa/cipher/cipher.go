package cipher

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
)

// Cipher encrypts and decrypts integer sequences.
type Cipher struct {
	exp     Exponentiator
	workers int
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithExponentiator selects the exponentiation backend.
func WithExponentiator(e Exponentiator) Option {
	return func(c *Cipher) {
		if e != nil {
			c.exp = e
		}
	}
}

// WithWorkers sets how many goroutines process one sequence. Values below 2
// keep processing sequential.
func WithWorkers(n int) Option {
	return func(c *Cipher) { c.workers = n }
}

// New returns a Cipher. The default is sequential math/big exponentiation.
func New(opts ...Option) *Cipher {
	c := &Cipher{exp: BigInt{}, workers: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig builds a Cipher from a validated Config.
func FromConfig(cfg textrsa.Config) (*Cipher, error) {
	exp, err := ExponentiatorFor(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return New(WithExponentiator(exp), WithWorkers(cfg.Workers)), nil
}

// Encrypt returns m^e mod N for every element m of message.
func (c *Cipher) Encrypt(ctx context.Context, message []*big.Int, e, n *big.Int) ([]*big.Int, error) {
	return c.apply(ctx, "Encrypt", message, e, n)
}

// Decrypt returns c^d mod N for every element c of cipherText.
func (c *Cipher) Decrypt(ctx context.Context, cipherText []*big.Int, d, n *big.Int) ([]*big.Int, error) {
	return c.apply(ctx, "Decrypt", cipherText, d, n)
}

func (c *Cipher) apply(ctx context.Context, op string, in []*big.Int, k, n *big.Int) ([]*big.Int, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, textrsa.Errorf(op, "modulus must be positive: %w", textrsa.ErrInvalidModulus)
	}
	if k == nil || k.Sign() < 0 {
		return nil, textrsa.Errorf(op, "exponent must not be negative: %w", textrsa.ErrNegativeExponent)
	}
	for i, v := range in {
		if v == nil || v.Sign() < 0 || v.Cmp(n) >= 0 {
			return nil, textrsa.Errorf(op, "element %d not in [0, N): %w", i, textrsa.ErrValueRange)
		}
	}

	out := make([]*big.Int, len(in))
	if c.workers < 2 || len(in) < 2 {
		for i, v := range in {
			if err := ctx.Err(); err != nil {
				return nil, textrsa.Errorf(op, "cancelled at element %d: %w", i, err)
			}
			r, err := c.exp.Exp(v, k, n)
			if err != nil {
				return nil, textrsa.Errorf(op, "element %d: %w", i, err)
			}
			out[i] = r
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, v := range in {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := c.exp.Exp(v, k, n)
			if err != nil {
				return textrsa.Errorf(op, "element %d: %w", i, err)
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, textrsa.Errorf(op, "cancelled: %w", ctxErr)
		}
		return nil, err
	}
	return out, nil
}

var std = New()

// Encrypt encrypts message with the default sequential cipher.
func Encrypt(ctx context.Context, message []*big.Int, e, n *big.Int) ([]*big.Int, error) {
	return std.Encrypt(ctx, message, e, n)
}

// Decrypt decrypts cipherText with the default sequential cipher.
func Decrypt(ctx context.Context, cipherText []*big.Int, d, n *big.Int) ([]*big.Int, error) {
	return std.Decrypt(ctx, cipherText, d, n)
}
