package cipher

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
	"github.com/coinbase/textrsa-go/pkg/textrsa/randsrc"
)

var (
	textbookN = big.NewInt(3233)
	textbookE = big.NewInt(17)
	textbookD = big.NewInt(2753)
)

func seq(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

func strs(vs []*big.Int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func ciphers() map[string]*Cipher {
	return map[string]*Cipher{
		"bigint":            New(),
		"saferith":          New(WithExponentiator(SafeRith{})),
		"bigint parallel":   New(WithWorkers(4)),
		"saferith parallel": New(WithExponentiator(SafeRith{}), WithWorkers(3)),
	}
}

func TestTextbookScenario(t *testing.T) {
	ctx := context.Background()
	for name, c := range ciphers() {
		t.Run(name, func(t *testing.T) {
			ct, err := c.Encrypt(ctx, seq(65), textbookE, textbookN)
			require.NoError(t, err)
			assert.Equal(t, []string{"2790"}, strs(ct))

			pt, err := c.Decrypt(ctx, ct, textbookD, textbookN)
			require.NoError(t, err)
			assert.Equal(t, []string{"65"}, strs(pt))
		})
	}
}

func TestRoundTripAllResidues(t *testing.T) {
	ctx := context.Background()
	msg := make([]*big.Int, 0, 3233)
	for i := int64(0); i < 3233; i++ {
		msg = append(msg, big.NewInt(i))
	}

	for name, c := range ciphers() {
		t.Run(name, func(t *testing.T) {
			ct, err := c.Encrypt(ctx, msg, textbookE, textbookN)
			require.NoError(t, err)
			require.Len(t, ct, len(msg))

			pt, err := c.Decrypt(ctx, ct, textbookD, textbookN)
			require.NoError(t, err)
			assert.Equal(t, strs(msg), strs(pt))
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	rnd := randsrc.NewDeterministic([]byte("backends"))
	n, _ := new(big.Int).SetString("25004999289937004977", 10)

	for i := 0; i < 64; i++ {
		base, err := randsrc.Bits(rnd, 64)
		require.NoError(t, err)
		base.Mod(base, n)
		exp, err := randsrc.Bits(rnd, 80)
		require.NoError(t, err)

		want, err := BigInt{}.Exp(base, exp, n)
		require.NoError(t, err)
		got, err := SafeRith{}.Exp(base, exp, n)
		require.NoError(t, err)
		assert.Zero(t, want.Cmp(got), "base=%s exp=%s", base, exp)
	}
}

func TestPerElementIndependence(t *testing.T) {
	ctx := context.Background()
	msg := seq(72, 101, 108, 108, 111)
	perm := []int{4, 2, 0, 3, 1}

	permuted := make([]*big.Int, len(msg))
	for i, j := range perm {
		permuted[i] = msg[j]
	}

	ct, err := Encrypt(ctx, msg, textbookE, textbookN)
	require.NoError(t, err)
	ctPermuted, err := Encrypt(ctx, permuted, textbookE, textbookN)
	require.NoError(t, err)

	for i, j := range perm {
		assert.Zero(t, ct[j].Cmp(ctPermuted[i]), "position %d", i)
	}
	// repeated characters encrypt identically
	assert.Zero(t, ct[2].Cmp(ct[3]))
}

func TestEmptyMessage(t *testing.T) {
	ctx := context.Background()
	for name, c := range ciphers() {
		t.Run(name, func(t *testing.T) {
			ct, err := c.Encrypt(ctx, []*big.Int{}, textbookE, textbookN)
			require.NoError(t, err)
			assert.NotNil(t, ct)
			assert.Empty(t, ct)

			pt, err := c.Decrypt(ctx, nil, textbookD, textbookN)
			require.NoError(t, err)
			assert.Empty(t, pt)
		})
	}
}

func TestRangeViolations(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		msg  []*big.Int
	}{
		{"equal to modulus", seq(65, 3233)},
		{"above modulus", seq(5000)},
		{"negative", seq(-1)},
		{"nil element", []*big.Int{big.NewInt(1), nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encrypt(ctx, tt.msg, textbookE, textbookN)
			require.ErrorIs(t, err, textrsa.ErrValueRange)

			_, err = Decrypt(ctx, tt.msg, textbookD, textbookN)
			require.ErrorIs(t, err, textrsa.ErrValueRange)
		})
	}
}

func TestNumericPreconditions(t *testing.T) {
	ctx := context.Background()

	_, err := Encrypt(ctx, seq(1), textbookE, big.NewInt(0))
	require.ErrorIs(t, err, textrsa.ErrInvalidModulus)

	_, err = Encrypt(ctx, seq(1), textbookE, big.NewInt(-3233))
	require.ErrorIs(t, err, textrsa.ErrInvalidModulus)

	_, err = Decrypt(ctx, seq(1), big.NewInt(-1), textbookN)
	require.ErrorIs(t, err, textrsa.ErrNegativeExponent)

	_, err = Decrypt(ctx, seq(1), nil, textbookN)
	require.ErrorIs(t, err, textrsa.ErrNegativeExponent)
}

func TestExponentiatorPreconditions(t *testing.T) {
	for name, e := range map[string]Exponentiator{"bigint": BigInt{}, "saferith": SafeRith{}} {
		t.Run(name, func(t *testing.T) {
			_, err := e.Exp(big.NewInt(2), big.NewInt(3), big.NewInt(0))
			require.ErrorIs(t, err, textrsa.ErrInvalidModulus)

			_, err = e.Exp(big.NewInt(2), big.NewInt(-3), big.NewInt(7))
			require.ErrorIs(t, err, textrsa.ErrNegativeExponent)

			r, err := e.Exp(big.NewInt(2), big.NewInt(0), big.NewInt(7))
			require.NoError(t, err)
			assert.Equal(t, "1", r.String())
		})
	}

	_, err := SafeRith{}.Exp(big.NewInt(2), big.NewInt(3), big.NewInt(10))
	require.ErrorIs(t, err, textrsa.ErrInvalidModulus)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, c := range ciphers() {
		t.Run(name, func(t *testing.T) {
			_, err := c.Encrypt(ctx, seq(1, 2, 3), textbookE, textbookN)
			require.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := textrsa.DefaultConfig()
	cfg.Backend = textrsa.BackendSafeRith
	cfg.Workers = 4

	c, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, SafeRith{}, c.exp)
	assert.Equal(t, 4, c.workers)

	cfg.Backend = "gmp"
	_, err = FromConfig(cfg)
	require.ErrorIs(t, err, textrsa.ErrInvalidConfig)
}
