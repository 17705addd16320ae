package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
	"github.com/coinbase/textrsa-go/pkg/textrsa/logging"
	"github.com/coinbase/textrsa-go/pkg/textrsa/pipeline"
	"github.com/coinbase/textrsa-go/pkg/textrsa/report"
	"github.com/coinbase/textrsa-go/pkg/textrsa/store"
)

type staticSource struct {
	p, q, e    int64
	text, seed string
	err        error
}

func (s staticSource) LoadKeyMaterial(context.Context) (textrsa.KeyMaterial, error) {
	if s.err != nil {
		return textrsa.KeyMaterial{}, s.err
	}
	return textrsa.KeyMaterial{
		PrimeOne:  big.NewInt(s.p),
		PrimeTwo:  big.NewInt(s.q),
		Generator: big.NewInt(s.e),
		Plaintext: s.text,
		Seed:      s.seed,
	}, nil
}

type recordingSink struct {
	results []*textrsa.Result
	modulus *big.Int
	err     error
}

func (r *recordingSink) Publish(_ context.Context, res *textrsa.Result) error {
	if r.err != nil {
		return r.err
	}
	r.results = append(r.results, res)
	return nil
}

func (r *recordingSink) KeysDerived(_ context.Context, _ textrsa.KeyMaterial, modulus *big.Int) error {
	r.modulus = modulus
	return nil
}

func textbook() staticSource {
	return staticSource{p: 61, q: 53, e: 17, text: "A", seed: ""}
}

func TestRunTextbook(t *testing.T) {
	sink := &recordingSink{}
	p, err := pipeline.New(textbook(), pipeline.WithSinks(sink))
	require.NoError(t, err)

	res, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "3233", res.Modulus.String())
	assert.Equal(t, "17", res.Generator.String())
	require.Len(t, res.CipherText, 1)
	assert.Equal(t, "2790", res.CipherText[0].String())
	assert.Equal(t, "A", res.Plaintext)

	require.Len(t, sink.results, 1)
	assert.Same(t, res, sink.results[0])
	require.NotNil(t, sink.modulus)
	assert.Equal(t, "3233", sink.modulus.String())
}

func TestRunRoundTripConfigurations(t *testing.T) {
	configs := map[string]textrsa.Config{
		"default": textrsa.DefaultConfig(),
		"parallel-saferith": {
			Workers:  4,
			Backend:  textrsa.BackendSafeRith,
			Encoding: textrsa.EncodingRunes,
		},
		"bytes": {
			Workers:  1,
			Backend:  textrsa.BackendBigInt,
			Encoding: textrsa.EncodingBytes,
		},
	}

	src := staticSource{p: 1009, q: 1013, e: 65537, text: "héllo, wörld", seed: "NULL"}
	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			p, err := pipeline.New(src, pipeline.WithConfig(cfg))
			require.NoError(t, err)

			res, err := p.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "héllo, wörldNULL", res.Plaintext)
		})
	}
}

func TestRunEmptyMessage(t *testing.T) {
	p, err := pipeline.New(staticSource{p: 61, q: 53, e: 17})
	require.NoError(t, err)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.CipherText)
	assert.Equal(t, "", res.Plaintext)
}

func TestRunStageErrors(t *testing.T) {
	loadErr := errors.New("disk gone")
	sinkErr := errors.New("sink full")

	tests := []struct {
		name   string
		source staticSource
		sink   *recordingSink
		cfg    *textrsa.Config
		stage  pipeline.Stage
		target error
	}{
		{
			name:   "load",
			source: staticSource{err: loadErr},
			stage:  pipeline.StageLoadKeyMaterial,
			target: loadErr,
		},
		{
			name:   "no inverse",
			source: staticSource{p: 7, q: 11, e: 15, text: "x"},
			stage:  pipeline.StageDeriveKeys,
			target: textrsa.ErrNoInverse,
		},
		{
			name:   "equal primes",
			source: staticSource{p: 61, q: 61, e: 17, text: "x"},
			stage:  pipeline.StageDeriveKeys,
			target: textrsa.ErrInvalidPrime,
		},
		{
			name:   "character above modulus",
			source: staticSource{p: 3, q: 11, e: 3, text: "A"},
			stage:  pipeline.StageEncrypt,
			target: textrsa.ErrValueRange,
		},
		{
			name:   "publish",
			source: textbook(),
			sink:   &recordingSink{err: sinkErr},
			stage:  pipeline.StagePublish,
			target: sinkErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []pipeline.Option
			if tt.sink != nil {
				opts = append(opts, pipeline.WithSinks(tt.sink))
			}
			p, err := pipeline.New(tt.source, opts...)
			require.NoError(t, err)

			res, err := p.Run(context.Background())
			require.Error(t, err)
			assert.Nil(t, res)

			var se *pipeline.StageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.stage, se.Stage)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	p, err := pipeline.New(textbook())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	var se *pipeline.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pipeline.StageLoadKeyMaterial, se.Stage)
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := pipeline.New(nil)
	assert.ErrorIs(t, err, textrsa.ErrInvalidConfig)

	_, err = pipeline.New(textbook(), pipeline.WithConfig(textrsa.Config{Workers: 0}))
	assert.ErrorIs(t, err, textrsa.ErrInvalidConfig)

	_, err = pipeline.New(textbook(), pipeline.WithSinks(nil))
	assert.Error(t, err)
}

func TestRunLogsRedactSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	p, err := pipeline.New(textbook(), pipeline.WithLogger(logger))
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run_id=")
	assert.Contains(t, out, "private_exponent="+logging.Placeholder())
	assert.Contains(t, out, "prime_one="+logging.Placeholder())
	assert.NotContains(t, out, "2753")
}

func TestRunWithStore(t *testing.T) {
	doc := store.New(filepath.Join(t.TempDir(), store.DefaultFilename))
	created, err := doc.Ensure()
	require.NoError(t, err)
	require.True(t, created)

	var term bytes.Buffer
	p, err := pipeline.New(doc, pipeline.WithSinks(doc, report.NewTerminal(&term)))
	require.NoError(t, err)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RSA-algoritmasinin-frekans-degeri-risklidir!NULL", res.Plaintext)
	assert.Equal(t, "25004999289937004977", res.Modulus.String())

	stored, err := doc.LoadCipherText()
	require.NoError(t, err)
	require.Len(t, stored, len(res.CipherText))
	for i := range stored {
		assert.Zero(t, stored[i].Cmp(res.CipherText[i]), "element %d", i)
	}

	assert.Contains(t, term.String(), "Public Key: 25004999289937004977")
	assert.Contains(t, term.String(), "Decrypted Text: RSA-algoritmasinin-frekans-degeri-risklidir!NULL")
}
