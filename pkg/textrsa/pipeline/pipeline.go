package pipeline

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
	"github.com/coinbase/textrsa-go/pkg/textrsa/cipher"
	"github.com/coinbase/textrsa-go/pkg/textrsa/codec"
	"github.com/coinbase/textrsa-go/pkg/textrsa/keyderiv"
	"github.com/coinbase/textrsa-go/pkg/textrsa/logging"
)

// KeySource supplies the inputs of a run.
type KeySource interface {
	LoadKeyMaterial(ctx context.Context) (textrsa.KeyMaterial, error)
}

// Sink receives the result of a successful run.
type Sink interface {
	Publish(ctx context.Context, res *textrsa.Result) error
}

// KeysObserver is implemented by sinks that want to see the key material once
// the modulus is known.
type KeysObserver interface {
	KeysDerived(ctx context.Context, km textrsa.KeyMaterial, modulus *big.Int) error
}

// Pipeline runs the stages against one KeySource.
type Pipeline struct {
	source KeySource
	sinks  []Sink
	cfg    textrsa.Config
	logger logging.Logger
	cipher *cipher.Cipher
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithSinks appends sinks. They are published to in order.
func WithSinks(sinks ...Sink) Option {
	return func(p *Pipeline) error {
		for _, s := range sinks {
			if s == nil {
				return errors.New("nil sink")
			}
		}
		p.sinks = append(p.sinks, sinks...)
		return nil
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg textrsa.Config) Option {
	return func(p *Pipeline) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.cfg = cfg
		return nil
	}
}

// WithLogger sets the logger. Nil keeps the default.
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) error {
		if l != nil {
			p.logger = l
		}
		return nil
	}
}

// WithCipher overrides the cipher built from the configuration.
func WithCipher(c *cipher.Cipher) Option {
	return func(p *Pipeline) error {
		p.cipher = c
		return nil
	}
}

// New returns a Pipeline reading from source.
func New(source KeySource, opts ...Option) (*Pipeline, error) {
	if source == nil {
		return nil, textrsa.Errorf("pipeline.New", "nil key source: %w", textrsa.ErrInvalidConfig)
	}
	p := &Pipeline{
		source: source,
		cfg:    textrsa.DefaultConfig(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.cipher == nil {
		c, err := cipher.FromConfig(p.cfg)
		if err != nil {
			return nil, err
		}
		p.cipher = c
	}
	return p, nil
}

// Run executes every stage once. The returned Result is only non-nil when all
// stages succeeded.
func (p *Pipeline) Run(ctx context.Context) (*textrsa.Result, error) {
	log := p.logger.With("run_id", uuid.NewString())
	start := time.Now()
	log.Info(ctx, "run started",
		"backend", p.cfg.Backend,
		"encoding", p.cfg.Encoding,
		"workers", p.cfg.Workers,
	)

	res, err := p.run(ctx, log)
	if err != nil {
		var se *StageError
		if errors.As(err, &se) {
			log.Error(ctx, "run failed", "stage", string(se.Stage), "error", se.Err)
		}
		return nil, err
	}

	log.Info(ctx, "run finished", "elements", len(res.CipherText), "elapsed", time.Since(start))
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, log logging.Logger) (*textrsa.Result, error) {
	fail := func(stage Stage, err error) error {
		return &StageError{Stage: stage, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, fail(StageLoadKeyMaterial, err)
	}
	km, err := p.source.LoadKeyMaterial(ctx)
	if err != nil {
		return nil, fail(StageLoadKeyMaterial, err)
	}
	log.Debug(ctx, "key material loaded",
		logging.Redacted("prime_one"),
		logging.Redacted("prime_two"),
		"generator", km.Generator,
		"message_len", len(km.Message()),
	)

	kp, err := keyderiv.Derive(ctx, km.PrimeOne, km.PrimeTwo, km.Generator,
		keyderiv.WithMaxIterations(p.cfg.MaxSearchIterations))
	if err != nil {
		return nil, fail(StageDeriveKeys, err)
	}
	defer kp.Wipe()
	log.Debug(ctx, "keys derived", "modulus", kp.Modulus, logging.Redacted("private_exponent"))

	for _, s := range p.sinks {
		if obs, ok := s.(KeysObserver); ok {
			if err := obs.KeysDerived(ctx, km, kp.Modulus); err != nil {
				return nil, fail(StageDeriveKeys, err)
			}
		}
	}

	c, err := codec.FromConfig(p.cfg)
	if err != nil {
		return nil, fail(StageEncode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fail(StageEncode, err)
	}
	message := c.Encode(km.Message())

	cipherText, err := p.cipher.Encrypt(ctx, message, kp.Generator, kp.Modulus)
	if err != nil {
		return nil, fail(StageEncrypt, err)
	}

	decrypted, err := p.cipher.Decrypt(ctx, cipherText, kp.PrivateExponent, kp.Modulus)
	if err != nil {
		return nil, fail(StageDecrypt, err)
	}

	plaintext, err := c.Decode(decrypted)
	if err != nil {
		return nil, fail(StageDecode, err)
	}
	if plaintext != km.Message() {
		log.Warn(ctx, "decrypted text differs from input", "encoding", c.Encoding().String())
	}

	res := &textrsa.Result{
		Modulus:    kp.Modulus,
		Generator:  kp.Generator,
		CipherText: cipherText,
		Plaintext:  plaintext,
	}
	for _, s := range p.sinks {
		if err := s.Publish(ctx, res); err != nil {
			return nil, fail(StagePublish, err)
		}
	}
	return res, nil
}
