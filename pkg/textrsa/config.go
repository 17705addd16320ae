package textrsa

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Exponentiation backends.
const (
	BackendBigInt   = "bigint"
	BackendSafeRith = "saferith"
)

// Message encodings.
const (
	EncodingRunes = "runes"
	EncodingBytes = "bytes"
)

// Config holds the knobs of a pipeline run.
type Config struct {
	// MaxSearchIterations bounds the private exponent search. Zero uses the
	// generator's magnitude, which is always enough when an inverse exists.
	MaxSearchIterations uint64 `mapstructure:"max_search_iterations"`

	// Workers is the number of goroutines used per cipher pass. One keeps
	// encryption strictly sequential.
	Workers int `mapstructure:"workers" validate:"gte=1,lte=256"`

	// Backend selects the modular exponentiation implementation.
	Backend string `mapstructure:"backend" validate:"required,oneof=bigint saferith"`

	// Encoding selects whether a message is split into Unicode code points
	// or UTF-8 bytes.
	Encoding string `mapstructure:"encoding" validate:"required,oneof=runes bytes"`

	// LossyDecode truncates out-of-range decrypted integers to one byte
	// instead of failing.
	LossyDecode bool `mapstructure:"lossy_decode"`
}

// DefaultConfig returns a sequential big.Int configuration that decodes
// strictly.
func DefaultConfig() Config {
	return Config{
		Workers:  1,
		Backend:  BackendBigInt,
		Encoding: EncodingRunes,
	}
}

// Validate checks that all fields in Config are valid.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
