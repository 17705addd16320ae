package codec

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
)

// Encoding selects the unit a message is split into.
type Encoding int

const (
	// Runes maps each Unicode code point to one integer.
	Runes Encoding = iota
	// Bytes maps each UTF-8 byte to one integer in [0, 255].
	Bytes
)

func (e Encoding) String() string {
	switch e {
	case Runes:
		return textrsa.EncodingRunes
	case Bytes:
		return textrsa.EncodingBytes
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding maps a Config encoding name to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case textrsa.EncodingRunes, "":
		return Runes, nil
	case textrsa.EncodingBytes:
		return Bytes, nil
	default:
		return 0, fmt.Errorf("%w: unknown encoding %q", textrsa.ErrInvalidConfig, name)
	}
}

// Codec converts between text and integer sequences.
type Codec struct {
	encoding Encoding
	lossy    bool
}

// New returns a Codec for the given encoding. With lossy set, Decode never
// fails and truncates out-of-range integers to their low byte.
func New(encoding Encoding, lossy bool) *Codec {
	return &Codec{encoding: encoding, lossy: lossy}
}

// FromConfig builds a Codec from a validated Config.
func FromConfig(cfg textrsa.Config) (*Codec, error) {
	enc, err := ParseEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return New(enc, cfg.LossyDecode), nil
}

// Encoding reports the encoding in use.
func (c *Codec) Encoding() Encoding {
	return c.encoding
}

// Encode splits text into integers, preserving order. Empty text yields an
// empty, non-nil slice.
func (c *Codec) Encode(text string) []*big.Int {
	if c.encoding == Bytes {
		out := make([]*big.Int, len(text))
		for i := 0; i < len(text); i++ {
			out[i] = big.NewInt(int64(text[i]))
		}
		return out
	}
	return ToIntegers(text)
}

// Decode is the inverse of Encode.
func (c *Codec) Decode(values []*big.Int) (string, error) {
	var b strings.Builder
	for i, v := range values {
		if c.encoding == Bytes {
			if v.Sign() >= 0 && v.BitLen() <= 8 {
				b.WriteByte(byte(v.Uint64()))
				continue
			}
		} else if r, ok := toRune(v); ok {
			b.WriteRune(r)
			continue
		}

		if !c.lossy {
			return "", textrsa.Errorf("Decode", "position %d (%s encoding): %w", i, c.encoding, textrsa.ErrCodePointRange)
		}
		b.WriteByte(lowByte(v))
	}
	return b.String(), nil
}

// ToIntegers maps each code point of text to an integer. Invalid UTF-8
// sequences map to utf8.RuneError.
func ToIntegers(text string) []*big.Int {
	out := make([]*big.Int, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		out = append(out, big.NewInt(int64(r)))
	}
	return out
}

// ToText maps integers back to code points and fails on the first value that
// is not a valid rune.
func ToText(values []*big.Int) (string, error) {
	return New(Runes, false).Decode(values)
}

// ToTextLossy never fails: every integer is truncated to
// the low 8 bits of its absolute value and emitted as one byte.
func ToTextLossy(values []*big.Int) string {
	buf := make([]byte, len(values))
	for i, v := range values {
		buf[i] = lowByte(v)
	}
	return string(buf)
}

func toRune(v *big.Int) (rune, bool) {
	if v.Sign() < 0 || !v.IsInt64() || v.Int64() > utf8.MaxRune {
		return 0, false
	}
	r := rune(v.Int64())
	return r, utf8.ValidRune(r)
}

func lowByte(v *big.Int) byte {
	words := v.Bits()
	if len(words) == 0 {
		return 0
	}
	return byte(words[0])
}
