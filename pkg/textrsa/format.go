package textrsa

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatDecimal renders values as space-separated decimal integers.
func FormatDecimal(values []*big.Int) string {
	return join(values, 10)
}

// FormatHex renders values as space-separated lower-case hexadecimal integers
// without a 0x prefix.
func FormatHex(values []*big.Int) string {
	return join(values, 16)
}

func join(values []*big.Int, base int) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.Text(base))
	}
	return b.String()
}

// ParseDecimalList parses the output of FormatDecimal. Any run of whitespace
// separates values; an empty string yields an empty list.
func ParseDecimalList(s string) ([]*big.Int, error) {
	fields := strings.Fields(s)
	values := make([]*big.Int, 0, len(fields))
	for i, f := range fields {
		v, ok := new(big.Int).SetString(f, 10)
		if !ok {
			return nil, fmt.Errorf("value %d: %q is not a decimal integer", i, f)
		}
		values = append(values, v)
	}
	return values, nil
}
