package primes

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"
)

// Record is one line of a prime list file.
type Record struct {
	Bits       int
	Confidence int
	Prime      *big.Int
}

func (r Record) String() string {
	return fmt.Sprintf("%dBIT %d Validator %s", r.Bits, r.Confidence, r.Prime.String())
}

// ParseRecord parses a line produced by Record.String.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[2] != "Validator" || !strings.HasSuffix(fields[0], "BIT") {
		return Record{}, fmt.Errorf("malformed prime record %q", line)
	}

	bits, err := strconv.Atoi(strings.TrimSuffix(fields[0], "BIT"))
	if err != nil {
		return Record{}, fmt.Errorf("bit length: %w", err)
	}
	confidence, err := strconv.Atoi(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("confidence: %w", err)
	}
	prime, ok := new(big.Int).SetString(fields[3], 10)
	if !ok {
		return Record{}, fmt.Errorf("prime %q is not a decimal integer", fields[3])
	}
	return Record{Bits: bits, Confidence: confidence, Prime: prime}, nil
}

// WriteRecords writes one record per line.
func WriteRecords(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := bw.WriteString(r.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadRecords parses every non-empty line of r.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rec, err := ParseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, sc.Err()
}

// AppendFile appends records to the list file at path, creating it if needed.
func AppendFile(path string, records []Record) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return fmt.Errorf("open prime list: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteRecords(f, records)
}
