package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"sync"

	"gopkg.in/ini.v1"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
)

// Section and key names.
const (
	SectionPrivate       = "Private"
	SectionPublic        = "Public"
	SectionSecretText    = "SecretText"
	SectionEncryptedText = "EncryptedText"
	SectionEncryptedHex  = "EncryptedHex"
	SectionDecryptedText = "DecryptedText"

	KeyPrimeOne  = "PrimeOne"
	KeyPrimeTwo  = "PrimeTwo"
	KeyGenerator = "Generator"
	KeyPublicKey = "PublicKey"
	KeyText      = "Text"
	KeySeed      = "Seed"
	KeyEncrypted = "Encrypted"
	KeyHex       = "Hex"
	KeyDecrypted = "Decrypted"
)

// DefaultFilename is the document name used when none is given.
const DefaultFilename = "Config.ini"

var defaults = []struct{ section, key, value string }{
	{SectionPrivate, KeyPrimeOne, "5000999921"},
	{SectionPrivate, KeyPrimeTwo, "4999999937"},
	{SectionPublic, KeyGenerator, "65537"},
	{SectionPublic, KeyPublicKey, "25004999289937004977"},
	{SectionSecretText, KeyText, "RSA-algoritmasinin-frekans-degeri-risklidir!"},
	{SectionSecretText, KeySeed, "NULL"},
	{SectionEncryptedText, KeyEncrypted, ""},
	{SectionEncryptedHex, KeyHex, ""},
	{SectionDecryptedText, KeyDecrypted, ""},
}

// Values are taken as written after '='. ini.v1 still trims whitespace
// around them.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	PreserveSurroundedQuote: true,
}

// formatMu serializes saves from this package while ini.PrettyFormat is
// overridden.
var formatMu sync.Mutex

// save writes doc as key=value without alignment padding, the layout existing
// Config.ini files use. ini.v1 only exposes that as the package-level
// PrettyFormat switch, so it is turned off for the duration of the write and
// restored afterwards.
func save(doc *ini.File, path string) error {
	formatMu.Lock()
	defer formatMu.Unlock()

	prev := ini.PrettyFormat
	ini.PrettyFormat = false
	defer func() { ini.PrettyFormat = prev }()

	return doc.SaveTo(path)
}

// File is an INI document on disk.
type File struct {
	path string
	mu   sync.Mutex
}

// New returns a File for path. Nothing is read until it is used.
func New(path string) *File {
	if path == "" {
		path = DefaultFilename
	}
	return &File{path: path}
}

// Path returns the document location.
func (f *File) Path() string {
	return f.path
}

// Ensure writes the default document if none exists and reports whether it
// did.
func (f *File) Ensure() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(f.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", f.path, err)
	}

	doc := ini.Empty(loadOptions)
	for _, d := range defaults {
		doc.Section(d.section).Key(d.key).SetValue(d.value)
	}
	if err := save(doc, f.path); err != nil {
		return false, fmt.Errorf("write default document: %w", err)
	}
	return true, nil
}

// LoadKeyMaterial reads the primes, generator, plaintext and seed.
func (f *File) LoadKeyMaterial(ctx context.Context) (textrsa.KeyMaterial, error) {
	if err := ctx.Err(); err != nil {
		return textrsa.KeyMaterial{}, err
	}

	f.mu.Lock()
	doc, err := f.load()
	f.mu.Unlock()
	if err != nil {
		return textrsa.KeyMaterial{}, err
	}

	var km textrsa.KeyMaterial
	if km.PrimeOne, err = integer(doc, SectionPrivate, KeyPrimeOne); err != nil {
		return textrsa.KeyMaterial{}, err
	}
	if km.PrimeTwo, err = integer(doc, SectionPrivate, KeyPrimeTwo); err != nil {
		return textrsa.KeyMaterial{}, err
	}
	if km.Generator, err = integer(doc, SectionPublic, KeyGenerator); err != nil {
		return textrsa.KeyMaterial{}, err
	}
	km.Plaintext = doc.Section(SectionSecretText).Key(KeyText).String()
	km.Seed = doc.Section(SectionSecretText).Key(KeySeed).String()
	return km, nil
}

// Publish stores the ciphertext in decimal and hex form, the recovered
// plaintext and the public modulus.
func (f *File) Publish(ctx context.Context, res *textrsa.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if res == nil {
		return errors.New("nil result")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}

	doc.Section(SectionEncryptedText).Key(KeyEncrypted).SetValue(textrsa.FormatDecimal(res.CipherText))
	doc.Section(SectionEncryptedHex).Key(KeyHex).SetValue(textrsa.FormatHex(res.CipherText))
	doc.Section(SectionDecryptedText).Key(KeyDecrypted).SetValue(res.Plaintext)
	if res.Modulus != nil {
		doc.Section(SectionPublic).Key(KeyPublicKey).SetValue(res.Modulus.String())
	}

	if err := save(doc, f.path); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// LoadCipherText reads back the decimal ciphertext written by Publish.
func (f *File) LoadCipherText() ([]*big.Int, error) {
	f.mu.Lock()
	doc, err := f.load()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	values, err := textrsa.ParseDecimalList(doc.Section(SectionEncryptedText).Key(KeyEncrypted).String())
	if err != nil {
		return nil, fmt.Errorf("[%s] %s: %w", SectionEncryptedText, KeyEncrypted, err)
	}
	return values, nil
}

func (f *File) load() (*ini.File, error) {
	doc, err := ini.LoadSources(loadOptions, f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return doc, nil
}

func integer(doc *ini.File, section, key string) (*big.Int, error) {
	sec, err := doc.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("missing section [%s]", section)
	}
	if !sec.HasKey(key) {
		return nil, fmt.Errorf("missing [%s] %s", section, key)
	}
	raw := sec.Key(key).String()
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("[%s] %s: %q is not a decimal integer", section, key, raw)
	}
	return v, nil
}
