package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/coinbase/textrsa-go/pkg/textrsa/logging"
)

// Rotation defaults applied when --log-file is set.
const (
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
)

// env is shared by every subcommand of one root.
type env struct {
	out      io.Writer
	settings logging.Settings
	logger   logging.Logger
	closer   io.Closer
}

// NewRoot builds the textrsa command tree. Human-readable output goes to out.
func NewRoot(out io.Writer) *cobra.Command {
	e := &env{
		out:      out,
		settings: logging.DefaultSettings(),
		logger:   logging.Discard(),
	}

	root := &cobra.Command{
		Use:   "textrsa",
		Short: "Textbook RSA applied to text, one character at a time",
		Long: `textrsa derives an RSA key pair from two primes and a public generator kept in
an INI document, encrypts the document's text character by character, decrypts
it again and writes the results back.

It uses no padding and is not secure. It exists to demonstrate the arithmetic.`,
		SilenceUsage:       true,
		PersistentPreRunE:  e.setupLogger,
		PersistentPostRunE: e.closeLogger,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&e.settings.Level, "log-level", e.settings.Level, "log level (debug, info, warning, error)")
	flags.StringVar(&e.settings.Format, "log-format", e.settings.Format, "log format (text, json)")
	flags.StringVar(&e.settings.FilePath, "log-file", "", "write logs to this file with rotation instead of stderr")

	root.AddCommand(newRunCommand(e), newPrimesCommand(e), newVersionCommand(e))
	return root
}

func (e *env) setupLogger(_ *cobra.Command, _ []string) error {
	s := e.settings
	if s.FilePath != "" {
		s.MaxSize = defaultLogMaxSize
		s.MaxBackups = defaultLogMaxBackups
		s.MaxAge = defaultLogMaxAge
	}

	logger, closer, err := logging.FromSettings(s)
	if err != nil {
		return err
	}
	e.logger, e.closer = logger, closer
	return nil
}

func (e *env) closeLogger(_ *cobra.Command, _ []string) error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}
