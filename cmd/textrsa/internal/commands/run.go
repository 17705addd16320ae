package commands

import (
	"github.com/spf13/cobra"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
	"github.com/coinbase/textrsa-go/pkg/textrsa/pipeline"
	"github.com/coinbase/textrsa-go/pkg/textrsa/report"
	"github.com/coinbase/textrsa-go/pkg/textrsa/store"
)

type runFlags struct {
	configPath string
	cfg        textrsa.Config
}

func newRunCommand(e *env) *cobra.Command {
	f := &runFlags{cfg: textrsa.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Encrypt and decrypt the text stored in the INI document",
		Long: `run loads the primes, generator, text and seed from the INI document,
writing a default document first if none exists. The ciphertext (decimal and
hex), the decrypted text and the public modulus are written back to it and the
results are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.run(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", store.DefaultFilename, "path of the INI document")
	flags.IntVar(&f.cfg.Workers, "workers", f.cfg.Workers, "goroutines per encrypt/decrypt pass")
	flags.StringVar(&f.cfg.Backend, "backend", f.cfg.Backend, "exponentiation backend (bigint, saferith)")
	flags.StringVar(&f.cfg.Encoding, "encoding", f.cfg.Encoding, "character encoding (runes, bytes)")
	flags.BoolVar(&f.cfg.LossyDecode, "lossy", f.cfg.LossyDecode, "truncate out-of-range values to one byte when decoding")
	flags.Uint64Var(&f.cfg.MaxSearchIterations, "max-iterations", 0, "private exponent search bound (0 = generator value)")
	return cmd
}

func (e *env) run(cmd *cobra.Command, f *runFlags) error {
	ctx := cmd.Context()

	doc := store.New(f.configPath)
	created, err := doc.Ensure()
	if err != nil {
		return err
	}
	if created {
		e.logger.Info(ctx, "wrote default document", "path", doc.Path())
	}

	p, err := pipeline.New(doc,
		pipeline.WithConfig(f.cfg),
		pipeline.WithLogger(e.logger.With("config", doc.Path())),
		pipeline.WithSinks(report.NewTerminal(e.out), doc),
	)
	if err != nil {
		return err
	}

	_, err = p.Run(ctx)
	return err
}
