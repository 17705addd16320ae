package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coinbase/textrsa-go/pkg/textrsa"
)

func newVersionCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(e.out, "textrsa %s (%s)\n", textrsa.WrapperVersion(), textrsa.BuildCommit())
			return err
		},
	}
}
