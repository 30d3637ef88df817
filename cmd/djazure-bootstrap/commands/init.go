package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/djazure-bootstrap/cmd/djazure-bootstrap/handlers"
)

// Init returns the command that writes a default configuration file.
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a djazure.yaml with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Init(outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output file (default: djazure.yaml)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
