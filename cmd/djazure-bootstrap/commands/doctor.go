package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/djazure-bootstrap/cmd/djazure-bootstrap/handlers"
)

// Doctor returns the command that checks for the required CLIs.
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that az and gh are installed",
		Long: `Check that the Azure CLI and GitHub CLI are installed and report
their versions. Binary names are taken from the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: djazure.yaml)")

	return cmd
}
