// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the djazure-bootstrap CLI.
//
// Invoked without a subcommand it behaves like "run", so the bootstrap is a
// single command after cloning the template.
func Root() *cobra.Command {
	run := Run()

	cmd := &cobra.Command{
		Use:           "djazure-bootstrap",
		Short:         "Bootstrap Azure and GitHub for a djazure project",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run.RunE,
	}
	cmd.Flags().AddFlagSet(run.Flags())

	cmd.AddCommand(run)
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())

	return cmd
}
