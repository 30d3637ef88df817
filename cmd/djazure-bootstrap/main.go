// Package main is the entry point for the djazure-bootstrap CLI.
//
// djazure-bootstrap turns a fresh clone of the djazure Django template into
// a deployable project: it provisions the Azure service principal and
// Terraform state storage and stores the resulting credentials as GitHub
// repository secrets.
//
// Commands: run (default), doctor, init, version.
//
// For detailed usage information, run:
//
//	djazure-bootstrap --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/djazure-bootstrap/cmd/djazure-bootstrap/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Cancellation kills the running az or gh process; deferred cleanup of
	// the secrets file still runs. Created cloud resources are left alone.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
