// Package azure drives the Azure CLI for the bootstrap.
//
// CLI wraps az invocations and renders the exact command lines the bootstrap
// depends on. Session handles login and subscription selection and carries
// the resulting toolexec.SessionContext. Guard is the pre-flight check that
// stops a second bootstrap of the same project from creating duplicates.
//
// All mutating calls go through the az CLI. The optional SDK lister is
// read-only and authenticates with the CLI's own login.
package azure
