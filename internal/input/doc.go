// Package input collects and validates the operator's bootstrap parameters.
//
// The validation functions are pure. Collector loops on a single field until
// it is valid, so a run never proceeds with bad input. The project name is
// sanitized rather than rejected, while the subscription id, username and
// password are rejected and re-prompted. Passwords are read without echo and
// are never written to the output.
package input
