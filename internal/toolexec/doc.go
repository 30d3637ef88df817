// Package toolexec runs the external command-line tools the bootstrap drives.
//
// Every az and gh call goes through an Invoker. Output is fully buffered,
// since the tools return small structured payloads that are parsed
// programmatically. A non-zero exit status is reported in the Result, not as
// an error; call sites convert it into a *ToolError with Result.Err when the
// failure is fatal for the run, which is every call site in this module.
//
// Fake is a scripted Invoker used by tests in the packages that depend on it.
package toolexec
