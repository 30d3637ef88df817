package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external tool invocation.
type Command struct {
	// Name is the binary to execute, resolved through PATH.
	Name string

	// Args are passed to the binary verbatim.
	Args []string

	// Interactive attaches the process to the operator's terminal.
	// Output is still captured so failures can be reported.
	Interactive bool
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the captured output of a finished command.
type Result struct {
	Command  Command
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the command exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Err returns a *ToolError for a non-zero exit, or nil on success.
// step names the bootstrap operation for the error prefix.
func (r *Result) Err(step string) error {
	if r.Success() {
		return nil
	}
	return &ToolError{
		Step:     step,
		Tool:     r.Command.Name,
		Args:     r.Command.Args,
		ExitCode: r.ExitCode,
		Stderr:   strings.TrimSpace(string(r.Stderr)),
	}
}

// ToolError is the classified failure of an external tool.
type ToolError struct {
	Step     string
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s: %s exited with status %d", e.Step, e.Tool, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Invoker runs external commands.
type Invoker interface {
	// Run executes the command and waits for it to exit. The returned error is
	// non-nil only when the process could not be started or was killed by
	// context cancellation; a non-zero exit is reported through Result.
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecInvoker runs commands as local subprocesses.
type ExecInvoker struct {
	// Stdin, Stdout and Stderr are used for interactive commands.
	// They default to the process's standard streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecInvoker returns an invoker bound to the process's standard streams.
func NewExecInvoker() *ExecInvoker {
	return &ExecInvoker{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run implements Invoker.
func (i *ExecInvoker) Run(ctx context.Context, c Command) (*Result, error) {
	// #nosec G204 -- binary names come from configuration, arguments are built internally
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)

	var stdout, stderr bytes.Buffer
	if c.Interactive {
		cmd.Stdin = i.Stdin
		cmd.Stdout = io.MultiWriter(&stdout, i.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, i.Stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	result := &Result{
		Command: c,
		Stdout:  stdout.Bytes(),
		Stderr:  stderr.Bytes(),
	}

	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s interrupted: %w", c.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return nil, fmt.Errorf("failed to run %s: %w", c.Name, err)
}

// RunChecked runs the command and converts a non-zero exit into a *ToolError
// prefixed with step.
func RunChecked(ctx context.Context, inv Invoker, step string, cmd Command) (*Result, error) {
	res, err := inv.Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", step, err)
	}
	if err := res.Err(step); err != nil {
		return res, err
	}
	return res, nil
}
