package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// TerminalPrompter reads answers from a terminal or a pipe.
//
// On a TTY, secrets are read with echo disabled and confirmations use an
// interactive form. On a pipe, every answer is one line of input, which keeps
// scripted runs possible.
type TerminalPrompter struct {
	in     *bufio.Reader
	fd     uintptr
	out    io.Writer
	isTerm bool
}

// NewTerminalPrompter creates a prompter on stdin/stderr.
func NewTerminalPrompter() *TerminalPrompter {
	fd := os.Stdin.Fd()
	return &TerminalPrompter{
		in:     bufio.NewReader(os.Stdin),
		fd:     fd,
		out:    os.Stderr,
		isTerm: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// NewReaderPrompter creates a non-interactive prompter over r, writing prompts to out.
func NewReaderPrompter(r io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(r),
		out: out,
	}
}

// Line implements Prompter.
func (p *TerminalPrompter) Line(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)
	return readContext(ctx, p.readLine)
}

// Secret implements Prompter.
func (p *TerminalPrompter) Secret(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)
	if !p.isTerm {
		return readContext(ctx, p.readLine)
	}

	// ReadPassword disables echo; an abandoned read must not leave it off.
	state, err := term.GetState(int(p.fd))
	if err != nil {
		return "", fmt.Errorf("reading terminal state: %w", err)
	}
	secret, err := readContext(ctx, func() (string, error) {
		b, err := term.ReadPassword(int(p.fd))
		return string(b), err
	})
	fmt.Fprintln(p.out)
	if ctx.Err() != nil {
		_ = term.Restore(int(p.fd), state)
		return "", ctx.Err()
	}
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return secret, nil
}

// Confirm implements Prompter.
func (p *TerminalPrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if p.isTerm {
		var ok bool
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(prompt).
					Affirmative("Yes").
					Negative("No").
					Value(&ok),
			),
		).RunWithContext(ctx)
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return ok, err
	}

	answer, err := p.Line(ctx, prompt+" [y/N]: ")
	if err != nil {
		return false, err
	}
	return ParseYesNo(answer), nil
}

// readContext runs read in the background and returns early when ctx is
// cancelled. The abandoned read keeps its goroutine until input arrives or the
// process exits, so a cancelled prompter must not be read from again.
func readContext(ctx context.Context, read func() (string, error)) (string, error) {
	type answer struct {
		text string
		err  error
	}
	done := make(chan answer, 1)
	go func() {
		text, err := read()
		done <- answer{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-done:
		return a.text, a.err
	}
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ParseYesNo treats "y" and "yes" (any case) as yes and everything else as no.
func ParseYesNo(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
