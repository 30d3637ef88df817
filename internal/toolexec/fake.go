package toolexec

import (
	"context"
	"strings"
	"sync"
)

// FakeResponse is a scripted reply for Fake.
type FakeResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Fake is an Invoker that records calls and replies from a script.
// Responses are matched by the longest registered prefix of the
// "name arg1 arg2 ..." command line. Unmatched calls succeed with no output.
type Fake struct {
	mu        sync.Mutex
	responses map[string]FakeResponse
	Calls     []Command

	// OnRun, if set, is invoked for every call before the reply is chosen.
	OnRun func(cmd Command)
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{responses: make(map[string]FakeResponse)}
}

// On registers a response for commands starting with prefix.
func (f *Fake) On(prefix string, resp FakeResponse) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = resp
	return f
}

// Run implements Invoker.
func (f *Fake) Run(_ context.Context, cmd Command) (*Result, error) {
	if f.OnRun != nil {
		f.OnRun(cmd)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, cmd)

	line := cmd.String()
	var best string
	var resp FakeResponse
	for prefix, r := range f.responses {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
			resp = r
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Result{
		Command:  cmd,
		Stdout:   []byte(resp.Stdout),
		Stderr:   []byte(resp.Stderr),
		ExitCode: resp.ExitCode,
	}, nil
}

// CallsMatching returns the recorded calls starting with prefix.
func (f *Fake) CallsMatching(prefix string) []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Command
	for _, c := range f.Calls {
		if strings.HasPrefix(c.String(), prefix) {
			out = append(out, c)
		}
	}
	return out
}

// CommandLines returns every recorded call rendered as a command line.
func (f *Fake) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.String())
	}
	return out
}
