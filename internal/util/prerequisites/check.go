// Package prerequisites checks that the external CLIs the bootstrap drives
// are installed.
package prerequisites

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/imamik/djazure-bootstrap/internal/toolexec"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string

	// VersionArgs print the tool version on the first output line.
	VersionArgs []string
}

// BootstrapTools returns the CLIs a bootstrap run needs, by configured binary name.
func BootstrapTools(az, gh string) []Tool {
	return []Tool{
		{
			Name:        az,
			Required:    true,
			Description: "Azure CLI, used to log in and create the service principal and state storage",
			InstallURL:  "https://learn.microsoft.com/cli/azure/install-azure-cli",
			VersionArgs: []string{"version", "--query", `"azure-cli"`, "-o", "tsv"},
		},
		{
			Name:        gh,
			Required:    true,
			Description: "GitHub CLI, used to publish repository secrets",
			InstallURL:  "https://cli.github.com/",
			VersionArgs: []string{"--version"},
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "terraform",
			Required:    false,
			Description: "Useful for running the project's infrastructure code locally",
			InstallURL:  "https://developer.hashicorp.com/terraform/install",
			VersionArgs: []string{"version"},
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Checker resolves tools and queries their versions.
type Checker struct {
	// LookPath resolves a binary name. Defaults to exec.LookPath.
	LookPath func(string) (string, error)

	// Invoker runs version commands. Nil skips version detection.
	Invoker toolexec.Invoker
}

// NewChecker returns a checker using PATH lookup and inv for versions.
func NewChecker(inv toolexec.Invoker) *Checker {
	return &Checker{LookPath: exec.LookPath, Invoker: inv}
}

// Check verifies that the specified tools are available.
func (c *Checker) Check(ctx context.Context, tools []Tool) *CheckResults {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	results := &CheckResults{}
	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = c.version(ctx, tool)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// version is best effort; failures yield "".
func (c *Checker) version(ctx context.Context, tool Tool) string {
	if c.Invoker == nil || len(tool.VersionArgs) == 0 {
		return ""
	}
	res, err := c.Invoker.Run(ctx, toolexec.Command{Name: tool.Name, Args: tool.VersionArgs})
	if err != nil || !res.Success() {
		return ""
	}
	line, _, _ := strings.Cut(string(res.Stdout), "\n")
	return strings.TrimSpace(line)
}

// Check verifies tools with PATH lookup only.
func Check(tools []Tool) *CheckResults {
	return (&Checker{LookPath: exec.LookPath}).Check(context.Background(), tools)
}
