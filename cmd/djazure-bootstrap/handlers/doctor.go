package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/djazure-bootstrap/internal/util/prerequisites"
)

// newChecker creates the prerequisite checker (for testing injection).
var newChecker = func() *prerequisites.Checker {
	return prerequisites.NewChecker(newInvoker())
}

// Doctor reports whether the CLIs a bootstrap run needs are installed.
func Doctor(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	tools := append(prerequisites.BootstrapTools(cfg.Tools.Azure, cfg.Tools.GitHub), prerequisites.OptionalTools()...)
	results := newChecker().Check(ctx, tools)

	fmt.Fprint(output, renderDoctor(results, useColor()))
	return results.Error()
}

func renderDoctor(results *prerequisites.CheckResults, color bool) string {
	ok, missing, optional := "ok", "missing", "not found"
	if color {
		ok = valueStyle.Render(ok)
		missing = errorStyle.Render(missing)
		optional = nameStyle.Render(optional)
	}

	var out string
	for _, r := range results.Results {
		status := ok
		switch {
		case !r.Found && r.Tool.Required:
			status = missing
		case !r.Found:
			status = optional
		}

		line := fmt.Sprintf("  %-10s %s", r.Tool.Name, status)
		if r.Version != "" {
			line += fmt.Sprintf("  (%s)", r.Version)
		}
		if !r.Found {
			line += fmt.Sprintf("  install: %s", r.Tool.InstallURL)
		}
		out += line + "\n"
	}
	return out
}

func useColor() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
