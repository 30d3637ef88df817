package input

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/imamik/djazure-bootstrap/internal/config"
)

// Prompter reads operator answers.
type Prompter interface {
	// Line prompts and reads one line of visible input.
	Line(ctx context.Context, prompt string) (string, error)

	// Secret prompts and reads one line without echo.
	Secret(ctx context.Context, prompt string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Preset holds values supplied up front (flags or config) that skip their
// prompt. Presets are validated like typed input; an invalid preset is an
// error rather than a re-prompt since nobody is there to correct it.
type Preset struct {
	ProjectName    string
	SubscriptionID string
	Region         string
	AdminUsername  string
}

// Collector gathers BootstrapParameters, re-prompting each field until it is
// valid. It performs no external calls.
type Collector struct {
	Prompter Prompter
	Out      io.Writer
	Defaults config.Defaults
	Preset   Preset
}

// NewCollector creates a collector with the built-in defaults overridden by
// the configured ones.
func NewCollector(p Prompter, out io.Writer, defaults config.Defaults) *Collector {
	if defaults.ProjectName == "" {
		defaults.ProjectName = config.DefaultProjectName
	}
	if defaults.Region == "" {
		defaults.Region = config.DefaultRegion
	}
	if defaults.AdminUsername == "" {
		defaults.AdminUsername = config.DefaultAdminUsername
	}
	return &Collector{Prompter: p, Out: out, Defaults: defaults}
}

// Collect prompts for every field in order and returns the validated result.
// The only errors are prompter failures (closed input, cancellation) and
// invalid presets.
func (c *Collector) Collect(ctx context.Context) (config.BootstrapParameters, error) {
	var params config.BootstrapParameters
	var err error

	if params.ProjectName, err = c.projectName(ctx); err != nil {
		return params, fmt.Errorf("project name: %w", err)
	}
	if params.SubscriptionID, err = c.subscriptionID(ctx); err != nil {
		return params, fmt.Errorf("subscription id: %w", err)
	}
	if params.Region, err = c.region(ctx); err != nil {
		return params, fmt.Errorf("region: %w", err)
	}
	if params.AdminUsername, err = c.adminUsername(ctx); err != nil {
		return params, fmt.Errorf("admin username: %w", err)
	}
	if params.AdminPassword, err = c.adminPassword(ctx); err != nil {
		return params, fmt.Errorf("admin password: %w", err)
	}

	return params, nil
}

func (c *Collector) projectName(ctx context.Context) (string, error) {
	if c.Preset.ProjectName != "" {
		return SanitizeProjectName(c.Preset.ProjectName, c.Defaults.ProjectName)
	}
	prompt := fmt.Sprintf("Project name [%s]: ", c.Defaults.ProjectName)
	for {
		raw, err := c.Prompter.Line(ctx, prompt)
		if err != nil {
			return "", err
		}
		name, err := SanitizeProjectName(raw, c.Defaults.ProjectName)
		if err != nil {
			c.reject(err)
			continue
		}
		if name != raw && raw != "" {
			fmt.Fprintf(c.Out, "Using project name %q\n", name)
		}
		return name, nil
	}
}

func (c *Collector) subscriptionID(ctx context.Context) (string, error) {
	if c.Preset.SubscriptionID != "" {
		return NormalizeSubscriptionID(c.Preset.SubscriptionID)
	}
	prompt := "Azure subscription id: "
	if c.Defaults.SubscriptionID != "" {
		prompt = fmt.Sprintf("Azure subscription id [%s]: ", c.Defaults.SubscriptionID)
	}
	for {
		raw, err := c.Prompter.Line(ctx, prompt)
		if err != nil {
			return "", err
		}
		if raw == "" && c.Defaults.SubscriptionID != "" {
			raw = c.Defaults.SubscriptionID
		}
		id, err := NormalizeSubscriptionID(raw)
		if err != nil {
			c.reject(err)
			continue
		}
		return id, nil
	}
}

func (c *Collector) region(ctx context.Context) (string, error) {
	if c.Preset.Region != "" {
		return NormalizeRegion(c.Preset.Region, c.Defaults.Region), nil
	}
	raw, err := c.Prompter.Line(ctx, fmt.Sprintf("Azure region [%s]: ", c.Defaults.Region))
	if err != nil {
		return "", err
	}
	return NormalizeRegion(raw, c.Defaults.Region), nil
}

func (c *Collector) adminUsername(ctx context.Context) (string, error) {
	if c.Preset.AdminUsername != "" {
		return NormalizeAdminUsername(c.Preset.AdminUsername, c.Defaults.AdminUsername)
	}
	prompt := fmt.Sprintf("Django superuser name [%s]: ", c.Defaults.AdminUsername)
	for {
		raw, err := c.Prompter.Line(ctx, prompt)
		if err != nil {
			return "", err
		}
		name, err := NormalizeAdminUsername(raw, c.Defaults.AdminUsername)
		if err != nil {
			c.reject(err)
			continue
		}
		return name, nil
	}
}

func (c *Collector) adminPassword(ctx context.Context) (string, error) {
	for {
		password, err := c.Prompter.Secret(ctx, "Django superuser password: ")
		if err != nil {
			return "", err
		}
		confirmation, err := c.Prompter.Secret(ctx, "Confirm password: ")
		if err != nil {
			return "", err
		}
		if err := ValidatePasswordPair(password, confirmation); err != nil {
			c.reject(err)
			continue
		}
		return password, nil
	}
}

func (c *Collector) reject(err error) {
	fmt.Fprintf(c.Out, "Invalid input: %v\n", err)
}

// IsClosed reports whether err means the operator's input ended.
func IsClosed(err error) bool {
	return errors.Is(err, io.EOF)
}
