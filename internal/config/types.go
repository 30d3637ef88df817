package config

import "fmt"

// Config is the optional bootstrap configuration file.
// Every field has a working default; an absent file is equivalent to Default().
type Config struct {
	// Defaults pre-fill the interactive prompts.
	Defaults Defaults `yaml:"defaults"`

	// Tools names the external CLIs.
	Tools Tools `yaml:"tools"`

	// Personalize controls the template rewrite.
	Personalize Personalize `yaml:"personalize"`

	// GitHub controls secret publication.
	GitHub GitHub `yaml:"github"`

	// Guard selects how existing resource groups are discovered.
	Guard Guard `yaml:"guard"`

	// Metrics controls the run metrics textfile.
	Metrics Metrics `yaml:"metrics"`
}

// Defaults are the prompt defaults. A blank answer to a prompt takes the
// configured value; values here are validated like operator input.
type Defaults struct {
	ProjectName    string `yaml:"project_name,omitempty"`
	SubscriptionID string `yaml:"subscription_id,omitempty"`
	Region         string `yaml:"region,omitempty"`
	AdminUsername  string `yaml:"admin_username,omitempty"`
}

// Tools holds the binary names (or paths) of the external CLIs.
type Tools struct {
	Azure  string `yaml:"az,omitempty"`
	GitHub string `yaml:"gh,omitempty"`
}

// Personalize describes the template rewrite step.
type Personalize struct {
	// Token is the placeholder project name in the template.
	Token string `yaml:"token,omitempty"`

	// Root is the project checkout directory.
	Root string `yaml:"root,omitempty"`

	// Files are rewritten relative to Root.
	Files []string `yaml:"files,omitempty"`
}

// GitHub describes where secrets are published.
type GitHub struct {
	// Repo is an optional OWNER/REPO target; empty means the checkout's remote.
	Repo string `yaml:"repo,omitempty"`

	// SecretsFile is the transport file name in the working directory.
	SecretsFile string `yaml:"secrets_file,omitempty"`
}

// Guard configures the idempotency check.
type Guard struct {
	// Backend is "cli" (az group list) or "sdk" (ARM SDK using the az login).
	Backend string `yaml:"backend,omitempty"`
}

// Metrics configures the run metrics output.
type Metrics struct {
	// File, when set, receives the run metrics in Prometheus text format.
	File string `yaml:"file,omitempty"`
}

// BootstrapParameters is the validated operator input for one run.
type BootstrapParameters struct {
	ProjectName    string
	SubscriptionID string
	Region         string
	AdminUsername  string
	AdminPassword  string
}

// String renders the parameters with the password redacted.
func (p BootstrapParameters) String() string {
	return fmt.Sprintf("project=%s subscription=%s region=%s admin=%s password=%s",
		p.ProjectName, p.SubscriptionID, p.Region, p.AdminUsername, redact(p.AdminPassword))
}

// GoString keeps %#v from printing the password.
func (p BootstrapParameters) GoString() string {
	return "config.BootstrapParameters{" + p.String() + "}"
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}
