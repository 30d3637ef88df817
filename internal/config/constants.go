package config

// Built-in defaults for operator input.
const (
	DefaultProjectName   = "djazure"
	DefaultRegion        = "eastus"
	DefaultAdminUsername = "admin"
)

// Tool binaries.
const (
	DefaultAzureCLI  = "az"
	DefaultGitHubCLI = "gh"
)

// Template personalization.
const (
	// DefaultTemplateToken is the placeholder project name shipped in the template.
	DefaultTemplateToken = "djazure"

	// DefaultSecretsFile is the transport file handed to gh secret set.
	DefaultSecretsFile = ".djazure-secrets.env"
)

// Guard backends.
const (
	GuardBackendCLI = "cli"
	GuardBackendSDK = "sdk"
)

// DefaultPersonalizeFiles lists the template files containing the
// placeholder token, relative to the project root. Settings are a package
// split into base and production modules.
func DefaultPersonalizeFiles() []string {
	return []string{
		"manage.py",
		"djazure/settings/base.py",
		"djazure/settings/production.py",
		"djazure/urls.py",
		"djazure/asgi.py",
		"djazure/wsgi.py",
	}
}
