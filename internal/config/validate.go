package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the configuration for values that cannot work.
// Prompt defaults are not checked here; they go through input validation.
func (c *Config) Validate() error {
	var errs []error

	if c.Tools.Azure == "" {
		errs = append(errs, errors.New("tools.az must not be empty"))
	}
	if c.Tools.GitHub == "" {
		errs = append(errs, errors.New("tools.gh must not be empty"))
	}

	if c.Personalize.Token == "" {
		errs = append(errs, errors.New("personalize.token must not be empty"))
	}
	for _, f := range c.Personalize.Files {
		if !filepath.IsLocal(f) {
			errs = append(errs, fmt.Errorf("personalize.files entry %q must be relative to the project root", f))
		}
	}

	name := c.GitHub.SecretsFile
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		errs = append(errs, fmt.Errorf("github.secrets_file %q must be a plain file name", name))
	}
	if c.GitHub.Repo != "" && strings.Count(c.GitHub.Repo, "/") != 1 {
		errs = append(errs, fmt.Errorf("github.repo %q must be OWNER/REPO", c.GitHub.Repo))
	}

	switch c.Guard.Backend {
	case GuardBackendCLI, GuardBackendSDK:
	default:
		errs = append(errs, fmt.Errorf("guard.backend must be one of: %s, %s", GuardBackendCLI, GuardBackendSDK))
	}

	return errors.Join(errs...)
}
