package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is the configuration file looked up in the working directory.
const DefaultConfigFilename = "djazure.yaml"

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, defaults and validates the configuration at path.
// An empty path means DefaultConfigFilename in the working directory, and a
// missing default file yields Default(). An explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	// #nosec G304 -- path is operator supplied
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses, defaults and validates a configuration.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// parseConfig parses YAML data into a Config struct.
func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Tools.Azure == "" {
		c.Tools.Azure = DefaultAzureCLI
	}
	if c.Tools.GitHub == "" {
		c.Tools.GitHub = DefaultGitHubCLI
	}
	if c.Personalize.Token == "" {
		c.Personalize.Token = DefaultTemplateToken
	}
	if c.Personalize.Root == "" {
		c.Personalize.Root = "."
	}
	if len(c.Personalize.Files) == 0 {
		c.Personalize.Files = DefaultPersonalizeFiles()
	}
	if c.GitHub.SecretsFile == "" {
		c.GitHub.SecretsFile = DefaultSecretsFile
	}
	if c.Guard.Backend == "" {
		c.Guard.Backend = GuardBackendCLI
	}
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultConfigFilename
	}
	return filepath.Join(cwd, DefaultConfigFilename)
}

// Save writes a configuration to a file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
