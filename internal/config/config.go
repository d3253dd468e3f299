// Package config loads the shell's connection settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "bpsh.yaml"

// passwordEnvVar overrides the password from the config file when set.
const passwordEnvVar = "BPSH_PASSWORD"

// Config holds the settings needed to reach the management service.
type Config struct {
	// Server is the base URL of the management service API.
	Server string `yaml:"server" validate:"required,url"`

	// Username for HTTP basic auth.
	Username string `yaml:"username" validate:"required"`

	// Password for HTTP basic auth. The BPSH_PASSWORD environment
	// variable takes precedence so credentials can stay out of the file.
	Password string `yaml:"password" validate:"required"`
}

var validate = validator.New()

// Validate checks that all required fields are present and well-formed.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		return fmt.Errorf("invalid config: field %s failed %q validation", field.Field(), field.Tag())
	}
	return fmt.Errorf("invalid config: %w", err)
}

// Load loads and validates a configuration from a file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithoutValidation loads a configuration from a file without validation.
// The BPSH_PASSWORD environment variable still overrides the file's password.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	if pw := os.Getenv(passwordEnvVar); pw != "" {
		cfg.Password = pw
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

// FindConfigFile looks for the config file in the current directory, then in
// the user's home directory under .bpsh/.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, DefaultConfigFilename)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		path = filepath.Join(home, ".bpsh", DefaultConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no %s found in current or home directory", DefaultConfigFilename)
}
